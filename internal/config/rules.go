package config

import (
	"fmt"

	"github.com/spf13/viper"

	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

type fleetEntry struct {
	Kind   string `mapstructure:"kind"`
	Name   string `mapstructure:"name"`
	Length int    `mapstructure:"length"`
}

type rulesFile struct {
	GridSize int          `mapstructure:"gridSize"`
	Fleet    []fleetEntry `mapstructure:"fleet"`
}

// LoadRules reads grid size and fleet from a JSON or YAML
// file. Missing keys fall back to the default rules; an
// empty path returns the defaults as they are.
func LoadRules(path string) (mb.Rules, error) {
	if path == "" {
		return mb.DefaultRules(), nil
	}

	v := viper.New()
	v.SetDefault("gridSize", mb.DefaultGridSize)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return mb.Rules{}, fmt.Errorf("error reading rules file: %v", err)
	}

	var raw rulesFile
	if err := v.Unmarshal(&raw); err != nil {
		return mb.Rules{}, fmt.Errorf("error decoding rules file: %v", err)
	}

	rules := mb.Rules{GridSize: raw.GridSize, Fleet: mb.DefaultFleet()}
	if len(raw.Fleet) > 0 {
		fleet := make(mb.Fleet, 0, len(raw.Fleet))
		for _, entry := range raw.Fleet {
			var kind mb.ShipKind
			if err := kind.UnmarshalText([]byte(entry.Kind)); err != nil {
				return mb.Rules{}, err
			}

			name := entry.Name
			if name == "" {
				name = kind.String()
			}
			fleet = append(fleet, mb.ShipDefinition{Kind: kind, Name: name, Length: entry.Length})
		}
		rules.Fleet = fleet
	}

	if err := rules.Validate(); err != nil {
		return mb.Rules{}, err
	}
	return rules, nil
}
