package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

// clearEnv unsets every variable Config reads; t.Setenv
// restores them when the test ends.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STAGE", "PORT", "LOG_LEVEL", "DATABASE_URL", "MIGRATION_DIR", "RULES_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STAGE", StageDev)

	cfg, err := ParseEnv()
	require.NoError(t, err)

	assert.Equal(t, StageDev, cfg.Stage)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "file://db/migration", cfg.MigrationDir)
	assert.Equal(t, "", cfg.RulesFile)
}

func TestParseEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STAGE", StageProd)
	t.Setenv("PORT", "7171")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://localhost/battleship")
	t.Setenv("RULES_FILE", "/etc/battleship/rules.json")

	cfg, err := ParseEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 7171, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://localhost/battleship", cfg.DatabaseURL)
	assert.Equal(t, "/etc/battleship/rules.json", cfg.RulesFile)
}

func TestParseEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		stage string
		port  string
	}{
		{name: "unknown stage", stage: "staging", port: "9191"},
		{name: "port not a number", stage: StageDev, port: "abc"},
		{name: "port out of range", stage: StageDev, port: "70000"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("STAGE", test.stage)
			t.Setenv("PORT", test.port)

			_, err := ParseEnv()
			assert.Error(t, err)
		})
	}
}

func TestParseEnv_MissingStage(t *testing.T) {
	clearEnv(t)

	_, err := ParseEnv()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("STAGE", StageDev)
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=warn\n"), 0644))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "warn", os.Getenv("LOG_LEVEL"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestLoadRules_EmptyPath(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, mb.DefaultRules(), rules)
}

func TestLoadRules_CustomFleet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	cfg := `{
		"gridSize": 8,
		"fleet": [
			{ "kind": "B", "name": "Battleship", "length": 4 },
			{ "kind": "D", "name": "Destroyer", "length": 2 },
			{ "kind": "D", "length": 2 }
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, 8, rules.GridSize)
	assert.Equal(t, mb.Fleet{
		{Kind: mb.ShipKindBattleship, Name: "Battleship", Length: 4},
		{Kind: mb.ShipKindDestroyer, Name: "Destroyer", Length: 2},
		{Kind: mb.ShipKindDestroyer, Name: "D", Length: 2},
	}, rules.Fleet)
}

func TestLoadRules_DefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gridSize: 12\n"), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 12, rules.GridSize)
	assert.Equal(t, mb.DefaultFleet(), rules.Fleet)

	path = filepath.Join(dir, "fleet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fleet": [{"kind": "S", "name": "Submarine", "length": 3}]}`), 0644))

	rules, err = LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, mb.DefaultGridSize, rules.GridSize)
	assert.Len(t, rules.Fleet, 1)
}

func TestLoadRules_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "ship longer than grid", content: `{"gridSize": 4}`},
		{name: "unknown kind", content: `{"fleet": [{"kind": "Z", "name": "Zeppelin", "length": 2}]}`},
		{name: "zero length", content: `{"fleet": [{"kind": "D", "name": "Destroyer", "length": 0}]}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rules.json")
			require.NoError(t, os.WriteFile(path, []byte(test.content), 0644))

			_, err := LoadRules(path)
			assert.ErrorIs(t, err, cerr.ErrInvalidConfiguration)
		})
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules("/nonexistent/rules.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading rules file")
}
