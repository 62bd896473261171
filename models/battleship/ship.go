package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
)

// ShipKind doubles as the marker written into the grid.
type ShipKind byte

const (
	ShipKindCarrier    ShipKind = 'A'
	ShipKindBattleship ShipKind = 'B'
	ShipKindCruiser    ShipKind = 'C'
	ShipKindSubmarine  ShipKind = 'S'
	ShipKindDestroyer  ShipKind = 'D'
)

func (k ShipKind) IsValid() bool {
	switch k {
	case ShipKindCarrier, ShipKindBattleship, ShipKindCruiser, ShipKindSubmarine, ShipKindDestroyer:
		return true
	}
	return false
}

func (k ShipKind) String() string {
	return string(rune(k))
}

func (k ShipKind) MarshalText() ([]byte, error) {
	return []byte{byte(k)}, nil
}

func (k *ShipKind) UnmarshalText(text []byte) error {
	if len(text) != 1 || !ShipKind(text[0]).IsValid() {
		var b byte
		if len(text) > 0 {
			b = text[0]
		}
		return cerr.ErrInvalidShipKind(b)
	}
	*k = ShipKind(text[0])
	return nil
}

type ShipDefinition struct {
	Kind   ShipKind `json:"kind" mapstructure:"kind"`
	Name   string   `json:"name" mapstructure:"name"`
	Length int      `json:"length" mapstructure:"length"`
}

// Fleet is placed in slice order.
type Fleet []ShipDefinition

func DefaultFleet() Fleet {
	return Fleet{
		{Kind: ShipKindCarrier, Name: "Carrier", Length: 5},
		{Kind: ShipKindBattleship, Name: "Battleship", Length: 4},
		{Kind: ShipKindCruiser, Name: "Cruiser", Length: 3},
		{Kind: ShipKindSubmarine, Name: "Submarine", Length: 3},
		{Kind: ShipKindDestroyer, Name: "Destroyer", Length: 2},
	}
}

// Footprint is the number of cells the whole fleet occupies.
func (f Fleet) Footprint() int {
	total := 0
	for _, def := range f {
		total += def.Length
	}
	return total
}

// Validate rejects fleets that can never be placed on a
// grid of gridSize before a single attempt is made.
func (f Fleet) Validate(gridSize int) error {
	if gridSize <= 0 {
		return cerr.ErrInvalidGridSize(gridSize)
	}
	if len(f) == 0 {
		return cerr.ErrEmptyFleet()
	}
	for _, def := range f {
		if !def.Kind.IsValid() {
			return cerr.ErrInvalidShipKind(byte(def.Kind))
		}
		if def.Length <= 0 || def.Length > gridSize {
			return cerr.ErrInvalidShipLength(def.Name, def.Length, gridSize)
		}
	}
	if footprint := f.Footprint(); footprint > gridSize*gridSize {
		return cerr.ErrFleetTooLarge(footprint, gridSize*gridSize)
	}
	return nil
}

// Ship is a placed fleet member. Its coordinates never
// change; only the damage state does, and that is kept
// by whoever resolves attacks.
type Ship struct {
	id          string
	definition  ShipDefinition
	orientation Orientation
	coordinates []Coordinates

	mu             sync.Mutex
	hitCoordinates []Coordinates
}

func newShip(id string, def ShipDefinition, orientation Orientation, coords []Coordinates) *Ship {
	return &Ship{
		id:             id,
		definition:     def,
		orientation:    orientation,
		coordinates:    coords,
		hitCoordinates: make([]Coordinates, 0, def.Length),
	}
}

func (sh *Ship) ID() string {
	return sh.id
}

func (sh *Ship) Kind() ShipKind {
	return sh.definition.Kind
}

func (sh *Ship) Name() string {
	return sh.definition.Name
}

func (sh *Ship) Length() int {
	return sh.definition.Length
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}

func (sh *Ship) Coordinates() []Coordinates {
	coords := make([]Coordinates, len(sh.coordinates))
	copy(coords, sh.coordinates)
	return coords
}

func (sh *Ship) Occupies(c Coordinates) bool {
	for _, own := range sh.coordinates {
		if own == c {
			return true
		}
	}
	return false
}

// RecordHit marks c as damaged. It returns false when c is
// not part of the ship or was already hit.
func (sh *Ship) RecordHit(c Coordinates) bool {
	if !sh.Occupies(c) {
		return false
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	for _, hit := range sh.hitCoordinates {
		if hit == c {
			return false
		}
	}
	sh.hitCoordinates = append(sh.hitCoordinates, c)
	return true
}

func (sh *Ship) Hits() int {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return len(sh.hitCoordinates)
}

func (sh *Ship) GetHitCoordinates() []Coordinates {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	coords := make([]Coordinates, len(sh.hitCoordinates))
	copy(coords, sh.hitCoordinates)
	return coords
}

func (sh *Ship) IsSunk() bool {
	return sh.Hits() == sh.definition.Length
}
