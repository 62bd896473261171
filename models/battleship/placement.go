package battleship

import (
	"maps"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
)

// Random draws per cell of the grid before a ship falls
// back to scanning every anchor.
const defaultAttemptsPerCell int = 4

// Rand is the randomness source placement draws from.
// *math/rand.Rand satisfies it. Implementations are used
// sequentially and need not be safe for concurrent use.
type Rand interface {
	Intn(n int) int
}

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	if o == OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

// Horizontal ships run along x, vertical ones along y
func (o Orientation) step() (dx, dy int) {
	if o == OrientationVertical {
		return 0, 1
	}
	return 1, 0
}

type Anchor struct {
	Coordinates
	Orientation Orientation
}

// Cells returns the length coordinates a ship anchored
// at a would cover. They may fall outside the grid.
func (a Anchor) Cells(length int) []Coordinates {
	dx, dy := a.Orientation.step()
	coords := make([]Coordinates, length)
	for i := 0; i < length; i++ {
		coords[i] = NewCoordinates(a.X+i*dx, a.Y+i*dy)
	}
	return coords
}

// ShipIndex maps every occupied coordinate to the id of
// the ship instance on it.
type ShipIndex map[Coordinates]string

func (idx ShipIndex) ShipID(c Coordinates) (string, bool) {
	id, prs := idx[c]
	return id, prs
}

// with returns a new index holding idx plus coords. idx
// itself is left untouched.
func (idx ShipIndex) with(coords []Coordinates, shipID string) ShipIndex {
	next := make(ShipIndex, len(idx)+len(coords))
	maps.Copy(next, idx)
	for _, c := range coords {
		next[c] = shipID
	}
	return next
}

type Placement struct {
	Ships []*Ship
	Index ShipIndex
}

type placementConfig struct {
	maxAttempts  int
	scanFallback bool
	newID        func() string
}

type PlacementOption func(*placementConfig)

// WithMaxAttempts caps the random draws spent on each ship.
// Zero sends every ship straight to the anchor scan.
func WithMaxAttempts(attempts int) PlacementOption {
	return func(c *placementConfig) {
		c.maxAttempts = max(attempts, 0)
	}
}

// WithoutScanFallback makes an exhausted random budget fail
// with ErrPlacementExhausted instead of scanning.
func WithoutScanFallback() PlacementOption {
	return func(c *placementConfig) {
		c.scanFallback = false
	}
}

func WithIDGenerator(newID func() string) PlacementOption {
	return func(c *placementConfig) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// PlaceFleet puts every ship of fleet on grid, in fleet order,
// at a position drawn from rng. The grid must be empty. On
// error the grid is left as it was.
func PlaceFleet(grid *Grid, fleet Fleet, rng Rand, opts ...PlacementOption) (Placement, error) {
	if err := fleet.Validate(grid.Size()); err != nil {
		return Placement{}, err
	}
	if c, occupied := grid.firstOccupied(); occupied {
		return Placement{}, cerr.ErrGridAlreadyFilled(c.X, c.Y)
	}

	cfg := placementConfig{
		maxAttempts:  defaultAttemptsPerCell * grid.Size() * grid.Size(),
		scanFallback: true,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Ships go onto a scratch copy so that a failure
	// midway never leaves a half-filled grid behind.
	work := grid.Clone()
	placement := Placement{
		Ships: make([]*Ship, 0, len(fleet)),
		Index: make(ShipIndex),
	}

	for _, def := range fleet {
		anchor, found := findAnchor(work, def.Length, rng, cfg)
		if !found {
			return Placement{}, cerr.ErrShipPlacementExhausted(def.Name, cfg.maxAttempts)
		}

		coords := anchor.Cells(def.Length)
		for _, c := range coords {
			work.cells[c.X][c.Y] = CellOf(def.Kind)
		}

		ship := newShip(cfg.newID(), def, anchor.Orientation, coords)
		placement.Ships = append(placement.Ships, ship)
		placement.Index = placement.Index.with(coords, ship.id)
	}

	for x := range work.cells {
		copy(grid.cells[x], work.cells[x])
	}
	return placement, nil
}

func findAnchor(grid *Grid, length int, rng Rand, cfg placementConfig) (Anchor, bool) {
	size := grid.Size()
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		anchor := Anchor{
			Orientation: Orientation(rng.Intn(2)),
			Coordinates: NewCoordinates(rng.Intn(size), rng.Intn(size)),
		}
		if CanPlace(grid, anchor, length) {
			return anchor, true
		}
	}

	if !cfg.scanFallback {
		return Anchor{}, false
	}

	anchors := ValidAnchors(grid, length)
	if len(anchors) == 0 {
		return Anchor{}, false
	}
	return anchors[0], true
}

// CanPlace reports whether a ship of length anchored at a
// stays inside the grid and covers only empty cells.
func CanPlace(grid *Grid, anchor Anchor, length int) bool {
	for _, c := range anchor.Cells(length) {
		if !grid.InBounds(c.X, c.Y) || !grid.cells[c.X][c.Y].IsEmpty() {
			return false
		}
	}
	return true
}

// ValidAnchors lists every anchor a ship of length could take,
// horizontal ones first, then by x and y ascending.
func ValidAnchors(grid *Grid, length int) []Anchor {
	anchors := make([]Anchor, 0)
	for _, orientation := range []Orientation{OrientationHorizontal, OrientationVertical} {
		for x := 0; x < grid.Size(); x++ {
			for y := 0; y < grid.Size(); y++ {
				anchor := Anchor{Coordinates: NewCoordinates(x, y), Orientation: orientation}
				if CanPlace(grid, anchor, length) {
					anchors = append(anchors, anchor)
				}
			}
		}
	}
	return anchors
}
