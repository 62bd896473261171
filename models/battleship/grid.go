package battleship

import (
	"strings"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
)

const DefaultGridSize int = 10

// Cell holds either CellEmpty or the kind of the ship
// occupying it. It says nothing about which ship instance
// is there; ShipIndex answers that.
type Cell uint8

const CellEmpty Cell = 0

// Marker used when rendering an empty cell
const emptyMarker = '.'

func CellOf(kind ShipKind) Cell {
	return Cell(kind)
}

func (c Cell) IsEmpty() bool {
	return c == CellEmpty
}

func (c Cell) Kind() (ShipKind, bool) {
	if c.IsEmpty() {
		return 0, false
	}
	return ShipKind(c), true
}

func (c Cell) Marker() string {
	if c.IsEmpty() {
		return string(emptyMarker)
	}
	return string(rune(c))
}

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Grid is a square board indexed as cells[x][y].
// Its size never changes after NewGrid.
type Grid struct {
	size  int
	cells [][]Cell
}

// Creates a new grid with every cell empty. A negative
// size yields an empty grid that Rules reject.
func NewGrid(size int) *Grid {
	size = max(size, 0)
	cells := make([][]Cell, size)
	for i := 0; i < size; i++ {
		cells[i] = make([]Cell, size)
	}
	return &Grid{size: size, cells: cells}
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return CellEmpty, cerr.ErrXorYOutOfGridBound(x, y)
	}
	return g.cells[x][y], nil
}

func (g *Grid) Set(x, y int, cell Cell) error {
	if !g.InBounds(x, y) {
		return cerr.ErrXorYOutOfGridBound(x, y)
	}
	g.cells[x][y] = cell
	return nil
}

// Returns the first occupied coordinate, if any
func (g *Grid) firstOccupied() (Coordinates, bool) {
	for x := range g.cells {
		for y := range g.cells[x] {
			if !g.cells[x][y].IsEmpty() {
				return NewCoordinates(x, y), true
			}
		}
	}
	return Coordinates{}, false
}

func (g *Grid) IsEmpty() bool {
	_, occupied := g.firstOccupied()
	return !occupied
}

func (g *Grid) OccupiedCount() int {
	count := 0
	for x := range g.cells {
		for y := range g.cells[x] {
			if !g.cells[x][y].IsEmpty() {
				count++
			}
		}
	}
	return count
}

func (g *Grid) Clone() *Grid {
	clone := NewGrid(g.size)
	for x := range g.cells {
		copy(clone.cells[x], g.cells[x])
	}
	return clone
}

// Cells returns a copy of the board. Changing it does
// not affect the grid.
func (g *Grid) Cells() [][]Cell {
	return g.Clone().cells
}

// Markers is the read-only view handed to renderers
// and the transport layer.
func (g *Grid) Markers() [][]string {
	markers := make([][]string, g.size)
	for x := range g.cells {
		markers[x] = make([]string, g.size)
		for y := range g.cells[x] {
			markers[x][y] = g.cells[x][y].Marker()
		}
	}
	return markers
}

// String renders one row per y so that horizontal ships
// (running along x) read left to right.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.size * (g.size + 1))
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			sb.WriteString(g.cells[x][y].Marker())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
