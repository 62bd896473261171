package battleship

type Player struct {
	uuid   string
	isHost bool
	grid   *Grid
	ships  []*Ship
	index  ShipIndex
}

// NewPlayer builds a fresh grid for the player and places
// the rules' fleet on it using rng.
func NewPlayer(uuid string, isHost bool, rules Rules, rng Rand, opts ...PlacementOption) (*Player, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	grid := NewGrid(rules.GridSize)
	placement, err := PlaceFleet(grid, rules.Fleet, rng, opts...)
	if err != nil {
		return nil, err
	}

	return &Player{
		uuid:   uuid,
		isHost: isHost,
		grid:   grid,
		ships:  placement.Ships,
		index:  placement.Index,
	}, nil
}

func (p *Player) Uuid() string {
	return p.uuid
}

func (p *Player) IsHost() bool {
	return p.isHost
}

func (p *Player) Grid() *Grid {
	return p.grid
}

func (p *Player) Ships() []*Ship {
	ships := make([]*Ship, len(p.ships))
	copy(ships, p.ships)
	return ships
}

// ShipAt resolves which ship instance occupies c.
func (p *Player) ShipAt(c Coordinates) (*Ship, bool) {
	id, prs := p.index.ShipID(c)
	if !prs {
		return nil, false
	}
	return p.FindShip(id)
}

func (p *Player) FindShip(shipID string) (*Ship, bool) {
	for _, ship := range p.ships {
		if ship.id == shipID {
			return ship, true
		}
	}
	return nil, false
}

func (p *Player) SunkenShips() int {
	sunk := 0
	for _, ship := range p.ships {
		if ship.IsSunk() {
			sunk++
		}
	}
	return sunk
}

func (p *Player) IsFleetSunk() bool {
	return p.SunkenShips() == len(p.ships)
}
