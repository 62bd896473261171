package battleship

// Rules fixes the board size and the fleet every player
// of a game gets.
type Rules struct {
	GridSize int
	Fleet    Fleet
}

func DefaultRules() Rules {
	return Rules{
		GridSize: DefaultGridSize,
		Fleet:    DefaultFleet(),
	}
}

func (r Rules) Validate() error {
	return r.Fleet.Validate(r.GridSize)
}
