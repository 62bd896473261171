package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrPlacementFailed = "fleet placement failed"
	ConstErrMoveRejected    = "move could not be recorded"
	ConstErrInvalidCreate   = "invalid create game request"
)

// Sentinels are matched with errors.Is; the constructors
// below wrap them with the offending values.
var (
	ErrOutOfBounds          = errors.New("coordinate is out of grid bound")
	ErrPlacementExhausted   = errors.New("no valid position left for ship")
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrGridNotEmpty         = errors.New("grid already has ships on it")
	ErrGameNotExists        = errors.New("game does not exist")
	ErrPlayerNotExists      = errors.New("player does not exist")
	ErrInvalidPlayers       = errors.New("invalid player uuids")
	ErrGameOver             = errors.New("game is already over")
	ErrMissingPayload       = errors.New("the payload is nil or missing")
)

func ErrGameNotExist(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameNotExists, gameUuid)
}

func ErrPlayerNotExist(playerUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrPlayerNotExists, playerUuid)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrOutOfBounds, x, y)
}

func ErrShipPlacementExhausted(shipName string, attempts int) error {
	return fmt.Errorf("%w\tship: %s\tattempts: %d", ErrPlacementExhausted, shipName, attempts)
}

func ErrInvalidGridSize(size int) error {
	return fmt.Errorf("%w: grid size must be positive, got %d", ErrInvalidConfiguration, size)
}

func ErrEmptyFleet() error {
	return fmt.Errorf("%w: fleet has no ships", ErrInvalidConfiguration)
}

func ErrInvalidShipLength(shipName string, length, gridSize int) error {
	return fmt.Errorf("%w: ship %s has length %d, grid size is %d", ErrInvalidConfiguration, shipName, length, gridSize)
}

func ErrInvalidShipKind(kind byte) error {
	return fmt.Errorf("%w: unknown ship kind %q", ErrInvalidConfiguration, kind)
}

func ErrFleetTooLarge(footprint, area int) error {
	return fmt.Errorf("%w: fleet needs %d cells, grid has %d", ErrInvalidConfiguration, footprint, area)
}

func ErrGridAlreadyFilled(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrGridNotEmpty, x, y)
}

func ErrSamePlayerUuids(playerUuid string) error {
	return fmt.Errorf("%w: both players have uuid %s", ErrInvalidPlayers, playerUuid)
}

func ErrEmptyPlayerUuid() error {
	return fmt.Errorf("%w: player uuid is empty", ErrInvalidPlayers)
}

func ErrGameFinished(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameOver, gameUuid)
}
