package battleship

import (
	"sync"
	"time"
)

type BattleMove struct {
	Number   int       `json:"number"`
	PlayerID string    `json:"player_id"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
	PlayedAt time.Time `json:"played_at"`
}

// BattleHistory is the append-only move log of one game.
type BattleHistory struct {
	gameUuid string
	moves    []BattleMove
	mu       sync.RWMutex
}

// NewBattleHistory reserves room for one shot per cell of
// a gridSize board.
func NewBattleHistory(gameUuid string, gridSize int) *BattleHistory {
	return &BattleHistory{
		gameUuid: gameUuid,
		moves:    make([]BattleMove, 0, max(gridSize, 0)*max(gridSize, 0)),
	}
}

func (h *BattleHistory) GameUuid() string {
	return h.gameUuid
}

// append numbers the move and stores it.
func (h *BattleHistory) append(playerID string, c Coordinates, playedAt time.Time) BattleMove {
	h.mu.Lock()
	defer h.mu.Unlock()

	move := BattleMove{
		Number:   len(h.moves) + 1,
		PlayerID: playerID,
		X:        c.X,
		Y:        c.Y,
		PlayedAt: playedAt,
	}
	h.moves = append(h.moves, move)
	return move
}

func (h *BattleHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.moves)
}

func (h *BattleHistory) Moves() []BattleMove {
	h.mu.RLock()
	defer h.mu.RUnlock()

	moves := make([]BattleMove, len(h.moves))
	copy(moves, h.moves)
	return moves
}

func (h *BattleHistory) MovesBy(playerID string) []BattleMove {
	h.mu.RLock()
	defer h.mu.RUnlock()

	moves := make([]BattleMove, 0, len(h.moves)/2+1)
	for _, move := range h.moves {
		if move.PlayerID == playerID {
			moves = append(moves, move)
		}
	}
	return moves
}
