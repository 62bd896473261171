package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
)

type GameManager interface {
	CreateGame(hostUuid, joinUuid string, opts ...GameOption) (*Game, error)
	FetchGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	Count() int
	Rules() Rules
}

type BattleshipGameManager struct {
	rules Rules
	games map[string]*Game
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

// NewBattleshipGameManager fails if rules can never be
// satisfied, so no game is ever attempted with them.
func NewBattleshipGameManager(rules Rules) (*BattleshipGameManager, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	return &BattleshipGameManager{
		rules: rules,
		games: make(map[string]*Game, 10),
	}, nil
}

func (bgm *BattleshipGameManager) Rules() Rules {
	return bgm.rules
}

func (bgm *BattleshipGameManager) CreateGame(hostUuid, joinUuid string, opts ...GameOption) (*Game, error) {
	game, err := NewGame(bgm.rules, hostUuid, joinUuid, opts...)
	if err != nil {
		return nil, err
	}

	bgm.mu.Lock()
	// short ids can collide; never replace a live game
	for _, prs := bgm.games[game.uuid]; prs; _, prs = bgm.games[game.uuid] {
		game.reassignUuid(newGameUuid())
	}
	bgm.games[game.uuid] = game
	bgm.mu.Unlock()

	return game, nil
}

func (bgm *BattleshipGameManager) FetchGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExist(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) Count() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
