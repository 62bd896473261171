package battleship

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
	"golang.org/x/sync/errgroup"
)

// Game ids are short so players can share them by hand.
var newGameUuid = func() string {
	return uuid.NewString()[:6]
}

type Game struct {
	uuid       string
	seed       int64
	rules      Rules
	createdAt  time.Time
	hostPlayer *Player
	joinPlayer *Player
	players    map[string]*Player
	history    *BattleHistory

	mu         sync.RWMutex
	isFinished bool
	winnerUuid string
}

type gameConfig struct {
	seed          int64
	placementOpts []PlacementOption
}

type GameOption func(*gameConfig)

// WithSeed makes both boards of the game reproducible.
func WithSeed(seed int64) GameOption {
	return func(c *gameConfig) {
		c.seed = seed
	}
}

func WithPlacementOptions(opts ...PlacementOption) GameOption {
	return func(c *gameConfig) {
		c.placementOpts = append(c.placementOpts, opts...)
	}
}

// NewGame sets up both players' boards. The two fleets are
// placed concurrently, each with its own generator derived
// from the game seed, so a seed always yields the same pair
// of boards.
func NewGame(rules Rules, hostUuid, joinUuid string, opts ...GameOption) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if hostUuid == "" || joinUuid == "" {
		return nil, cerr.ErrEmptyPlayerUuid()
	}
	if hostUuid == joinUuid {
		return nil, cerr.ErrSamePlayerUuids(hostUuid)
	}

	cfg := gameConfig{seed: time.Now().UnixNano()}
	for _, opt := range opts {
		opt(&cfg)
	}

	seeder := rand.New(rand.NewSource(cfg.seed))
	hostRng := rand.New(rand.NewSource(seeder.Int63()))
	joinRng := rand.New(rand.NewSource(seeder.Int63()))

	var (
		hostPlayer *Player
		joinPlayer *Player
		eg         errgroup.Group
	)
	eg.Go(func() error {
		var err error
		hostPlayer, err = NewPlayer(hostUuid, true, rules, hostRng, cfg.placementOpts...)
		return err
	})
	eg.Go(func() error {
		var err error
		joinPlayer, err = NewPlayer(joinUuid, false, rules, joinRng, cfg.placementOpts...)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	gameUuid := newGameUuid()
	return &Game{
		uuid:       gameUuid,
		seed:       cfg.seed,
		rules:      rules,
		createdAt:  time.Now(),
		hostPlayer: hostPlayer,
		joinPlayer: joinPlayer,
		players: map[string]*Player{
			hostUuid: hostPlayer,
			joinUuid: joinPlayer,
		},
		history: NewBattleHistory(gameUuid, rules.GridSize),
	}, nil
}

func (g *Game) Uuid() string {
	return g.uuid
}

// reassignUuid is only safe before the game is shared.
func (g *Game) reassignUuid(gameUuid string) {
	g.uuid = gameUuid
	g.history.gameUuid = gameUuid
}

func (g *Game) Seed() int64 {
	return g.seed
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Game) History() *BattleHistory {
	return g.history
}

// returns a slice of players in the order of host then join.
func (g *Game) GetPlayers() []*Player {
	return []*Player{g.hostPlayer, g.joinPlayer}
}

func (g *Game) FetchPlayer(isHost bool) *Player {
	if isHost {
		return g.hostPlayer
	}
	return g.joinPlayer
}

func (g *Game) FindPlayer(playerUuid string) (*Player, error) {
	player, prs := g.players[playerUuid]
	if !prs {
		return nil, cerr.ErrPlayerNotExist(playerUuid)
	}
	return player, nil
}

func (g *Game) GetOtherPlayer(player *Player) *Player {
	if player.IsHost() {
		return g.joinPlayer
	}
	return g.hostPlayer
}

// RecordMove appends a shot by playerUuid to the history.
// It does not resolve what the shot hit.
func (g *Game) RecordMove(playerUuid string, x, y int) (BattleMove, error) {
	if g.IsFinished() {
		return BattleMove{}, cerr.ErrGameFinished(g.uuid)
	}
	if _, err := g.FindPlayer(playerUuid); err != nil {
		return BattleMove{}, err
	}
	if x < 0 || x >= g.rules.GridSize || y < 0 || y >= g.rules.GridSize {
		return BattleMove{}, cerr.ErrXorYOutOfGridBound(x, y)
	}

	return g.history.append(playerUuid, NewCoordinates(x, y), time.Now()), nil
}

func (g *Game) FinishGame(winnerUuid string) error {
	if _, err := g.FindPlayer(winnerUuid); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.isFinished {
		return cerr.ErrGameFinished(g.uuid)
	}
	g.isFinished = true
	g.winnerUuid = winnerUuid
	return nil
}

func (g *Game) IsFinished() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.isFinished
}

// WinnerUuid is empty until the game is finished.
func (g *Game) WinnerUuid() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.winnerUuid
}
