package api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/saeidalz13/battleship-fleet/db/sqlc"
	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
	"github.com/saeidalz13/battleship-fleet/internal/logging"
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
	mc "github.com/saeidalz13/battleship-fleet/models/connection"
)

// Every incoming valid request will have this structure
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

// decode unmarshals the request payload into T. A missing
// payload is reported as an error rather than a zero T.
func decode[T any](r Request) (T, error) {
	var msg mc.Message[*T]
	if err := json.Unmarshal(r.payload, &msg); err != nil {
		var zero T
		return zero, err
	}
	if msg.Payload == nil {
		var zero T
		return zero, cerr.ErrMissingPayload
	}
	return *msg.Payload, nil
}

func newPlayerUuid() string {
	return uuid.NewString()[:10]
}

// Convenient helper func to fetch both the game and player
func fetchGameAndPlayer(gm mb.GameManager, gameUuid, playerUuid string) (*mb.Game, *mb.Player, error) {
	game, err := gm.FetchGame(gameUuid)
	if err != nil {
		return nil, nil, err
	}

	player, err := game.FindPlayer(playerUuid)
	if err != nil {
		return nil, nil, err
	}

	return game, player, nil
}

// HandleCreateGame sets up a game with both fleets placed.
// Missing player uuids are generated.
func (r Request) HandleCreateGame(gm mb.GameManager, analytics *sqlc.AnalyticsManager) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	// every field of a create game request is optional
	req, err := decode[mc.ReqCreateGame](r)
	if err != nil && !errors.Is(err, cerr.ErrMissingPayload) {
		resp.AddError(err.Error(), "failed to unmarshal create game request")
		return nil, resp
	}

	if req.HostUuid == "" {
		req.HostUuid = newPlayerUuid()
	}
	if req.JoinUuid == "" {
		req.JoinUuid = newPlayerUuid()
	}

	var opts []mb.GameOption
	if req.Seed != nil {
		opts = append(opts, mb.WithSeed(*req.Seed))
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	game, err := gm.CreateGame(req.HostUuid, req.JoinUuid, opts...)
	if err != nil {
		if !errors.Is(err, cerr.ErrPlacementExhausted) {
			logging.Logger.Debug().Err(err).Msg(cerr.ConstErrInvalidCreate)
			resp.AddError(err.Error(), cerr.ConstErrInvalidCreate)
			return nil, resp
		}

		// for now not failing the request for it
		if err := analytics.IncrementPlacementsFailedCount(ctx); err != nil {
			logging.Logger.Error().Err(err).Msg("failed to count placement failure")
		}
		logging.Logger.Warn().Err(err).Msg(cerr.ConstErrPlacementFailed)
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return nil, resp
	}

	if err := analytics.IncrementGamesCreatedCount(ctx); err != nil {
		logging.Logger.Error().Err(err).Msg("failed to count created game")
	}

	logging.Logger.Info().
		Str("game_uuid", game.Uuid()).
		Int64("seed", game.Seed()).
		Int("grid_size", game.Rules().GridSize).
		Msg("game created")

	resp.AddPayload(mc.NewRespCreateGame(game))
	return game, resp
}

func (r Request) HandleFetchBoard(gm mb.GameManager) mc.Message[mc.RespBoard] {
	resp := mc.NewMessage[mc.RespBoard](mc.CodeFetchBoard)

	req, err := decode[mc.ReqFetchBoard](r)
	if err != nil {
		resp.AddError(err.Error(), "failed to unmarshal fetch board request")
		return resp
	}

	_, player, err := fetchGameAndPlayer(gm, req.GameUuid, req.PlayerUuid)
	if err != nil {
		resp.AddError(err.Error(), "")
		return resp
	}

	resp.AddPayload(mc.NewRespBoard(player))
	return resp
}

func (r Request) HandleShipAt(gm mb.GameManager) mc.Message[mc.RespShipAt] {
	resp := mc.NewMessage[mc.RespShipAt](mc.CodeShipAt)

	req, err := decode[mc.ReqShipAt](r)
	if err != nil {
		resp.AddError(err.Error(), "failed to unmarshal ship at request")
		return resp
	}

	_, player, err := fetchGameAndPlayer(gm, req.GameUuid, req.PlayerUuid)
	if err != nil {
		resp.AddError(err.Error(), "")
		return resp
	}

	if !player.Grid().InBounds(req.X, req.Y) {
		resp.AddError(cerr.ErrXorYOutOfGridBound(req.X, req.Y).Error(), "")
		return resp
	}

	payload := mc.RespShipAt{X: req.X, Y: req.Y}
	if ship, found := player.ShipAt(mb.NewCoordinates(req.X, req.Y)); found {
		respShip := mc.NewRespShip(ship)
		payload.Found = true
		payload.Ship = &respShip
	}

	resp.AddPayload(payload)
	return resp
}

func (r Request) HandleRecordMove(gm mb.GameManager) mc.Message[mc.RespRecordMove] {
	resp := mc.NewMessage[mc.RespRecordMove](mc.CodeRecordMove)

	req, err := decode[mc.ReqRecordMove](r)
	if err != nil {
		resp.AddError(err.Error(), "failed to unmarshal record move request")
		return resp
	}

	game, err := gm.FetchGame(req.GameUuid)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrMoveRejected)
		return resp
	}

	move, err := game.RecordMove(req.PlayerUuid, req.X, req.Y)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrMoveRejected)
		return resp
	}

	resp.AddPayload(mc.RespRecordMove{Move: move})
	return resp
}

func (r Request) HandleFetchHistory(gm mb.GameManager) mc.Message[mc.RespHistory] {
	resp := mc.NewMessage[mc.RespHistory](mc.CodeFetchHistory)

	req, err := decode[mc.ReqFetchHistory](r)
	if err != nil {
		resp.AddError(err.Error(), "failed to unmarshal fetch history request")
		return resp
	}

	game, err := gm.FetchGame(req.GameUuid)
	if err != nil {
		resp.AddError(err.Error(), "")
		return resp
	}

	resp.AddPayload(mc.RespHistory{
		GameUuid: game.Uuid(),
		Moves:    game.History().Moves(),
	})
	return resp
}

func (r Request) HandleEndGame(gm mb.GameManager) mc.Message[mc.RespEndGame] {
	resp := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)

	req, err := decode[mc.ReqEndGame](r)
	if err != nil {
		resp.AddError(err.Error(), "failed to unmarshal end game request")
		return resp
	}

	game, err := gm.FetchGame(req.GameUuid)
	if err != nil {
		resp.AddError(err.Error(), "")
		return resp
	}

	if err := game.FinishGame(req.WinnerUuid); err != nil {
		resp.AddError(err.Error(), "")
		return resp
	}

	logging.Logger.Info().Str("game_uuid", game.Uuid()).Str("winner_uuid", req.WinnerUuid).Msg("game finished")
	resp.AddPayload(mc.RespEndGame{GameUuid: game.Uuid(), WinnerUuid: game.WinnerUuid()})
	return resp
}
