package connection

import (
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

type RespShip struct {
	ShipID      string           `json:"ship_id"`
	Kind        mb.ShipKind      `json:"kind"`
	Name        string           `json:"name"`
	Length      int              `json:"length"`
	Orientation string           `json:"orientation"`
	Coordinates []mb.Coordinates `json:"coordinates"`
	Hits        int              `json:"hits"`
	IsSunk      bool             `json:"is_sunk"`
}

func NewRespShip(ship *mb.Ship) RespShip {
	return RespShip{
		ShipID:      ship.ID(),
		Kind:        ship.Kind(),
		Name:        ship.Name(),
		Length:      ship.Length(),
		Orientation: ship.Orientation().String(),
		Coordinates: ship.Coordinates(),
		Hits:        ship.Hits(),
		IsSunk:      ship.IsSunk(),
	}
}

// RespBoard is one player's board as renderers see it:
// markers indexed [x][y], "." for empty.
type RespBoard struct {
	PlayerUuid string     `json:"player_uuid"`
	GridSize   int        `json:"grid_size"`
	Grid       [][]string `json:"grid"`
	Ships      []RespShip `json:"ships"`
}

func NewRespBoard(player *mb.Player) RespBoard {
	ships := player.Ships()
	respShips := make([]RespShip, 0, len(ships))
	for _, ship := range ships {
		respShips = append(respShips, NewRespShip(ship))
	}

	return RespBoard{
		PlayerUuid: player.Uuid(),
		GridSize:   player.Grid().Size(),
		Grid:       player.Grid().Markers(),
		Ships:      respShips,
	}
}

type RespCreateGame struct {
	GameUuid string    `json:"game_uuid"`
	Seed     int64     `json:"seed"`
	HostUuid string    `json:"host_uuid"`
	JoinUuid string    `json:"join_uuid"`
	Host     RespBoard `json:"host"`
	Join     RespBoard `json:"join"`
}

func NewRespCreateGame(game *mb.Game) RespCreateGame {
	host := game.FetchPlayer(true)
	join := game.FetchPlayer(false)

	return RespCreateGame{
		GameUuid: game.Uuid(),
		Seed:     game.Seed(),
		HostUuid: host.Uuid(),
		JoinUuid: join.Uuid(),
		Host:     NewRespBoard(host),
		Join:     NewRespBoard(join),
	}
}

type RespShipAt struct {
	X     int       `json:"x"`
	Y     int       `json:"y"`
	Found bool      `json:"found"`
	Ship  *RespShip `json:"ship,omitempty"`
}

type RespRecordMove struct {
	Move mb.BattleMove `json:"move"`
}

type RespHistory struct {
	GameUuid string          `json:"game_uuid"`
	Moves    []mb.BattleMove `json:"moves"`
}

type RespEndGame struct {
	GameUuid   string `json:"game_uuid"`
	WinnerUuid string `json:"winner_uuid"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
