package connection

type ReqCreateGame struct {
	HostUuid string `json:"host_uuid"`
	JoinUuid string `json:"join_uuid"`

	// Optional; a random seed is picked when absent
	Seed *int64 `json:"seed,omitempty"`
}

type ReqFetchBoard struct {
	GameUuid   string `json:"game_uuid"`
	PlayerUuid string `json:"player_uuid"`
}

type ReqShipAt struct {
	GameUuid   string `json:"game_uuid"`
	PlayerUuid string `json:"player_uuid"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

type ReqRecordMove struct {
	GameUuid   string `json:"game_uuid"`
	PlayerUuid string `json:"player_uuid"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

type ReqFetchHistory struct {
	GameUuid string `json:"game_uuid"`
}

type ReqEndGame struct {
	GameUuid   string `json:"game_uuid"`
	WinnerUuid string `json:"winner_uuid"`
}
