package connection

const (
	CodeCreateGame uint8 = iota
	CodeFetchBoard
	CodeShipAt
	CodeRecordMove
	CodeFetchHistory
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)
