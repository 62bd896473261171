package api

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-fleet/db/sqlc"
	"github.com/saeidalz13/battleship-fleet/internal/logging"
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
	mc "github.com/saeidalz13/battleship-fleet/models/connection"
)

var (
	upgrader = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// a 10x10 board with its ships fits comfortably
		ReadBufferSize:  2048,
		WriteBufferSize: 4096,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type RequestProcessor struct {
	gameManager mb.GameManager
	analytics   *sqlc.AnalyticsManager
	ipnet       net.IPNet
}

// NewRequestProcessor serves game setup over websocket. A nil
// q runs the processor without analytics.
func NewRequestProcessor(gameManager mb.GameManager, q sqlc.Querier) RequestProcessor {
	rp := RequestProcessor{
		gameManager: gameManager,
		ipnet:       findServerIpNet(),
	}
	rp.analytics = sqlc.NewDbManager(q, rp.ipnet).Analytics
	return rp
}

// findServerIpNet picks the first non-loopback IPv4 address
// of the host, falling back to 127.0.0.1.
func findServerIpNet() net.IPNet {
	fallback := net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		logging.Logger.Warn().Err(err).Msg("failed to list network interfaces")
		return fallback
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP

			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP

			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				return net.IPNet{IP: ip.To4(), Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	logging.Logger.Warn().Msg("no external ipv4 address found; using loopback for analytics")
	return fallback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger.Error().Err(err).Msg("could not upgrade connection")
		return
	}

	conn := mc.NewConn(ws)
	logging.Logger.Info().Str("remote_addr", conn.RemoteAddr()).Msg("a new connection established")
	rp.processRequests(conn)
}

// codeOf extracts the signal code. A frame without one, or
// one that is not JSON at all, reports false.
func codeOf(payload []byte) (uint8, bool) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	if err := json.Unmarshal(payload, &signal); err != nil || signal.Code == nil {
		return 0, false
	}
	return *signal.Code, true
}

func (rp RequestProcessor) processRequests(conn *mc.Conn) {
	// Games live as long as the connection that created them
	createdGames := make([]string, 0, 2)

	defer func() {
		for _, gameUuid := range createdGames {
			rp.gameManager.TerminateGame(gameUuid)
		}
		_ = conn.Close()
		logging.Logger.Info().Str("remote_addr", conn.RemoteAddr()).Int("terminated_games", len(createdGames)).Msg("connection closed")
	}()

requestLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := conn.ReadWithRetry()
		if err != nil {
			break requestLoop
		}

		code, ok := codeOf(payload)
		if !ok {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err := conn.WriteWithRetry(msg, mc.MessageTypeJSON); err != nil {
				break requestLoop
			}
			continue requestLoop
		}

		req := NewRequest(payload)
		var resp interface{}

		switch code {
		case mc.CodeCreateGame:
			game, respMsg := req.HandleCreateGame(rp.gameManager, rp.analytics)
			if game != nil {
				createdGames = append(createdGames, game.Uuid())
			}
			resp = respMsg

		case mc.CodeFetchBoard:
			resp = req.HandleFetchBoard(rp.gameManager)

		case mc.CodeShipAt:
			resp = req.HandleShipAt(rp.gameManager)

		case mc.CodeRecordMove:
			resp = req.HandleRecordMove(rp.gameManager)

		case mc.CodeFetchHistory:
			resp = req.HandleFetchHistory(rp.gameManager)

		case mc.CodeEndGame:
			resp = req.HandleEndGame(rp.gameManager)

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			resp = respInvalidSignal
		}

		if err := conn.WriteWithRetry(resp, mc.MessageTypeJSON); err != nil {
			break requestLoop
		}
	}
}
