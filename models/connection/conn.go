package connection

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-fleet/internal/logging"
)

const (
	maxWsRetries  uint8 = 2
	backOffFactor uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

// Conn wraps a websocket connection with retrying reads and
// writes. Writes are serialized; gorilla allows one writer.
type Conn struct {
	ws        *websocket.Conn
	createdAt time.Time
	writeMu   sync.Mutex
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ws:        ws,
		createdAt: time.Now(),
	}
}

func (c *Conn) RemoteAddr() string {
	return c.ws.RemoteAddr().String()
}

func (c *Conn) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

func onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		logging.Logger.Warn().Err(err).Msg("timeout error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		logging.Logger.Warn().Err(err).Msg("high server load/traffic error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		logging.Logger.Info().Err(err).Msg("close error")
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		logging.Logger.Error().Err(err).Msg("critical error")
		return ConnLoopBreak
	}

	/*
		Binary frames, invalid UTF-8 and oversized payloads
		most likely come from something other than our clients.
		Breaking not to overwhelm the server with them.
	*/
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		logging.Logger.Info().Err(err).Msg("non-critical error")
		return ConnLoopBreak
	}

	logging.Logger.Error().Err(err).Msg("unexpected error")
	return ConnLoopBreak
}

// WriteWithRetry writes msg as JSON or raw text depending
// on msgType. Timeouts are retried with a linear backoff.
func (c *Conn) WriteWithRetry(msg interface{}, msgType uint8) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var retries uint8

writeLoop:
	for {
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = c.ws.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = c.ws.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		if onConnErr(err) == ConnLoopRetry && retries < maxWsRetries {
			retries++
			logging.Logger.Warn().Str("remote_addr", c.RemoteAddr()).Uint8("retry", retries).Msg("writing to ws failed; retrying...")
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			continue writeLoop
		}
		return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
	}
}

// ReadWithRetry returns the next frame, retrying reads that
// timed out. Any other failure ends the connection.
func (c *Conn) ReadWithRetry() (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := c.ws.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		if onConnErr(err) == ConnLoopRetry && retries < maxWsRetries {
			retries++
			logging.Logger.Warn().Str("remote_addr", c.RemoteAddr()).Uint8("retry", retries).Msg("failed to read from ws conn; retrying...")
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			continue
		}

		logging.Logger.Debug().Str("remote_addr", c.RemoteAddr()).Err(err).Msg("break ws conn loop")
		return -1, nil, NewConnErr(ConnLoopBreak).AddDesc(err.Error())
	}
}
