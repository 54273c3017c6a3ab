package controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"supasocial/logger"
	"supasocial/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// SessionEvent is pushed to the page whenever the signed-in user changes.
type SessionEvent struct {
	SignedIn bool         `json:"signed_in"`
	User     *models.User `json:"user"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SessionEventsHandler GET /session/events keeps the bridge of this request
// mounted for as long as the socket is open.
func (h *Handler) SessionEventsHandler(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Warnf("controller:SessionEventsHandler: upgrade: %v", err)
		return
	}
	defer conn.Close()

	bridge := bridgeOf(ctx)
	events := make(chan *models.User, 8)
	unsubscribe := bridge.Subscribe(func(u *models.User) {
		select {
		case events <- u:
		default:
			logger.Warnf("controller:SessionEventsHandler: dropped event for session %s", bridge.SessionID())
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if !writeEvent(conn, bridge.User()) {
		return
	}
	for {
		select {
		case u := <-events:
			if !writeEvent(conn, u) {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func writeEvent(conn *websocket.Conn, u *models.User) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(SessionEvent{SignedIn: u != nil, User: u}); err != nil {
		logger.Debugf("controller:writeEvent: %v", err)
		return false
	}
	return true
}

// readPump drains the socket so pongs and the close frame are seen.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debugf("controller:readPump: %v", err)
			}
			return
		}
	}
}
