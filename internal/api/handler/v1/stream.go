package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/api/handler/v1/response"
	"github.com/vietanh2810/squares-pool/internal/api/middleware"
	"github.com/vietanh2810/squares-pool/internal/broadcast"
	"github.com/vietanh2810/squares-pool/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var errNoIdentity = errors.New("missing caller identity")

type StreamHandler struct {
	svc      PoolService
	events   *broadcast.Broadcaster
	upgrader websocket.Upgrader
}

func NewStreamHandler(svc PoolService, events *broadcast.Broadcaster, allowedOrigins []string) *StreamHandler {
	return &StreamHandler{
		svc:    svc,
		events: events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || (len(allowed) == 1 && allowed[0] == "*") {
		return func(*http.Request) bool { return true }
	}

	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// HandleEvents godoc
// @Summary      Stream board events
// @Description  Upgrades to a websocket and streams the board topic and the caller's user topic. Events missed by a slow client are dropped; use the read endpoints to catch up.
// @Tags         boards
// @Produce      json
// @Param        boardID  path      int     true   "Board ID"
// @Param        token    query     string  false  "Bearer token for clients that cannot set headers"
// @Success      101      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /boards/{boardID}/events [get]
// @Security BearerAuth
func (h *StreamHandler) HandleEvents(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "boardID")
	if !ok {
		return
	}

	if _, err := h.svc.GetBoard(ctx.Request.Context(), boardID); err != nil {
		renderServiceErr(ctx, "HandleEvents -> h.svc.GetBoard", err)
		return
	}

	id, ok := middleware.IdentityFrom(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errNoIdentity))
		return
	}

	// Subscribe first so nothing published after the handshake is missed.
	sub := h.events.Subscribe(domain.BoardTopic(boardID), domain.UserTopic(id.UserID))

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		sub.Close()
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, sub: sub}

	zap.L().Debug("event stream opened",
		zap.Uint("board_id", boardID),
		zap.String("user_id", id.UserID),
		zap.String("subscriber", sub.ID()),
	)

	go c.writePump()
	go c.readPump()
}

type client struct {
	conn *websocket.Conn
	sub  *broadcast.Subscription
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sub.Close()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.sub.Events():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			msg, err := json.Marshal(event)
			if err != nil {
				zap.L().Error("failed to encode event", zap.String("type", string(event.Type)), zap.Error(err))
				continue
			}
			if err = c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains control frames; clients never send events. Closing the
// subscription on disconnect also stops writePump.
func (c *client) readPump() {
	defer c.sub.Close()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("event stream closed", zap.String("subscriber", c.sub.ID()), zap.Error(err))
			}
			return
		}
	}
}
