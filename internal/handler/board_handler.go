package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/gymdesk/gymdesk-backend/internal/config"
	"github.com/gymdesk/gymdesk-backend/internal/middleware"
	"github.com/gymdesk/gymdesk-backend/internal/service"
	ws "github.com/gymdesk/gymdesk-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// BoardHandler streams ledger changes to front-desk wall displays.
type BoardHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *BoardHandler {
	return &BoardHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "board_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// BoardStream godoc
// WS /ws/v1/admin/board/stream?token=...
// Upgrades to WebSocket and relays every board event published on Redis.
// The client is expected to send {"action":"ping"} periodically.
func (h *BoardHandler) BoardStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, config.CacheKey.BoardChannel())
	defer sub.Close()
	events := sub.Channel()

	// Reader loop: answers pings and cancels the stream when the client
	// goes away.
	go func() {
		defer cancel()
		for {
			var env ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &env); err != nil {
				return
			}
			if env.Action == ws.ActionPing {
				if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
					return
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}

			var ev service.BoardEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				h.log.Error().Err(err).Msg("Bad board event payload")
				continue
			}

			update := ws.BoardUpdate{
				Event:          ws.EventBoard,
				Type:           ev.Type,
				ClassID:        ev.ClassID,
				MemberID:       ev.MemberID,
				OccurrenceDate: ev.OccurrenceDate,
			}
			if err := ws.WriteTyped(conn, update); err != nil {
				return
			}
		}
	}
}
