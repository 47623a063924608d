package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/AtRiskMedia/storefront-builder/internal/application/services"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/performance"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

// Live command actions.
const (
	ActionStyles = "styles"
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionUndo   = "undo"
	ActionRedo   = "redo"
	ActionSave   = "save"
	ActionFlat   = "flat"
	ActionPing   = "ping"
)

// LiveCommand is one message from a live editor client.
type LiveCommand struct {
	ID          string                        `json:"id" validate:"max=64"`
	Action      string                        `json:"action" validate:"required,oneof=styles add remove undo redo save flat ping"`
	ComponentID string                        `json:"componentId" validate:"required_if=Action styles,required_if=Action remove"`
	Styles      map[string]any                `json:"styles" validate:"required_if=Action styles"`
	Component   *services.AddComponentRequest `json:"component" validate:"required_if=Action add"`
}

// LiveReply answers a LiveCommand. Session events are sent as they are.
type LiveReply struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Action string `json:"action,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
	Status int    `json:"status,omitempty"`
}

// LiveHandlers serves the websocket channel of an editor session.
type LiveHandlers struct {
	editorService *services.EditorService
	perfTracker   *performance.Tracker
	upgrader      websocket.Upgrader
	validate      *validator.Validate
	logger        *logging.ChanneledLogger
}

// NewLiveHandlers creates live handlers accepting connections from the given origins. Requests
// without an Origin header are accepted.
func NewLiveHandlers(editorService *services.EditorService, perfTracker *performance.Tracker, origins []string, logger *logging.ChanneledLogger) *LiveHandlers {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &LiveHandlers{
		editorService: editorService,
		perfTracker:   perfTracker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin] || allowed["*"]
			},
		},
		validate: validator.New(),
		logger:   logger,
	}
}

// Live handles GET /api/v1/editor/sessions/:sid/live
func (h *LiveHandlers) Live(c *gin.Context) {
	sessionID := c.Param("sid")
	events, err := h.editorService.Subscribe(sessionID)
	if err != nil {
		respondError(c, h.logger, logging.ChannelEditor, "live_subscribe", err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.editorService.Unsubscribe(sessionID, events)
		h.logger.HTTP().Warn("Websocket upgrade failed", "sessionId", sessionID, "error", err.Error())
		return
	}
	h.logger.Editor().Info("Live client connected", "sessionId", sessionID)

	var writeMu sync.Mutex
	write := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(v)
	}
	control := func(messageType int, data []byte) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteControl(messageType, data, time.Now().Add(writeWait))
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					_ = control(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
					conn.Close()
					return
				}
				if err := write(event); err != nil {
					conn.Close()
					return
				}
			case <-ticker.C:
				if err := control(websocket.PingMessage, nil); err != nil {
					conn.Close()
					return
				}
			case <-done:
				return
			}
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx := c.Request.Context()
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Editor().Warn("Live connection dropped", "sessionId", sessionID, "error", err.Error())
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var cmd LiveCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			_ = write(LiveReply{Type: "error", Error: "invalid message", Status: http.StatusBadRequest})
			continue
		}
		if err := write(h.dispatch(ctx, sessionID, cmd)); err != nil {
			break
		}
	}

	close(done)
	h.editorService.Unsubscribe(sessionID, events)
	conn.Close()
	h.logger.Editor().Info("Live client disconnected", "sessionId", sessionID)
}

// dispatch runs one command against the session and builds the reply.
func (h *LiveHandlers) dispatch(ctx context.Context, sessionID string, cmd LiveCommand) LiveReply {
	reply := LiveReply{Type: "result", ID: cmd.ID, Action: cmd.Action}
	if err := h.validate.Struct(cmd); err != nil {
		reply.Type = "error"
		reply.Error = err.Error()
		reply.Status = http.StatusBadRequest
		return reply
	}

	marker := h.perfTracker.StartOperation("live:"+cmd.Action, sessionID)
	defer marker.Complete()

	var (
		data any
		err  error
	)
	switch cmd.Action {
	case ActionStyles:
		data, err = h.editorService.UpdateStyles(sessionID, cmd.ComponentID, cmd.Styles)
	case ActionAdd:
		data, err = h.editorService.AddComponent(sessionID, *cmd.Component)
	case ActionRemove:
		data, err = h.editorService.RemoveComponent(sessionID, cmd.ComponentID)
	case ActionUndo:
		data, err = h.editorService.Undo(sessionID)
	case ActionRedo:
		data, err = h.editorService.Redo(sessionID)
	case ActionSave:
		data, err = h.editorService.Save(ctx, sessionID)
	case ActionFlat:
		data, err = h.editorService.Flat(sessionID)
	case ActionPing:
		reply.Type = "pong"
		return reply
	}

	if err != nil {
		marker.SetError(err)
		reply.Type = "error"
		reply.Status = statusFor(err)
		reply.Error = err.Error()
		if reply.Status == http.StatusInternalServerError {
			h.logger.Editor().Error("Live command failed", "sessionId", sessionID, "action", cmd.Action, "error", err.Error())
			reply.Error = "internal server error"
		}
		return reply
	}
	reply.Data = data
	return reply
}
