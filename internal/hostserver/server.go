// Package hostserver is the gin + websocket transport around one world's
// protocol.Handler: REST endpoints for request/response narrators and a
// long-lived session socket for narrators that want turn_phase_messages
// pushed without polling. It is host plumbing only — HandleMessage stays
// the single source of truth for behavior; this package never inspects
// world state directly.
package hostserver

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sbenjam1n/ifengine/internal/enginebuild"
	"github.com/sbenjam1n/ifengine/internal/hostmetrics"
)

// Server wraps one running engine with the REST/websocket transport.
type Server struct {
	engine   *enginebuild.Engine
	logger   *slog.Logger
	metrics  *hostmetrics.Metrics
	upgrader websocket.Upgrader
}

// New builds a Server around engine. logger and metrics may be nil; a nil
// logger is replaced by a text logger on stderr, a nil metrics set skips
// recording.
func New(engine *enginebuild.Engine, logger *slog.Logger, metrics *hostmetrics.Metrics) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Server{
		engine:  engine,
		logger:  logger,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The demo host has no browser origin policy of its own to
			// enforce; an operator fronting this with a real narrator
			// client should terminate CORS/origin checks in front of it.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the gin.Engine with CORS, the command/query REST
// endpoints, and the websocket session socket.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.POST("/command", s.handleREST)
	router.POST("/query", s.handleREST)
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/ws", s.handleWebSocket)

	return router
}

// handleREST services both /command and /query the same way: the
// incoming body already carries its own "type" field, which
// Handler.HandleMessage dispatches on (§4.6).
func (s *Server) handleREST(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"type": "error", "message": err.Error()})
		return
	}

	sessionID := c.GetHeader("X-Session-Id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply := s.dispatch(c.Request.Context(), sessionID, body)
	c.Header("X-Session-Id", sessionID)
	c.JSON(http.StatusOK, reply)
}

// handleWebSocket upgrades the connection and loops reading one command
// message at a time, replying on the same socket — a session's narrator
// stays attached instead of issuing a REST call per poll.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("hostserver: websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	s.logger.Info("hostserver: session connected", "session_id", sessionID)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("hostserver: session disconnected", "session_id", sessionID, "error", err)
			return
		}

		reply := s.dispatch(c.Request.Context(), sessionID, raw)
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Error("hostserver: websocket write failed", "session_id", sessionID, "error", err)
			return
		}
	}
}

// dispatch runs raw through the engine's protocol handler inside one
// tracing span, records metrics, and logs the supplemented stderr
// diagnostic (§3 supplemented feature 7) the moment a reply comes back
// fatal — the core handler itself never logs.
func (s *Server) dispatch(ctx context.Context, sessionID string, raw []byte) map[string]any {
	ctx, span := startTurnSpan(ctx, sessionID)
	defer span.End()

	start := time.Now()
	reply := s.engine.Handler.HandleMessage(raw)
	elapsed := time.Since(start)

	markTurnResult(span, reply)

	messageType, _ := reply["type"].(string)
	if s.metrics != nil {
		if verb, ok := reply["action"].(string); ok {
			success, _ := reply["success"].(bool)
			s.metrics.RecordTurn(verb, success)
		}
		s.metrics.ObserveDispatch(messageType, elapsed.Seconds())
		s.metrics.SetCorrupted(sessionID, s.engine.Handler.Corrupted())
	}

	if fatalReply(reply) {
		s.logger.Error("hostserver: state_corrupted latched", "session_id", sessionID, "reply", reply)
	}

	return reply
}

func fatalReply(reply map[string]any) bool {
	errObj, ok := reply["error"].(map[string]any)
	if !ok {
		return false
	}
	fatal, _ := errObj["fatal"].(bool)
	return fatal
}
