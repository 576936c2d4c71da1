package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/xufanglin/rimmich/api/controllers"
	"github.com/xufanglin/rimmich/api/middlewares"
	"github.com/xufanglin/rimmich/api/models"
	"github.com/xufanglin/rimmich/api/notifyhub"
	"github.com/xufanglin/rimmich/tool"
)

// DefaultAddr keeps the control API on loopback next to the Immich default port.
const DefaultAddr = "127.0.0.1:2284"

// Server is the local control API used to start, watch and cancel batches.
type Server struct {
	addr   string
	hub    *notifyhub.Hub
	engine *gin.Engine
	server *http.Server
	mu     sync.RWMutex
}

// NewServer creates a server listening on addr, DefaultAddr when empty.
func NewServer(addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	hub := notifyhub.New()
	models.SetNotifyHub(hub)
	return &Server{addr: addr, hub: hub}
}

// Handler builds the routes without listening, used by tests.
func (s *Server) Handler() http.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		s.engine = s.setupRoutes()
	}
	return s.engine
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	self := engine.Group("/api/self/v1", middlewares.OnlyAllowLocal)
	{
		self.GET("/status", controllers.UserStatus)             // Running flag and active batch count
		self.GET("/config", controllers.UserConfigGet)          // Settings with masked api keys
		self.PATCH("/config", controllers.UserConfigPatch)      // Partial settings update
		self.POST("/upload", controllers.UserStartUpload)       // Start a batch in the background
		self.GET("/batches/:id", controllers.UserGetBatch)      // Batch progress snapshot
		self.POST("/cancel", controllers.UserCancelBatch)       // Cancel a running batch
		self.GET("/notify-ws", notifyhub.HandleNotifyWS(s.hub)) // Status lines as they happen
	}
	return engine
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	handler := s.Handler()

	s.mu.Lock()
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting control API on http://%s", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for open ones to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
