// internal/server/server.go
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/pkg/apperror"
)

// Server provides the HTTP boundary over the auth and task services.
type Server struct {
	engine *gin.Engine
	auth   *service.AuthService
	tasks  *service.TaskService
	logger *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(auth *service.AuthService, tasks *service.TaskService, resolver *middleware.Resolver, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	srv := &Server{
		engine: router,
		auth:   auth,
		tasks:  tasks,
		logger: logger,
	}

	srv.registerRoutes(resolver)
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes(resolver *middleware.Resolver) {
	login := s.engine.Group("/login")
	{
		login.POST("", s.handleLogin)
		login.POST("/register", s.handleRegister)
	}

	api := s.engine.Group("/api")
	api.GET("/healthz", s.handleHealth)

	task := api.Group("/task")
	task.Use(resolver.RequireAuth())
	{
		task.POST("", s.handleCreateTask)
		task.PUT("", s.handleUpdateTask)
		task.GET("/:id", s.handleGetTask)
		task.DELETE("/:id", s.handleDeleteTask)
		task.GET("/get-by-owner", s.handleListByOwner)
		task.GET("/get-by-executor", s.handleListByExecutor)
		task.PATCH("/set-status", s.handleChangeStatus)
		task.PATCH("/set-executor", s.handleSetExecutor)
		task.POST("/add-comment", s.handleAddComment)
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps an error kind to a client-visible status. Unclassified
// errors are logged and hidden behind a generic message.
func (s *Server) respondError(c *gin.Context, err error) {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperror.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperror.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperror.KindUnauthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
