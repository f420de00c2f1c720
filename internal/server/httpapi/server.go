// Package httpapi exposes the authentication, task and chat operations over
// a JSON HTTP API built on gin. All task and chat routes are bearer-token
// protected and namespaced by the owner's user id; the path id must match
// the token's subject.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

// Users is the authentication surface the API needs.
type Users interface {
	Signup(ctx context.Context, email, password string) (*services.AuthResult, error)
	Signin(ctx context.Context, email, password string) (*services.AuthResult, error)
}

// Tasks is the task-management surface the API needs.
type Tasks interface {
	Create(ctx context.Context, ownerID, title, description string) (*models.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*models.Task, error)
	List(ctx context.Context, ownerID string, limit, offset int) ([]*models.Task, int, error)
	Update(ctx context.Context, ownerID, taskID string, title, description *string) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	ToggleComplete(ctx context.Context, ownerID, taskID string) (*models.Task, error)
}

// Chat runs one chat turn against the task agent.
type Chat interface {
	Chat(ctx context.Context, userID, conversationID, message string) (*services.ChatResult, error)
}

type Server struct {
	address     string
	logger      logging.Logger
	users       Users
	tasks       Tasks
	chat        Chat
	jwtSecret   []byte
	corsOrigins string
}

func NewServer(cfg *config.Config, l logging.Logger, us Users, ts Tasks, ch Chat) *Server {
	return &Server{
		address:     cfg.EndpointAddrHTTP,
		logger:      l.With("module", "http_server"),
		users:       us,
		tasks:       ts,
		chat:        ch,
		jwtSecret:   []byte(cfg.SecretKey),
		corsOrigins: cfg.CORSOrigins,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.corsMiddleware())

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/auth/signup", s.handleSignup)
		api.POST("/auth/signin", s.handleSignin)

		owned := api.Group("/:user_id", s.authMiddleware(), s.ownerMiddleware())
		{
			owned.GET("/tasks", s.handleListTasks)
			owned.POST("/tasks", s.handleCreateTask)
			owned.GET("/tasks/:task_id", s.handleGetTask)
			owned.PUT("/tasks/:task_id", s.handleUpdateTask)
			owned.DELETE("/tasks/:task_id", s.handleDeleteTask)
			owned.PATCH("/tasks/:task_id/complete", s.handleToggleTask)

			owned.POST("/chat", s.handleChat)
		}
	}

	return r
}

// Run serves the API until the context is cancelled, then shuts the server
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server...", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "taskkeeper", "status": "ok"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
