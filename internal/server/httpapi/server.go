// Package httpapi serves the REST API under /api with gin, along with
// /healthz and /metrics.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/metrics"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/gin-gonic/gin"
)

type userSvc interface {
	Register(ctx context.Context, in services.RegisterInput) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	Authenticate(token string) (string, error)
}

type taskSvc interface {
	List(ctx context.Context, callerID string, filter *models.TaskFilter) ([]*models.Task, error)
	Search(ctx context.Context, callerID string, term string) ([]*models.Task, error)
	Get(ctx context.Context, callerID, id string) (*models.Task, error)
	Create(ctx context.Context, callerID string, in services.CreateTaskInput) (*models.Task, error)
	Update(ctx context.Context, callerID, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, callerID, id string) error
	Stats(ctx context.Context, callerID string, ref *time.Time) (*models.Stats, error)
}

type exportSvc interface {
	Export(ctx context.Context, callerID string) (string, error)
}

type HTTPServer struct {
	address string
	users   userSvc
	tasks   taskSvc
	exports exportSvc
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us userSvc, ts taskSvc, es exportSvc) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
		exports: es,
	}
}

// Router builds the gin engine with every route registered.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.GET("/user", s.requireAuth(), s.currentUser)

	tasks := r.Group("/api/tasks", s.requireAuth())
	tasks.GET("", s.listTasks)
	tasks.GET("/filter", s.filterTasks)
	tasks.GET("/search", s.searchTasks)
	tasks.GET("/stats", s.taskStats)
	tasks.GET("/export", s.exportTasks)
	tasks.GET("/:id", s.getTask)
	tasks.POST("", s.createTask)
	tasks.PUT("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
