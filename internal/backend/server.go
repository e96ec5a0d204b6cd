package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/config"
)

// AbsenceNotifier is told about every Absent record the backend stores.
type AbsenceNotifier interface {
	NotifyAbsence(ctx context.Context, record *api.AttendanceRecord) error
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	store    Store
	notifier AbsenceNotifier

	registry *prometheus.Registry
	metrics  *metrics
	engine   *gin.Engine
}

// NewServer wires the REST routes. notifier may be nil.
func NewServer(conf *config.Config, logger *zap.Logger, store Store, notifier AbsenceNotifier) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		config:   conf,
		logger:   logger,
		store:    store,
		notifier: notifier,
		registry: registry,
		metrics:  newMetrics(registry),
	}
	s.engine = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))
	origins := s.config.Api.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: !allowsAll(origins),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, api.HelloResponse{Hello: "World"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	setupStudentService(s, r)
	setupAttendanceService(s, r)

	return r
}

func allowsAll(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Api.ListenAddress,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Starting api server", zap.String("bind_address", srv.Addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type service struct {
	server *Server
	log    *zap.Logger
}

func abortWithDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, &api.ErrorResponse{Detail: detail})
}
