package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/karlseguin/ccache/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/internal/config"
	lf "github.com/bigredeye/roster/internal/logfield"
	"github.com/bigredeye/roster/pkg/client/roster"
	static "github.com/bigredeye/roster/web"
)

type server struct {
	config *config.Config
	logger *zap.Logger

	client     *roster.Client
	workspaces *ccache.Cache
	engine     *gin.Engine
}

func newServer(config *config.Config, logger *zap.Logger) (*server, error) {
	s := &server{
		config:     config,
		logger:     logger,
		client:     roster.NewClient(config.Backend.BaseURL, config.Backend.Timeout),
		workspaces: ccache.New(ccache.Configure().MaxSize(config.Workspaces.MaxSize)),
	}

	engine, err := s.setupRouter()
	if err != nil {
		s.workspaces.Stop()
		return nil, err
	}
	s.engine = engine
	return s, nil
}

func buildHTMLTemplates(funcMap template.FuncMap) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(static.StaticTemplates, "*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "Failed to collect html templates")
	}
	return tmpl, nil
}

func (s *server) setupRouter() (*gin.Engine, error) {
	funcs := template.FuncMap{
		"itoa": strconv.Itoa,
	}
	tmpl, err := buildHTMLTemplates(funcs)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build html templates")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))

	r.SetHTMLTemplate(tmpl)

	if err := setupSessions(s, r); err != nil {
		return nil, err
	}

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})

	r.GET("/", s.withWorkspace, s.RenderHomePage)
	setupStudentService(s, r)
	setupAttendanceService(s, r)

	r.StaticFS("/static", http.FS(static.StaticContent))

	return r, nil
}

func (s *server) run(ctx context.Context) error {
	defer s.workspaces.Stop()

	srv := &http.Server{
		Addr:         s.config.Server.ListenAddress,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server",
			zap.String("bind_address", srv.Addr),
			lf.Endpoint(s.config.Backend.BaseURL),
		)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
