// Package echoapi serves the school-management REST contract from memory.
package echoapi

import (
	"context"
	"expvar"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/storage/inmem"
)

type (
	Options struct {
		Address        string
		Debug          bool
		DisableReqLogs bool
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DB             *inmemdb.DB
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestID())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in debug mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)
	s.app.GET("/debug/vars", echo.WrapHandler(expvar.Handler()))

	api := s.app.Group("/api")
	v := validation{validate: s.opts.Validate, translator: s.opts.Translator}
	registerPedagogicalAPI(api, s.opts.DB, v)
	registerAcademicAPI(api, s.opts.DB, v)
	registerDiaryAPI(api, s.opts.DB, v)
	registerPeopleAPI(api, s.opts.DB)
	registerReportsAPI(api, s.opts.DB)
	registerPortalAPI(api, s.opts.DB, v)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "SGE development API")
}
