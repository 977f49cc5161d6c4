package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/quotepicker/stocks/internal/config"
	"github.com/quotepicker/stocks/internal/controller"
	"github.com/quotepicker/stocks/internal/logger"
	"github.com/quotepicker/stocks/internal/quote"
)

//go:embed templates/*.html
var templates embed.FS

// Source is the controller as seen by the HTTP surface.
type Source interface {
	Snapshot() controller.Snapshot
	Companies() []quote.Company
	Select(index int)
}

type Server struct {
	httpServer *http.Server
	source     Source
	config     *config.Config
	logger     *logger.Logger
	dashboard  *template.Template
}

func NewServer(src Source, cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{
		source:    src,
		config:    cfg,
		logger:    log,
		dashboard: template.Must(template.ParseFS(templates, "templates/dashboard.html")),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("POST /select", s.handleSelectForm)
	mux.HandleFunc("GET /api/display", s.handleDisplay)
	mux.HandleFunc("GET /api/companies", s.handleCompanies)
	mux.HandleFunc("POST /api/select", s.handleSelect)
	mux.HandleFunc("GET /api/logo", s.handleLogo)
	return mux
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Web.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
