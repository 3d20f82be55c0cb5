package ui

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"txdash/adapters/excel"
	"txdash/internal"
	"txdash/ports"
	"txdash/ui/middleware"
)

// Config holds the HTML server's presentation settings
type Config struct {
	Title string
	// Footer is markdown shown under every page; empty uses the default.
	Footer string
}

// Server is the HTML dashboard
type Server struct {
	router    *gin.Engine
	reader    ports.ReaderPort
	exporter  *excel.Exporter
	templates *template.Template
	title     string
	footer    template.HTML
	logger    *internal.Logger
}

// NewServer creates the dashboard server over reader
func NewServer(reader ports.ReaderPort, cfg Config) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	footer := cfg.Footer
	if footer == "" {
		footer = defaultFooter
	}

	s := &Server{
		router:    gin.New(),
		reader:    reader,
		exporter:  excel.NewExporter(),
		templates: templates,
		title:     cfg.Title,
		footer:    renderMarkdown(footer),
		logger:    internal.DefaultLogger,
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return err
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/sections/:slug", s.handleSection)
	s.router.GET("/datasets/:name/export.xlsx", s.handleExport)
	s.router.NoRoute(s.handleNotFound)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves the dashboard on addr
func (s *Server) Start(addr string) error {
	s.logger.Info("[Server] Starting dashboard on http://%s", addr)
	return s.router.Run(addr)
}
