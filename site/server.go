// Package site serves the portfolio over HTTP.
//
// Routes:
//
//	GET  /                 portfolio page
//	GET  /api/data         content payload as JSON
//	GET  /api/carousel     selected video for ?rotation=
//	POST /api/contact      contact form (JSON or form-encoded)
//	GET  /carousel.png     carousel frame for ?rotation=&width=&height=
//	GET  /watch/{id}       redirect to the embedded player
//	GET  /health           liveness and recorded integration failures
package site

import (
	"context"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/teranos/discfolio"
	"github.com/teranos/discfolio/contact"
	"github.com/teranos/discfolio/content"
	"github.com/teranos/discfolio/logging"
)

//go:embed templates/page.html
var pageTemplate string

// DataSource supplies the payload; *content.Provider implements it.
type DataSource interface {
	AllData(ctx context.Context) content.Payload
}

// Options configures the server.
type Options struct {
	Title       string
	Owner       string
	Content     DataSource
	Contact     contact.Submitter
	Frame       discfolio.FrameConfig
	DiscRadius  float64
	ActiveScale float64
	Logger      *slog.Logger
}

// Server renders the portfolio.
type Server struct {
	opts   Options
	tpl    *template.Template
	logger *slog.Logger
	router chi.Router
}

// NewServer wires routes. Zero-valued options fall back to defaults.
func NewServer(opts Options) *Server {
	if opts.Content == nil {
		opts.Content = content.NewProvider(content.Options{})
	}
	if opts.Contact == nil {
		opts.Contact = contact.NewSubmitter("", false, 0, opts.Logger)
	}
	if opts.Frame.Width <= 0 || opts.Frame.Height <= 0 {
		opts.Frame = discfolio.DefaultFrameConfig()
	}
	if opts.Title == "" {
		opts.Title = opts.Owner
	}

	s := &Server{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "site"),
		tpl: template.Must(template.New("page").Funcs(template.FuncMap{
			"thumbnail": discfolio.ThumbnailURL,
			"embed":     discfolio.EmbedURL,
			"maps":      discfolio.MapsURL,
			"upper":     strings.ToUpper,
		}).Parse(pageTemplate)),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/health", HealthHandler(reportersOf(opts.Content, opts.Contact)...).ServeHTTP)
	r.Get("/carousel.png", s.handlePoster)
	r.Get("/watch/{id}", s.handleWatch)
	r.Route("/api", func(r chi.Router) {
		r.Get("/data", s.handleData)
		r.Get("/carousel", s.handleCarousel)
		r.Post("/contact", s.handleContact)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewHTTPServer wraps handler with the timeouts used in production.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.String("request_id", middleware.GetReqID(r.Context())),
			slog.Duration("elapsed", time.Since(start)))
	})
}
