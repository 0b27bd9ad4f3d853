package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"

	"github.com/catalogdash/catalogdash/internal/analytics"
	"github.com/catalogdash/catalogdash/internal/dashboard"
	"github.com/catalogdash/catalogdash/internal/ingest"
	"github.com/catalogdash/catalogdash/internal/server/response"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Options configures a Server.
type Options struct {
	Defaults       dashboard.Controls
	AllowedOrigins []string
	Report         *ingest.Report
	Logger         zerolog.Logger
}

// Server is the HTTP server for the dashboard page and its JSON API.
type Server struct {
	dash      *dashboard.Dashboard
	modals    *dashboard.ModalBoard
	opts      Options
	countries []string
	dataDate  string
	pages     map[string]*template.Template
	router    chi.Router
	logger    zerolog.Logger
}

// New creates a new Server.
func New(dash *dashboard.Dashboard, opts Options) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"isSelected": func(c dashboard.Controls, id, value string) bool {
			return controlValue(c, id) == value
		},
		"controlValue": controlValue,
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, errors.New("dict needs key/value pairs")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				key, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict key %v is not a string", kv[i])
				}
				m[key] = kv[i+1]
			}
			return m, nil
		},
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "status.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	all := dash.Table().All()
	s := &Server{
		dash:      dash,
		modals:    dashboard.NewModalBoard(),
		opts:      opts,
		countries: analytics.Countries(all),
		dataDate:  analytics.DataDate(all),
		pages:     pages,
		router:    chi.NewRouter(),
		logger:    opts.Logger,
	}
	s.setupMiddleware()
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	if len(s.opts.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	s.router.Get("/", s.handleIndex)
	s.router.Get("/status", s.handleStatus)
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/meta", s.handleMeta)
		r.Get("/charts", s.handleCharts)
		r.Get("/charts/{slot}", s.handleChart)
		r.Get("/modals", s.handleModals)
		r.Post("/modals/{trigger}", s.handleModalTrigger)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", map[string]any{
		"Rows":     layout(s.countries),
		"Filter":   typeFilterControl(),
		"Controls": s.opts.Defaults,
		"DataDate": s.dataDate,
		"Dialogs":  dashboard.DialogIDs,
		"Modals":   s.modals.State(),
		"Missing":  s.opts.Report != nil && s.opts.Report.Missing,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.render(w, "status.html", map[string]any{
		"Report":   s.opts.Report,
		"DataDate": s.dataDate,
		"Rows":     s.dash.Table().Len(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	missing := s.opts.Report != nil && s.opts.Report.Missing
	response.Success(w, map[string]any{
		"status":    "ok",
		"rows":      s.dash.Table().Len(),
		"missing":   missing,
		"data_date": s.dataDate,
	}, s.logger)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]any{
		"countries": s.countries,
		"data_date": s.dataDate,
		"rows":      s.dash.Table().Len(),
		"controls":  dashboard.ControlOptions(),
		"defaults":  s.opts.Defaults,
		"slots":     dashboard.Slots(),
		"dialogs":   dashboard.DialogIDs,
	}, s.logger)
}

// handleCharts re-renders the slots bound to the controls named in
// ?changed=, or every slot when none is named.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := dashboard.ControlsFromQuery(q, s.opts.Defaults)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var changed []string
	for _, v := range q["changed"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				changed = append(changed, id)
			}
		}
	}

	figures, err := s.dash.Update(r.Context(), c, changed...)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, figures, s.logger)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	c, err := dashboard.ControlsFromQuery(r.URL.Query(), s.opts.Defaults)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	fig, err := s.dash.Render(dashboard.Slot(chi.URLParam(r, "slot")), c)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, fig, s.logger)
}

func (s *Server) handleModals(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.modals.State(), s.logger)
}

func (s *Server) handleModalTrigger(w http.ResponseWriter, r *http.Request) {
	t, open, err := s.modals.Dispatch(chi.URLParam(r, "trigger"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]any{"dialog": t.Dialog, "open": open}, s.logger)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		s.logger.Error().Str("template", name).Msg("template not found")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("rendering template")
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

func controlValue(c dashboard.Controls, id string) string {
	switch id {
	case dashboard.CtlTypeFilter:
		return c.TypeFilter
	case dashboard.CtlMapType:
		return c.MapType
	case dashboard.CtlTrendInterval:
		return c.TrendInterval
	case dashboard.CtlTrendSplit:
		return c.TrendSplit
	case dashboard.CtlTrendAgg:
		return c.TrendAgg
	case dashboard.CtlCountry1:
		return c.Country1
	case dashboard.CtlCountry2:
		return c.Country2
	case dashboard.CtlGenreTopN:
		return fmt.Sprint(c.GenreTopN)
	case dashboard.CtlHierarchyType:
		return c.HierarchyType
	case dashboard.CtlHierarchyN:
		return fmt.Sprint(c.HierarchyN)
	case dashboard.CtlDirectorN:
		return fmt.Sprint(c.DirectorN)
	case dashboard.CtlCastN:
		return fmt.Sprint(c.CastN)
	default:
		return ""
	}
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, srv *Server, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.logger.Info().Str("addr", "http://"+addr).Msg("server listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.logger.Info().Msg("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	}
}
