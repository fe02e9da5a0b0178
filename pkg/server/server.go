// Package server exposes the forms over HTTP: the data-entry pages, the
// download of generated documents and a small JSON API.
package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/renderers/vanilla"
	"github.com/goliatone/go-formdoc/pkg/uploads"
)

// multipartMemory is the part of a multipart body kept in memory.
const multipartMemory = 1 << 20

// languageLabels names the languages offered by the selector.
var languageLabels = map[string]string{
	"de": "Deutsch",
	"en": "English",
	"ar": "العربية",
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLanguages sets the languages offered in the selector, in order.
func WithLanguages(langs ...string) Option {
	return func(s *Server) {
		var out []string
		for _, lang := range langs {
			if lang = strings.ToLower(strings.TrimSpace(lang)); lang != "" {
				out = append(out, lang)
			}
		}
		if len(out) > 0 {
			s.languages = out
		}
	}
}

// WithAssets replaces the static files served below /assets/.
func WithAssets(assets fs.FS) Option {
	return func(s *Server) {
		if assets != nil {
			s.assets = assets
		}
	}
}

// Server holds the HTTP handlers.
type Server struct {
	gen       *orchestrator.Orchestrator
	store     *uploads.Store
	logger    logrus.FieldLogger
	languages []string
	assets    fs.FS
	mux       *http.ServeMux
}

// New wires the routes. gen and store are required.
func New(gen *orchestrator.Orchestrator, store *uploads.Store, options ...Option) (*Server, error) {
	if gen == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if store == nil {
		return nil, errors.New("server: upload store is required")
	}
	s := &Server{
		gen:       gen,
		store:     store,
		logger:    logrus.StandardLogger(),
		languages: []string{"de", "ar", "en"},
		assets:    vanilla.AssetsFS(),
		mux:       http.NewServeMux(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /forms/{key}", s.handleForm)
	s.mux.HandleFunc("POST /forms/{key}", s.handleSubmit)
	s.mux.HandleFunc("GET /downloads/{id}", s.handleDownload)
	s.mux.HandleFunc("GET /api/forms", s.handleAPIForms)
	s.mux.HandleFunc("GET /api/forms/{key}", s.handleAPIForm)
	s.mux.HandleFunc("POST /api/forms/{key}/pdf", s.handleAPIPDF)
	s.mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(s.assets))))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// Handler returns the routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		s.mux.ServeHTTP(rec, r)

		entry := s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Debug("request served")
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler().ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"forms":  s.gen.Forms().Len(),
	})
}

// language picks the requested language when offered, else the default.
func (s *Server) language(requested string) string {
	requested = strings.ToLower(strings.TrimSpace(requested))
	for _, lang := range s.languages {
		if lang == requested {
			return lang
		}
	}
	return s.gen.DefaultLanguage()
}

func (s *Server) languageLinks(active string) []render.Language {
	out := make([]render.Language, 0, len(s.languages))
	for _, lang := range s.languages {
		label := languageLabels[lang]
		if label == "" {
			label = strings.ToUpper(lang)
		}
		out = append(out, render.Language{Code: lang, Label: label, Active: lang == active})
	}
	return out
}

func (s *Server) formLinks(active, lang string) []render.FormLink {
	all := s.gen.Forms().Forms()
	out := make([]render.FormLink, 0, len(all))
	for _, form := range all {
		out = append(out, render.FormLink{Key: form.Key, Name: form.Name(lang), Active: form.Key == active})
	}
	return out
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
