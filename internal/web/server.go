// Package web wires the HTTP surface: the public marketing site, the
// enquiry intake endpoints, and the JSON admin API the editor single-page
// app talks to.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lumioedu/web/internal/config"
	"github.com/lumioedu/web/internal/content"
	"github.com/lumioedu/web/internal/intake"
	"github.com/lumioedu/web/internal/media"
	"github.com/lumioedu/web/internal/middleware"
	"github.com/lumioedu/web/internal/requestinfo"
	"github.com/lumioedu/web/internal/session"
	"github.com/lumioedu/web/internal/view"
)

// Server holds everything the handlers need.
type Server struct {
	cfg      *config.Config
	store    *content.Store
	views    *view.Engine
	intake   *intake.Service
	media    *media.Library
	sessions *session.Manager
	log      *zap.SugaredLogger

	staticDir string
}

// New assembles a Server.  staticDir is the on-disk directory served under
// /static/.
func New(cfg *config.Config, store *content.Store, views *view.Engine,
	svc *intake.Service, lib *media.Library, sessions *session.Manager,
	staticDir string, log *zap.SugaredLogger) *Server {

	if log == nil {
		log = zap.S()
	}
	return &Server{
		cfg:       cfg,
		store:     store,
		views:     views,
		intake:    svc,
		media:     lib,
		sessions:  sessions,
		staticDir: staticDir,
		log:       log,
	}
}

// Router builds the full route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(requestinfo.Enrich)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(http.Dir(s.staticDir))))
	r.Handle("/media/*", http.StripPrefix("/media/",
		http.FileServer(http.Dir(s.media.Dir()))))

	// Public site.
	r.Get("/", s.handlePage("home"))
	r.Get("/book-demo", s.handleBookDemo)
	r.Get("/{slug}", s.handleSlug)

	// Form posts are rate limited per IP on top of the CSRF and timing
	// checks.
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/contact", s.handleEnquiry)
		r.Post("/book-demo", s.handleEnquiry)
	})

	// Admin JSON API.
	r.Route("/admin/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Get("/pages", s.handleListPages)
			r.Post("/pages", s.handleCreatePage)
			r.Get("/pages/{id}", s.handleGetPage)
			r.Put("/pages/{id}", s.handleUpdatePage)
			r.Delete("/pages/{id}", s.handleDeletePage)
			r.Post("/pages/{id}/blocks/move", s.handleMoveBlock)
			r.Get("/pages/{id}/blocks/{blockID}/form", s.handleBlockForm)

			r.Get("/media", s.handleListMedia)
			r.Post("/media", s.handleUploadMedia)
			r.Delete("/media/{id}", s.handleDeleteMedia)

			r.Get("/submissions", s.handleListSubmissions)
			r.Get("/submissions/{id}", s.handleGetSubmission)
			r.Post("/submissions/{id}/read", s.handleMarkSubmissionRead)
			r.Patch("/submissions/{id}", s.handlePatchSubmission)

			r.Get("/settings", s.handleGetSettings)
			r.Put("/settings", s.handlePutSettings)
		})
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

//
// JSON helpers
//

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}
