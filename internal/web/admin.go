package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumioedu/web/internal/blockform"
	"github.com/lumioedu/web/internal/content"
)

// maxUploadBytes caps media uploads at 32 MiB.
const maxUploadBytes = 32 << 20

//
// Auth
//

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !readJSON(w, r, &req) {
		return
	}

	emailOK := strings.EqualFold(strings.TrimSpace(req.Email), s.cfg.Admin.Email)
	passOK := bcrypt.CompareHashAndPassword(
		[]byte(s.cfg.Admin.PasswordHash), []byte(req.Password)) == nil

	if !emailOK || !passOK {
		s.log.Warnw("admin login rejected", "email", req.Email)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.sessions.Issue(w)
	s.log.Infow("admin login", "email", s.cfg.Admin.Email)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireAdmin guards the editor API with the session cookie.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.sessions.Authenticated(r) {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

//
// Pages
//

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Pages())
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.PageByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	var p content.Page
	if !readJSON(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	created, err := s.store.AddPage(p)
	if err != nil {
		if errors.Is(err, content.ErrSlugTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	var p content.Page
	if !readJSON(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")

	ok, err := s.store.UpdatePage(p)
	if err != nil {
		if errors.Is(err, content.ErrSlugTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}

	updated, _ := s.store.PageByID(p.ID)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeletePage(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

//
// Blocks
//

type moveBlockRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) handleMoveBlock(w http.ResponseWriter, r *http.Request) {
	var req moveBlockRequest
	if !readJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if _, ok := s.store.PageByID(id); !ok {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	if !s.store.MoveBlock(id, req.From, req.To) {
		writeError(w, http.StatusBadRequest, "block positions out of range")
		return
	}

	p, _ := s.store.PageByID(id)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleBlockForm(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.PageByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}

	blockID := chi.URLParam(r, "blockID")
	for _, b := range p.Blocks {
		if b.ID != blockID {
			continue
		}
		def, err := blockform.EditorForm(b)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, def)
		return
	}
	writeError(w, http.StatusNotFound, "block not found")
}

//
// Media
//

func (s *Server) handleListMedia(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Media())
}

func (s *Server) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "upload too large or malformed")
		return
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	item, err := s.media.Save(hdr.Filename, file)
	if err != nil {
		s.log.Errorw("media upload failed", "name", hdr.Filename, "err", err)
		writeError(w, http.StatusUnprocessableEntity, "could not store upload")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	if !s.media.Delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "media item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

//
// Submissions
//

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Submissions())
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.store.SubmissionByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleMarkSubmissionRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.MarkSubmissionRead(id) {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	sub, _ := s.store.SubmissionByID(id)
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handlePatchSubmission(w http.ResponseWriter, r *http.Request) {
	var patch content.SubmissionPatch
	if !readJSON(w, r, &patch) {
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	sub, ok := s.store.UpdateSubmission(chi.URLParam(r, "id"), patch)
	if !ok {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

//
// Settings
//

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Settings())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var patch content.SettingsPatch
	if !readJSON(w, r, &patch) {
		return
	}
	writeJSON(w, http.StatusOK, s.store.UpdateSettings(patch))
}
