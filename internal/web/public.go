package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lumioedu/web/internal/content"
	"github.com/lumioedu/web/internal/head"
	"github.com/lumioedu/web/internal/intake"
	"github.com/lumioedu/web/internal/view"
)

// contactSlug is the page that carries the enquiry form.
const contactSlug = "contact"

// handlePage serves a fixed slug, used for the root route.
func (s *Server) handlePage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, slug, nil)
	}
}

// handleSlug serves any published page by its slug.
func (s *Server) handleSlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	prefill := map[string]string{}
	if slug == contactSlug {
		if r.URL.Query().Get("sent") != "" {
			prefill["sent"] = "1"
		}
	}
	s.renderPage(w, r, slug, prefill)
}

// handleBookDemo renders the contact page with the demo-request prefill.
func (s *Server) handleBookDemo(w http.ResponseWriter, r *http.Request) {
	prefill := map[string]string{
		"type": "demo",
		"role": "institution",
	}
	if inst := r.URL.Query().Get("institution"); inst != "" {
		prefill["institution"] = inst
	}
	s.renderPage(w, r, contactSlug, prefill)
}

// renderPage looks up the page, builds the head, and executes the page
// template.  Unpublished and unknown slugs both return the same 404 so
// drafts are not discoverable.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, slug string, prefill map[string]string) {
	page, ok := s.store.PageBySlug(slug)
	if !ok || !page.IsPublished {
		http.NotFound(w, r)
		return
	}

	site := s.store.Settings()

	h := head.New()
	if page.Title != "" {
		h.SetTitle(page.Title + " | " + site.SiteName)
	}
	if page.Description != "" {
		h.SetDescription(page.Description)
	}
	h.ApplyDefaults(site)

	data := &view.PageData{
		Head:    h,
		Site:    site,
		Page:    page,
		Prefill: prefill,
	}

	if slug == contactSlug {
		tok, err := intake.GenerateToken()
		if err != nil {
			s.log.Errorw("csrf token generation failed", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		data.CSRF = tok
		data.Stamp = intake.RenderTimestamp()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.Render(w, "page", data); err != nil {
		s.log.Errorw("page render failed", "slug", slug, "err", err)
	}
}

// handleEnquiry accepts the contact and book-demo form posts.
func (s *Server) handleEnquiry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	if !intake.VerifyToken(r.PostFormValue("csrf_token")) {
		s.renderEnquiryError(w, r, "Your session expired.  Please reload the page and try again.")
		return
	}
	if msg := intake.CheckTiming(r.PostFormValue("rendered_at")); msg != "" {
		s.renderEnquiryError(w, r, msg)
		return
	}

	msg := strings.TrimSpace(r.PostFormValue("message"))
	if r.PostFormValue("enquiry_type") == "demo" && msg == "" {
		msg = "Demo requested via the book-a-demo form."
	}

	in := intake.Input{
		Name:        r.PostFormValue("name"),
		Email:       r.PostFormValue("email"),
		Phone:       r.PostFormValue("phone"),
		Institution: r.PostFormValue("institution"),
		Message:     msg,
		Role:        content.EnquirerRole(r.PostFormValue("role")),
	}

	if _, err := s.intake.Submit(r.Context(), in); err != nil {
		if intake.IsValidationError(err) {
			s.renderEnquiryError(w, r, err.Error())
			return
		}
		s.log.Errorw("enquiry intake failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}

// renderEnquiryError re-renders the contact form with the failure message
// and every posted field kept, so a typo does not cost the whole form.
func (s *Server) renderEnquiryError(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.renderPageStatusless(w, r, contactSlug, map[string]string{
		"error":       msg,
		"name":        r.PostFormValue("name"),
		"email":       r.PostFormValue("email"),
		"phone":       r.PostFormValue("phone"),
		"institution": r.PostFormValue("institution"),
		"message":     r.PostFormValue("message"),
		"role":        r.PostFormValue("role"),
		"type":        r.PostFormValue("enquiry_type"),
	})
}

// renderPageStatusless is renderPage minus the status-code writes, for use
// after WriteHeader has already run.
func (s *Server) renderPageStatusless(w http.ResponseWriter, r *http.Request, slug string, prefill map[string]string) {
	page, ok := s.store.PageBySlug(slug)
	if !ok {
		return
	}
	site := s.store.Settings()

	h := head.New()
	h.SetTitle(page.Title + " | " + site.SiteName)
	h.ApplyDefaults(site)

	tok, err := intake.GenerateToken()
	if err != nil {
		s.log.Errorw("csrf token generation failed", "err", err)
		return
	}

	data := &view.PageData{
		Head:    h,
		Site:    site,
		Page:    page,
		CSRF:    tok,
		Stamp:   intake.RenderTimestamp(),
		Prefill: prefill,
	}
	if err := s.views.Render(w, "page", data); err != nil {
		s.log.Errorw("page render failed", "slug", slug, "err", err)
	}
}
