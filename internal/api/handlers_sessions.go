package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docnav/internal/navsync"
	"github.com/dgallion1/docnav/internal/parser"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.manager.Create()
	sidebarHTML, err := sess.SidebarHTML()
	if err != nil {
		jsonError(w, "failed to render sidebar: "+err.Error(), http.StatusInternalServerError)
		return
	}
	snap := sess.Snapshot()

	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id":   snap.ID,
		"sidebar":      snap.Sidebar,
		"sidebar_html": sidebarHTML,
		"events_url":   fmt.Sprintf("/api/sessions/%s/events", snap.ID),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.manager.Delete(chi.URLParam(r, "sessionID")) {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	s.apply(w, sess, navsync.Event{
		Type:     navsync.EventRender,
		Filename: filename,
		Content:  string(data),
		PagePath: r.FormValue("page_path"),
	})
}

func (s *Server) handleScroll(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var ev navsync.ScrollEvent
	if !decodeBody(w, r, &ev) {
		return
	}
	s.apply(w, sess, navsync.Event{Type: navsync.EventScroll, ScrollEvent: ev})
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var body struct {
		Route string `json:"route"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	s.apply(w, sess, navsync.Event{Type: navsync.EventNavigate, Route: body.Route})
}

func (s *Server) handleTOCClick(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	s.apply(w, sess, navsync.Event{Type: navsync.EventTOCClick, HeadingID: chi.URLParam(r, "headingID")})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	s.apply(w, sess, navsync.Event{Type: navsync.EventToggle, NodeID: chi.URLParam(r, "nodeID")})
}

// session loads the session named in the URL, writing a 404 when missing.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *navsync.Session {
	sess := s.manager.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return nil
	}
	return sess
}

func (s *Server) apply(w http.ResponseWriter, sess *navsync.Session, ev navsync.Event) {
	out, err := s.manager.Apply(sess, ev)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, navsync.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, navsync.ErrNotRendered):
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
