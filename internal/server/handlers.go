package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-editor/internal/markup"
	"github.com/jonathan/resume-editor/internal/photo"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/versions"
)

// maxBodyBytes bounds JSON and Markdown request bodies
const maxBodyBytes = 2 << 20

// SnapshotRequest represents the request body for POST /api/versions
type SnapshotRequest struct {
	Name string `json:"name,omitempty" validate:"max=200"`
}

// RenameRequest represents the request body for PATCH /api/versions/{id}
type RenameRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// VersionsResponse is the version list plus the active pointer
type VersionsResponse struct {
	ActiveVersionID string              `json:"activeVersionId"`
	Versions        []types.VersionMeta `json:"versions"`
}

func versionsResponse(store types.VersionStore) VersionsResponse {
	return VersionsResponse{
		ActiveVersionID: store.ActiveVersionID,
		Versions:        versions.MetaFor(store),
	}
}

// decodeJSON reads an optional JSON body into dst and validates it
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ErrValidation{Field: fieldErrs[0].Field(), Message: "failed on the '" + fieldErrs[0].Tag() + "' rule"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// loadFlushed writes any pending autosave and returns the current store.
// Callers hold s.mu.
func (s *Server) loadFlushed() types.VersionStore {
	s.autosaver.Flush()
	return s.store.Load()
}

// handleGetDocument returns the active document
func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, versions.ActiveDocument(s.loadFlushed()))
}

// handlePutDocument schedules a debounced save of the active document.
// Missing fields are filled from the default document.
func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	var value map[string]any
	if err := json.Unmarshal(body, &value); err != nil {
		s.errorFor(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if err := schemas.ValidateDocumentUpdate(body); err != nil {
		s.errorFor(w, err)
		return
	}

	s.autosaver.Schedule(versions.NormalizeDocument(value, types.Now()))
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// handleResetDocument replaces the active document with the template
func (s *Server) handleResetDocument(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autosaver.Flush()
	store := s.store.ResetActiveToTemplate()
	s.jsonResponse(w, http.StatusOK, versions.ActiveDocument(store))
}

// handlePutPhoto attaches the request body as the photo. The crop query
// parameter is stored verbatim.
func (s *Server) handlePutPhoto(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, photo.MaxBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	p, err := photo.FromBytes(data, r.URL.Query().Get("crop"))
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := photo.Apply(versions.ActiveDocument(s.loadFlushed()), p)
	store := s.store.SaveActiveDocument(doc)
	s.jsonResponse(w, http.StatusOK, versions.ActiveDocument(store))
}

// handleDeletePhoto removes the photo from the active document
func (s *Server) handleDeletePhoto(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := photo.Apply(versions.ActiveDocument(s.loadFlushed()), nil)
	store := s.store.SaveActiveDocument(doc)
	s.jsonResponse(w, http.StatusOK, versions.ActiveDocument(store))
}

// handleListVersions returns version metadata, draft first
func (s *Server) handleListVersions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, versionsResponse(s.loadFlushed()))
}

// handleCreateSnapshot snapshots the active document
func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req SnapshotRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorFor(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.autosaver.Flush()
	store := s.store.CreateSnapshotFromActive(req.Name)
	s.jsonResponse(w, http.StatusCreated, versionsResponse(store))
}

// requireVersion returns the store when id exists. Callers hold s.mu.
func (s *Server) requireVersion(id string) (types.VersionStore, error) {
	store := s.loadFlushed()
	if store.IndexOf(id) < 0 {
		return store, &ErrVersionNotFound{ID: id}
	}
	return store, nil
}

// handleActivateVersion points the active pointer at a version
func (s *Server) handleActivateVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireVersion(id); err != nil {
		s.errorFor(w, err)
		return
	}
	store := s.store.SwitchActiveVersion(id)
	s.jsonResponse(w, http.StatusOK, versionsResponse(store))
}

// handleRenameVersion renames a version
func (s *Server) handleRenameVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req RenameRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorFor(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireVersion(id); err != nil {
		s.errorFor(w, err)
		return
	}
	store := s.store.RenameVersion(id, req.Name)
	s.jsonResponse(w, http.StatusOK, versionsResponse(store))
}

// handleDeleteVersion deletes a snapshot
func (s *Server) handleDeleteVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.requireVersion(id)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	if store.Versions[store.IndexOf(id)].Kind == types.VersionDraft {
		s.errorFor(w, &ErrDraftNotDeletable{})
		return
	}
	store = s.store.DeleteVersion(id)
	s.jsonResponse(w, http.StatusOK, versionsResponse(store))
}

// handleExport downloads the active document as Markdown
func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	doc := versions.ActiveDocument(s.loadFlushed())
	s.mu.Unlock()

	name := markup.DefaultFileName(doc, types.Now().Local()) + markup.Extension
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, markup.Export(doc)); err != nil {
		s.log.WithError(err).Warn("failed to write export")
	}
}

// handleImport replaces the active document with an imported Markdown body
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	imported, err := markup.Import(string(body))
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.autosaver.Flush()
	store := s.store.SaveActiveDocument(imported.Document(types.NewDefaultDocument()))
	s.log.WithField("sections", len(imported.Sections)).Info("imported markdown into active version")
	s.jsonResponse(w, http.StatusOK, versions.ActiveDocument(store))
}
