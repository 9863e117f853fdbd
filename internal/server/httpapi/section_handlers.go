package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/fablehq/fable-server/internal/server/services"
)

type createSectionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Story string `json:"story"`
}

type updateSectionRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Story *string `json:"story"`
	Order *int    `json:"order" validate:"omitempty,min=0"`
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	var req createSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := s.validateRequest(req); msgs != nil {
		s.writeValidationError(w, msgs)
		return
	}

	view, err := s.sections.Create(r.Context(), chi.URLParam(r, "bookID"), userIDFromContext(r.Context()), req.Title, req.Story)
	if err != nil {
		s.sectionError(w, r, err)
		return
	}

	s.writeData(w, http.StatusCreated, view)
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	book, sections, err := s.sections.ListForBook(r.Context(), chi.URLParam(r, "bookID"), userIDFromContext(r.Context()))
	if err != nil {
		s.sectionError(w, r, err)
		return
	}

	s.writeDataCount(w, http.StatusOK, bookWithSections{Book: book, Sections: sections}, len(sections))
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var req updateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := s.validateRequest(req); msgs != nil {
		s.writeValidationError(w, msgs)
		return
	}

	view, err := s.sections.Update(r.Context(), chi.URLParam(r, "bookID"), chi.URLParam(r, "sectionID"), userIDFromContext(r.Context()), services.UpdateSectionParams{
		Title: req.Title,
		Story: req.Story,
		Order: req.Order,
	})
	if err != nil {
		s.sectionError(w, r, err)
		return
	}

	s.writeData(w, http.StatusOK, view)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	err := s.sections.Delete(r.Context(), chi.URLParam(r, "bookID"), chi.URLParam(r, "sectionID"), userIDFromContext(r.Context()))
	if err != nil {
		s.sectionError(w, r, err)
		return
	}

	s.writeMessage(w, http.StatusOK, "Section deleted successfully")
}

func (s *Server) sectionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrBookNotFound):
		s.writeError(w, http.StatusNotFound, "Book not found")
	case errors.Is(err, common.ErrSectionNotFound), errors.Is(err, common.ErrorNotFound):
		s.writeError(w, http.StatusNotFound, "Section not found")
	default:
		s.logger.Error(r.Context(), "section operation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
