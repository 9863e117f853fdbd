package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/fablehq/fable-server/internal/server/models"
	"github.com/fablehq/fable-server/internal/server/services"
)

type createBookRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type updateBookRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Published   *bool   `json:"published"`
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := s.validateRequest(req); msgs != nil {
		s.writeValidationError(w, msgs)
		return
	}

	book, err := s.books.Create(r.Context(), userIDFromContext(r.Context()), req.Title, req.Description)
	if err != nil {
		s.bookError(w, r, err)
		return
	}

	s.writeData(w, http.StatusCreated, book.View())
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.books.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.bookError(w, r, err)
		return
	}

	views := make([]models.BookView, 0, len(books))
	for _, b := range books {
		views = append(views, b.View())
	}

	s.writeDataCount(w, http.StatusOK, views, len(views))
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, sections, err := s.sections.ListForBook(r.Context(), chi.URLParam(r, "bookID"), userIDFromContext(r.Context()))
	if err != nil {
		s.bookError(w, r, err)
		return
	}

	s.writeDataCount(w, http.StatusOK, bookWithSections{Book: book, Sections: sections}, len(sections))
}

type bookWithSections struct {
	Book     models.BookView      `json:"book"`
	Sections []models.SectionView `json:"sections"`
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := s.validateRequest(req); msgs != nil {
		s.writeValidationError(w, msgs)
		return
	}

	book, err := s.books.Update(r.Context(), chi.URLParam(r, "bookID"), userIDFromContext(r.Context()), services.UpdateBookParams{
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
	})
	if err != nil {
		s.bookError(w, r, err)
		return
	}

	s.writeData(w, http.StatusOK, book.View())
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	err := s.books.Delete(r.Context(), chi.URLParam(r, "bookID"), userIDFromContext(r.Context()))
	if err != nil {
		s.bookError(w, r, err)
		return
	}

	s.writeMessage(w, http.StatusOK, "Book deleted successfully")
}

// bookError maps service failures of book operations to HTTP responses.
// A book that does not exist and a book owned by someone else produce the
// same response.
func (s *Server) bookError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrBookNotFound) || errors.Is(err, common.ErrorNotFound) {
		s.writeError(w, http.StatusNotFound, "Book not found")
		return
	}
	s.logger.Error(r.Context(), "book operation failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, "Internal server error")
}
