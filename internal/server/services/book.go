package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/fablehq/fable-server/internal/dbx"
	"github.com/fablehq/fable-server/internal/server/models"
	"github.com/fablehq/fable-server/internal/server/repositories/repomanager"
)

// BookService provides CRUD over a user's books. Every operation is scoped
// to the requesting user; a book owned by someone else resolves to
// common.ErrBookNotFound, never a "forbidden" style error.
type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewBookService constructs a BookService on the given repositories.
func NewBookService(db *sql.DB, m repomanager.RepositoryManager) *BookService {
	return &BookService{db: db, repomanager: m}
}

// UpdateBookParams carries a partial book update; nil fields are left as
// stored.
type UpdateBookParams struct {
	Title       *string
	Description *string
	Published   *bool
}

// Create inserts a new book owned by userID. Title and description are
// trimmed; length bounds are enforced at the request-validation boundary.
func (s *BookService) Create(ctx context.Context, userID, title, description string) (*models.Book, error) {
	book := &models.Book{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}

	repo := s.repomanager.Books(s.db)
	b, err := repo.Create(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("error creating book: %w", err)
	}
	return b, nil
}

// Get returns the book with the given ID if userID owns it.
func (s *BookService) Get(ctx context.Context, bookID, userID string) (*models.Book, error) {
	repo := s.repomanager.Books(s.db)
	book, err := repo.GetForUser(ctx, bookID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// List returns all books owned by userID, newest first.
func (s *BookService) List(ctx context.Context, userID string) ([]*models.Book, error) {
	repo := s.repomanager.Books(s.db)
	return repo.ListByUser(ctx, userID)
}

// Update applies a partial update to an owned book.
func (s *BookService) Update(ctx context.Context, bookID, userID string, params UpdateBookParams) (*models.Book, error) {
	book, err := s.Get(ctx, bookID, userID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		book.Title = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		book.Description = strings.TrimSpace(*params.Description)
	}
	if params.Published != nil {
		book.Published = *params.Published
	}

	repo := s.repomanager.Books(s.db)
	if err := repo.Update(ctx, book); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// Delete removes an owned book and all of its sections. Both steps run in a
// single transaction, so a failure between them cannot orphan sections.
func (s *BookService) Delete(ctx context.Context, bookID, userID string) error {
	// Ownership check up front keeps the 404 outcome out of the transaction.
	if _, err := s.Get(ctx, bookID, userID); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Sections(tx).DeleteByBook(ctx, bookID); err != nil {
			return fmt.Errorf("error deleting sections: %w", err)
		}
		if err := s.repomanager.Books(tx).Delete(ctx, bookID, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrBookNotFound
			}
			return fmt.Errorf("error deleting book: %w", err)
		}
		return nil
	})
}
