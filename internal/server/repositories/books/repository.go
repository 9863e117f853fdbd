// Package books provides PostgreSQL-backed persistence for books. Every
// query that acts on behalf of a user is owner-scoped in the WHERE clause,
// so a cross-user access is indistinguishable from a missing row.
package books

import (
	"context"

	"github.com/fablehq/fable-server/internal/server/models"
)

// Repository is the book store consumed by the book and section services.
type Repository interface {
	// Create inserts a new book for its UserID.
	Create(ctx context.Context, book *models.Book) (*models.Book, error)

	// GetForUser returns the book with the given ID owned by userID, or
	// common.ErrorNotFound whether the book is missing or owned by
	// someone else.
	GetForUser(ctx context.Context, id, userID string) (*models.Book, error)

	// ListByUser returns all books owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Book, error)

	// Update persists title/description/published for {book.ID, book.UserID}.
	// common.ErrorNotFound when no owned row matches.
	Update(ctx context.Context, book *models.Book) error

	// Delete removes the book scoped to {id, userID}. common.ErrorNotFound
	// when no owned row matches.
	Delete(ctx context.Context, id, userID string) error
}
