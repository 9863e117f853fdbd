// Package sections provides PostgreSQL-backed persistence for book sections.
// The story column holds hex-encoded ciphertext; encryption happens in the
// service layer before rows reach this package.
package sections

import (
	"context"

	"github.com/fablehq/fable-server/internal/server/models"
)

// Repository is the section store consumed by the section service. All
// lookups are scoped to a book whose ownership the service has already
// verified.
type Repository interface {
	// Create inserts a new section for its BookID.
	Create(ctx context.Context, section *models.Section) (*models.Section, error)

	// GetForBook returns the section with the given ID belonging to bookID,
	// or common.ErrorNotFound.
	GetForBook(ctx context.Context, id, bookID string) (*models.Section, error)

	// ListByBook returns all sections of bookID ordered by (order asc,
	// created_at asc).
	ListByBook(ctx context.Context, bookID string) ([]*models.Section, error)

	// NextOrder returns max(order)+1 over the book's sections, or 1 when the
	// book has none. Read-then-write: two concurrent creates may observe the
	// same value and produce a duplicate order.
	NextOrder(ctx context.Context, bookID string) (int, error)

	// Update persists title/story/order/word_count for {section.ID,
	// section.BookID}. common.ErrorNotFound when no row matches.
	Update(ctx context.Context, section *models.Section) error

	// Delete removes the section scoped to {id, bookID}.
	Delete(ctx context.Context, id, bookID string) error

	// DeleteByBook removes all sections of bookID. Used by the book cascade
	// delete; deleting zero rows is not an error.
	DeleteByBook(ctx context.Context, bookID string) error
}
