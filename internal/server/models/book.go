package models

import "time"

// Book is owned by exactly one user. Every read/update/delete is scoped to
// {ID, UserID} so a cross-user access resolves as "not found".
type Book struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookView is the outward projection of a Book.
type BookView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// View returns the outward projection of the book.
func (b *Book) View() BookView {
	return BookView{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Published:   b.Published,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
