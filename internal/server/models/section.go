package models

import "time"

// Section belongs to exactly one book. Story holds hex-encoded ciphertext at
// rest; plaintext exists only transiently while a request is handled.
// Order values are assigned max+1 on creation and may have gaps after
// deletions. WordCount is derived from the plaintext at write time.
type Section struct {
	ID        string
	BookID    string
	Title     string
	Story     string
	Order     int
	WordCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SectionView is the outward projection of a Section. Story carries plaintext
// (or the decryption-failure sentinel), never ciphertext.
type SectionView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Story     string    `json:"story"`
	Order     int       `json:"order"`
	WordCount int       `json:"wordCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the outward projection with Story replaced by the given
// plaintext.
func (s *Section) View(story string) SectionView {
	return SectionView{
		ID:        s.ID,
		Title:     s.Title,
		Story:     story,
		Order:     s.Order,
		WordCount: s.WordCount,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
