package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/fablehq/fable-server/internal/cryptox"
	"github.com/fablehq/fable-server/internal/server/models"
	"github.com/fablehq/fable-server/internal/server/repositories/repomanager"
)

// DecryptFailedPlaceholder replaces story content that no longer decrypts.
// Substituting it per section keeps one corrupt record from failing a whole
// listing.
const DecryptFailedPlaceholder = "[Encryption Error]"

// SectionService orchestrates the section pipeline: book-ownership
// verification, order assignment, encryption before persistence, decryption
// after retrieval, and word-count derivation.
type SectionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      *cryptox.Cipher
}

// NewSectionService constructs a SectionService on the given repositories
// and content cipher.
func NewSectionService(db *sql.DB, m repomanager.RepositoryManager, cipher *cryptox.Cipher) *SectionService {
	return &SectionService{db: db, repomanager: m, cipher: cipher}
}

// UpdateSectionParams carries a partial section update; nil fields are left
// as stored. Order, when set, replaces the stored value verbatim; other
// sections are not renumbered.
type UpdateSectionParams struct {
	Title *string
	Story *string
	Order *int
}

// Create adds a section to an owned book. The story is encrypted before
// persistence; the returned view echoes the supplied plaintext rather than
// re-decrypting. Order is assigned max(existing)+1, or 1 for the first
// section.
func (s *SectionService) Create(ctx context.Context, bookID, userID, title, story string) (models.SectionView, error) {
	if err := s.requireBook(ctx, bookID, userID); err != nil {
		return models.SectionView{}, err
	}

	repo := s.repomanager.Sections(s.db)

	order, err := repo.NextOrder(ctx, bookID)
	if err != nil {
		return models.SectionView{}, fmt.Errorf("error assigning order: %w", err)
	}

	ciphertext, err := s.cipher.Encrypt(story)
	if err != nil {
		return models.SectionView{}, fmt.Errorf("error encrypting story: %w", err)
	}

	section := &models.Section{
		BookID:    bookID,
		Title:     strings.TrimSpace(title),
		Story:     ciphertext,
		Order:     order,
		WordCount: CountWords(story),
	}

	created, err := repo.Create(ctx, section)
	if err != nil {
		return models.SectionView{}, fmt.Errorf("error creating section: %w", err)
	}

	return created.View(story), nil
}

// ListForBook returns the owned book's projection together with its sections
// sorted by (order asc, created_at asc), each story decrypted independently.
// A section that fails to decrypt carries DecryptFailedPlaceholder instead.
func (s *SectionService) ListForBook(ctx context.Context, bookID, userID string) (models.BookView, []models.SectionView, error) {
	book, err := s.repomanager.Books(s.db).GetForUser(ctx, bookID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.BookView{}, nil, common.ErrBookNotFound
		}
		return models.BookView{}, nil, err
	}

	stored, err := s.repomanager.Sections(s.db).ListByBook(ctx, bookID)
	if err != nil {
		return models.BookView{}, nil, fmt.Errorf("error listing sections: %w", err)
	}

	views := make([]models.SectionView, 0, len(stored))
	for _, section := range stored {
		views = append(views, section.View(s.decryptOrPlaceholder(section.Story)))
	}

	return book.View(), views, nil
}

// Update applies a partial update to a section of an owned book. A supplied
// story is re-encrypted and its word count recomputed; the response echoes
// the supplied plaintext. When the story is untouched the stored value is
// decrypted for the response instead.
func (s *SectionService) Update(ctx context.Context, bookID, sectionID, userID string, params UpdateSectionParams) (models.SectionView, error) {
	if err := s.requireBook(ctx, bookID, userID); err != nil {
		return models.SectionView{}, err
	}

	repo := s.repomanager.Sections(s.db)

	section, err := repo.GetForBook(ctx, sectionID, bookID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.SectionView{}, common.ErrSectionNotFound
		}
		return models.SectionView{}, err
	}

	var responseStory string
	if params.Story != nil {
		ciphertext, err := s.cipher.Encrypt(*params.Story)
		if err != nil {
			return models.SectionView{}, fmt.Errorf("error encrypting story: %w", err)
		}
		section.Story = ciphertext
		section.WordCount = CountWords(*params.Story)
		responseStory = *params.Story
	} else {
		responseStory = s.decryptOrPlaceholder(section.Story)
	}

	if params.Title != nil {
		section.Title = strings.TrimSpace(*params.Title)
	}
	if params.Order != nil {
		section.Order = *params.Order
	}

	if err := repo.Update(ctx, section); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.SectionView{}, common.ErrSectionNotFound
		}
		return models.SectionView{}, fmt.Errorf("error updating section: %w", err)
	}

	return section.View(responseStory), nil
}

// Delete removes a section of an owned book.
func (s *SectionService) Delete(ctx context.Context, bookID, sectionID, userID string) error {
	if err := s.requireBook(ctx, bookID, userID); err != nil {
		return err
	}

	if err := s.repomanager.Sections(s.db).Delete(ctx, sectionID, bookID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrSectionNotFound
		}
		return fmt.Errorf("error deleting section: %w", err)
	}
	return nil
}

// requireBook is the ownership gate shared by every section operation: the
// book must exist and belong to userID, otherwise common.ErrBookNotFound.
func (s *SectionService) requireBook(ctx context.Context, bookID, userID string) error {
	_, err := s.repomanager.Books(s.db).GetForUser(ctx, bookID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrBookNotFound
		}
		return err
	}
	return nil
}

func (s *SectionService) decryptOrPlaceholder(ciphertext string) string {
	plaintext, err := s.cipher.Decrypt(ciphertext)
	if err != nil {
		return DecryptFailedPlaceholder
	}
	return plaintext
}
