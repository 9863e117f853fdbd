package httpapi

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/fablehq/fable-server/internal/dbx"
	"github.com/fablehq/fable-server/internal/server/models"
	booksrepo "github.com/fablehq/fable-server/internal/server/repositories/books"
	sectionsrepo "github.com/fablehq/fable-server/internal/server/repositories/sections"
	usersrepo "github.com/fablehq/fable-server/internal/server/repositories/users"
)

// In-memory repositories backing the end-to-end handler tests. They mirror
// the ownership-scoped semantics of the Postgres implementations.

type memUsersRepo struct {
	users []*models.User
	seq   int
}

func (r *memUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, common.ErrEmailTaken
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("u-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users = append(r.users, u)
	return u, nil
}

func (r *memUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memBooksRepo struct {
	books []*models.Book
	seq   int
}

func (r *memBooksRepo) Create(_ context.Context, b *models.Book) (*models.Book, error) {
	r.seq++
	b.ID = fmt.Sprintf("b-%d", r.seq)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.books = append(r.books, b)
	return b, nil
}

func (r *memBooksRepo) GetForUser(_ context.Context, id, userID string) (*models.Book, error) {
	for _, b := range r.books {
		if b.ID == id && b.UserID == userID {
			return b, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memBooksRepo) ListByUser(_ context.Context, userID string) ([]*models.Book, error) {
	var out []*models.Book
	for _, b := range r.books {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memBooksRepo) Update(_ context.Context, book *models.Book) error {
	for _, b := range r.books {
		if b.ID == book.ID && b.UserID == book.UserID {
			*b = *book
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *memBooksRepo) Delete(_ context.Context, id, userID string) error {
	for i, b := range r.books {
		if b.ID == id && b.UserID == userID {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type memSectionsRepo struct {
	sections []*models.Section
	seq      int
}

func (r *memSectionsRepo) Create(_ context.Context, s *models.Section) (*models.Section, error) {
	r.seq++
	s.ID = fmt.Sprintf("s-%d", r.seq)
	s.CreatedAt = time.Unix(int64(1700000000+r.seq), 0)
	s.UpdatedAt = s.CreatedAt
	r.sections = append(r.sections, s)
	return s, nil
}

func (r *memSectionsRepo) GetForBook(_ context.Context, id, bookID string) (*models.Section, error) {
	for _, s := range r.sections {
		if s.ID == id && s.BookID == bookID {
			return s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memSectionsRepo) ListByBook(_ context.Context, bookID string) ([]*models.Section, error) {
	var out []*models.Section
	for _, s := range r.sections {
		if s.BookID == bookID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memSectionsRepo) NextOrder(_ context.Context, bookID string) (int, error) {
	max := 0
	for _, s := range r.sections {
		if s.BookID == bookID && s.Order > max {
			max = s.Order
		}
	}
	return max + 1, nil
}

func (r *memSectionsRepo) Update(_ context.Context, section *models.Section) error {
	for _, s := range r.sections {
		if s.ID == section.ID && s.BookID == section.BookID {
			*s = *section
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *memSectionsRepo) Delete(_ context.Context, id, bookID string) error {
	for i, s := range r.sections {
		if s.ID == id && s.BookID == bookID {
			r.sections = append(r.sections[:i], r.sections[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *memSectionsRepo) DeleteByBook(_ context.Context, bookID string) error {
	kept := r.sections[:0]
	for _, s := range r.sections {
		if s.BookID != bookID {
			kept = append(kept, s)
		}
	}
	r.sections = kept
	return nil
}

type fakeManager struct {
	users    usersrepo.Repository
	books    booksrepo.Repository
	sections sectionsrepo.Repository
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeManager) Books(dbx.DBTX) booksrepo.Repository          { return m.books }
func (m *fakeManager) Sections(dbx.DBTX) sectionsrepo.Repository    { return m.sections }
