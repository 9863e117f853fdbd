package sections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/fablehq/fable-server/internal/dbx"
	"github.com/fablehq/fable-server/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements section storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, section *models.Section) (*models.Section, error) {
	query :=
		`INSERT INTO sections (id, book_id, title, story, ord, word_count)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	section.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		section.ID, section.BookID, section.Title, section.Story, section.Order, section.WordCount).
		Scan(&section.CreatedAt, &section.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return section, nil
}

func (r *PostgresRepository) GetForBook(ctx context.Context, id, bookID string) (*models.Section, error) {
	query :=
		`SELECT id, book_id, title, story, ord, word_count, created_at, updated_at FROM sections
		 WHERE id = $1 AND book_id = $2
		 `

	section := &models.Section{}
	err := r.db.QueryRowContext(ctx, query, id, bookID).Scan(
		&section.ID, &section.BookID, &section.Title, &section.Story,
		&section.Order, &section.WordCount, &section.CreatedAt, &section.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return section, nil
}

func (r *PostgresRepository) ListByBook(ctx context.Context, bookID string) ([]*models.Section, error) {
	query :=
		`SELECT id, book_id, title, story, ord, word_count, created_at, updated_at FROM sections
		 WHERE book_id = $1
		 ORDER BY ord ASC, created_at ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Section
	for rows.Next() {
		var item models.Section
		if err := rows.Scan(
			&item.ID, &item.BookID, &item.Title, &item.Story,
			&item.Order, &item.WordCount, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) NextOrder(ctx context.Context, bookID string) (int, error) {
	query :=
		`SELECT COALESCE(MAX(ord), 0) + 1 FROM sections
		 WHERE book_id = $1
		 `

	var next int
	if err := r.db.QueryRowContext(ctx, query, bookID).Scan(&next); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return next, nil
}

func (r *PostgresRepository) Update(ctx context.Context, section *models.Section) error {
	query :=
		`UPDATE sections
		 SET title = $3, story = $4, ord = $5, word_count = $6, updated_at = now()
		 WHERE id = $1 AND book_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		section.ID, section.BookID, section.Title, section.Story, section.Order, section.WordCount)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, bookID string) error {
	query :=
		`DELETE FROM sections
		 WHERE id = $1 AND book_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, bookID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByBook(ctx context.Context, bookID string) error {
	query :=
		`DELETE FROM sections
		 WHERE book_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, bookID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
