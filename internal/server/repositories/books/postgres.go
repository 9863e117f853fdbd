package books

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

// PostgresRepository implements book storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`INSERT INTO books (id, user_id, title, description, published)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	book.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		book.ID, book.UserID, book.Title, book.Description, book.Published).
		Scan(&book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) GetForUser(ctx context.Context, id, userID string) (*models.Book, error) {
	query :=
		`SELECT id, user_id, title, description, published, created_at, updated_at FROM books
		 WHERE id = $1 AND user_id = $2
		 `

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&book.ID, &book.UserID, &book.Title, &book.Description, &book.Published,
		&book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Book, error) {
	query :=
		`SELECT id, user_id, title, description, published, created_at, updated_at FROM books
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Book
	for rows.Next() {
		var item models.Book
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description, &item.Published,
			&item.CreatedAt, &item.UpdatedAt,
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

func (r *PostgresRepository) Update(ctx context.Context, book *models.Book) error {
	query :=
		`UPDATE books
		 SET title = $3, description = $4, published = $5, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		book.ID, book.UserID, book.Title, book.Description, book.Published)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query :=
		`DELETE FROM books
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

// requireOneRow maps zero affected rows to common.ErrorNotFound.
func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
