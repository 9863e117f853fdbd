// Package repomanager wires concrete repository implementations to database
// handles. Services obtain repositories through a RepositoryManager so the
// same repository code runs standalone or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/fablehq/fable-server/internal/dbx"
	"github.com/fablehq/fable-server/internal/server/repositories/books"
	"github.com/fablehq/fable-server/internal/server/repositories/sections"
	"github.com/fablehq/fable-server/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Books(db dbx.DBTX) books.Repository
	Sections(db dbx.DBTX) sections.Repository
}
