package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/escaperoom/escaperoom-backend/internal/db/sqlc"
)

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Transactor runs a unit of work against repositories bound to one transaction.
type Transactor struct {
	db beginner
}

// NewTransactor accepts a *pgxpool.Pool or any other pgx transaction starter.
func NewTransactor(db beginner) *Transactor {
	return &Transactor{db: db}
}

// InTx commits when fn returns nil and rolls back otherwise.
func (t *Transactor) InTx(ctx context.Context, fn func(stories *StoryRepository, puzzles *PuzzleRepository) error) error {
	return pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		q := sqlcgen.New(tx)
		return fn(NewStoryRepository(q), NewPuzzleRepository(q))
	})
}
