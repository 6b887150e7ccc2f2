package repository

import (
	"context"

	sqlcgen "github.com/escaperoom/escaperoom-backend/internal/db/sqlc"
)

type puzzleStore interface {
	CreatePuzzle(ctx context.Context, arg sqlcgen.CreatePuzzleParams) (sqlcgen.Puzzle, error)
	GetPuzzle(ctx context.Context, id int64) (sqlcgen.Puzzle, error)
	ListPuzzlesByStory(ctx context.Context, storyID int64) ([]sqlcgen.Puzzle, error)
}

// PuzzleRepository contains DB helpers for puzzles.
type PuzzleRepository struct {
	store puzzleStore
}

func NewPuzzleRepository(store puzzleStore) *PuzzleRepository {
	return &PuzzleRepository{store: store}
}

// Create persists a puzzle. The story id is not checked against stories.
func (r *PuzzleRepository) Create(ctx context.Context, params sqlcgen.CreatePuzzleParams) (sqlcgen.Puzzle, error) {
	puzzle, err := r.store.CreatePuzzle(ctx, params)
	return puzzle, translate(err)
}

func (r *PuzzleRepository) GetByID(ctx context.Context, id int64) (sqlcgen.Puzzle, error) {
	puzzle, err := r.store.GetPuzzle(ctx, id)
	return puzzle, translate(err)
}

// ListByStory returns every puzzle of a story, or an empty slice.
func (r *PuzzleRepository) ListByStory(ctx context.Context, storyID int64) ([]sqlcgen.Puzzle, error) {
	puzzles, err := r.store.ListPuzzlesByStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if puzzles == nil {
		puzzles = []sqlcgen.Puzzle{}
	}
	return puzzles, nil
}
