package repository

import (
	"context"

	sqlcgen "github.com/escaperoom/escaperoom-backend/internal/db/sqlc"
)

type storyStore interface {
	CreateStory(ctx context.Context, arg sqlcgen.CreateStoryParams) (sqlcgen.Story, error)
	GetStory(ctx context.Context, id int64) (sqlcgen.Story, error)
	ListRandomStories(ctx context.Context, limit int32) ([]sqlcgen.Story, error)
}

// StoryRepository contains DB helpers for stories.
type StoryRepository struct {
	store storyStore
}

func NewStoryRepository(store storyStore) *StoryRepository {
	return &StoryRepository{store: store}
}

// Create persists a new story row.
func (r *StoryRepository) Create(ctx context.Context, params sqlcgen.CreateStoryParams) (sqlcgen.Story, error) {
	story, err := r.store.CreateStory(ctx, params)
	return story, translate(err)
}

// GetByID returns ErrNotFound when no story has the id.
func (r *StoryRepository) GetByID(ctx context.Context, id int64) (sqlcgen.Story, error) {
	story, err := r.store.GetStory(ctx, id)
	return story, translate(err)
}

// ListRandom samples up to limit stories uniformly at random.
func (r *StoryRepository) ListRandom(ctx context.Context, limit int) ([]sqlcgen.Story, error) {
	stories, err := r.store.ListRandomStories(ctx, int32(limit))
	return stories, translate(err)
}
