// source: stories.sql

package sqlc

import (
	"context"
)

const createStory = `-- name: CreateStory :one
INSERT INTO stories (description, difficulty, type)
VALUES ($1, $2, $3)
RETURNING id, description, difficulty, type, created_at
`

type CreateStoryParams struct {
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Type        string `json:"type"`
}

func (q *Queries) CreateStory(ctx context.Context, arg CreateStoryParams) (Story, error) {
	row := q.db.QueryRow(ctx, createStory, arg.Description, arg.Difficulty, arg.Type)
	var i Story
	err := row.Scan(
		&i.ID,
		&i.Description,
		&i.Difficulty,
		&i.Type,
		&i.CreatedAt,
	)
	return i, err
}

const getStory = `-- name: GetStory :one
SELECT id, description, difficulty, type, created_at
FROM stories
WHERE id = $1
`

func (q *Queries) GetStory(ctx context.Context, id int64) (Story, error) {
	row := q.db.QueryRow(ctx, getStory, id)
	var i Story
	err := row.Scan(
		&i.ID,
		&i.Description,
		&i.Difficulty,
		&i.Type,
		&i.CreatedAt,
	)
	return i, err
}

const listRandomStories = `-- name: ListRandomStories :many
SELECT id, description, difficulty, type, created_at
FROM stories
ORDER BY random()
LIMIT $1
`

func (q *Queries) ListRandomStories(ctx context.Context, limit int32) ([]Story, error) {
	rows, err := q.db.Query(ctx, listRandomStories, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Story
	for rows.Next() {
		var i Story
		if err := rows.Scan(
			&i.ID,
			&i.Description,
			&i.Difficulty,
			&i.Type,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
