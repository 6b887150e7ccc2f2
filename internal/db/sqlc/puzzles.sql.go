// source: puzzles.sql

package sqlc

import (
	"context"
)

const createPuzzle = `-- name: CreatePuzzle :one
INSERT INTO puzzles (story_id, question, possible_answers, correct_answer)
VALUES ($1, $2, $3, $4)
RETURNING id, story_id, question, possible_answers, correct_answer, created_at
`

type CreatePuzzleParams struct {
	StoryID         int64  `json:"story_id"`
	Question        string `json:"question"`
	PossibleAnswers []byte `json:"possible_answers"`
	CorrectAnswer   string `json:"correct_answer"`
}

func (q *Queries) CreatePuzzle(ctx context.Context, arg CreatePuzzleParams) (Puzzle, error) {
	row := q.db.QueryRow(ctx, createPuzzle,
		arg.StoryID,
		arg.Question,
		arg.PossibleAnswers,
		arg.CorrectAnswer,
	)
	var i Puzzle
	err := row.Scan(
		&i.ID,
		&i.StoryID,
		&i.Question,
		&i.PossibleAnswers,
		&i.CorrectAnswer,
		&i.CreatedAt,
	)
	return i, err
}

const getPuzzle = `-- name: GetPuzzle :one
SELECT id, story_id, question, possible_answers, correct_answer, created_at
FROM puzzles
WHERE id = $1
`

func (q *Queries) GetPuzzle(ctx context.Context, id int64) (Puzzle, error) {
	row := q.db.QueryRow(ctx, getPuzzle, id)
	var i Puzzle
	err := row.Scan(
		&i.ID,
		&i.StoryID,
		&i.Question,
		&i.PossibleAnswers,
		&i.CorrectAnswer,
		&i.CreatedAt,
	)
	return i, err
}

const listPuzzlesByStory = `-- name: ListPuzzlesByStory :many
SELECT id, story_id, question, possible_answers, correct_answer, created_at
FROM puzzles
WHERE story_id = $1
ORDER BY id
`

func (q *Queries) ListPuzzlesByStory(ctx context.Context, storyID int64) ([]Puzzle, error) {
	rows, err := q.db.Query(ctx, listPuzzlesByStory, storyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Puzzle
	for rows.Next() {
		var i Puzzle
		if err := rows.Scan(
			&i.ID,
			&i.StoryID,
			&i.Question,
			&i.PossibleAnswers,
			&i.CorrectAnswer,
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
