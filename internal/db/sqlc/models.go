package sqlc

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Puzzle struct {
	ID              int64              `json:"id"`
	StoryID         int64              `json:"story_id"`
	Question        string             `json:"question"`
	PossibleAnswers []byte             `json:"possible_answers"`
	CorrectAnswer   string             `json:"correct_answer"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}

type Story struct {
	ID          int64              `json:"id"`
	Description string             `json:"description"`
	Difficulty  string             `json:"difficulty"`
	Type        string             `json:"type"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type User struct {
	ID        int64              `json:"id"`
	Username  string             `json:"username"`
	Password  string             `json:"password"`
	Email     string             `json:"email"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
