package story

// Story is a themed escape-room scenario.
type Story struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Type        string `json:"type"`
}

// Puzzle is a multiple-choice question belonging to a story.
// CorrectAnswer is not required to be one of PossibleAnswers.
type Puzzle struct {
	ID              int64    `json:"id"`
	StoryID         int64    `json:"story_id"`
	Question        string   `json:"question"`
	PossibleAnswers []string `json:"possible_answers"`
	CorrectAnswer   string   `json:"correct_answer"`
}

// NewStory is the payload for creating a story.
type NewStory struct {
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Type        string `json:"type"`
}

// NewPuzzle is the payload for creating a puzzle.
type NewPuzzle struct {
	StoryID         int64    `json:"story_id"`
	Question        string   `json:"question"`
	PossibleAnswers []string `json:"possible_answers"`
	CorrectAnswer   string   `json:"correct_answer"`
}

// GeneratedStory is a generated story after it has been stored.
type GeneratedStory struct {
	Story   Story    `json:"story"`
	Puzzles []Puzzle `json:"puzzles"`
}
