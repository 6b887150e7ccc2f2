package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document is a generated story with its puzzles.
type Document struct {
	Story   string        `json:"story"`
	Puzzles []PuzzleDraft `json:"puzzles"`
}

// PuzzleDraft is a puzzle as produced by the model, before it has an id.
type PuzzleDraft struct {
	Question        string   `json:"question"`
	PossibleAnswers []string `json:"possible_answers"`
	CorrectAnswer   string   `json:"correct_answer"`
}

// rawDocument accepts the key spellings models tend to drift into.
type rawDocument struct {
	Story   string     `json:"story"`
	Puzzles []rawDraft `json:"puzzles"`
}

type rawDraft struct {
	Question         string    `json:"question"`
	PossibleAnswers  []string  `json:"possible_answers"`
	PossibleAnswers2 []string  `json:"possible answers"`
	Options          []string  `json:"options"`
	CorrectAnswer    string    `json:"correct_answer"`
	CorrectAnswer2   string    `json:"correct answer"`
	Answer           string    `json:"answer"`
	Puzzle           *rawDraft `json:"puzzle"`
}

func (d rawDraft) normalize() PuzzleDraft {
	if d.Puzzle != nil {
		return d.Puzzle.normalize()
	}
	return PuzzleDraft{
		Question:        strings.TrimSpace(d.Question),
		PossibleAnswers: firstNonEmpty(d.PossibleAnswers, d.PossibleAnswers2, d.Options),
		CorrectAnswer:   strings.TrimSpace(firstString(d.CorrectAnswer, d.CorrectAnswer2, d.Answer)),
	}
}

// Parse extracts the story document from raw model output. Surrounding
// quotes, markdown fences and any text outside the outermost braces are
// discarded.
func Parse(raw string) (*Document, error) {
	doc, err := parse(raw)
	if err != nil {
		observe(kindParse, outcomeMalformed)
		return nil, err
	}
	observe(kindParse, outcomeOK)
	return doc, nil
}

func parse(raw string) (*Document, error) {
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedOutput)
	}

	var rd rawDocument
	if err := json.Unmarshal([]byte(cleaned), &rd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	doc := &Document{Story: strings.TrimSpace(rd.Story)}
	if doc.Story == "" {
		return nil, fmt.Errorf("%w: story is empty", ErrMalformedOutput)
	}
	for i, d := range rd.Puzzles {
		p := d.normalize()
		if p.Question == "" {
			return nil, fmt.Errorf("%w: puzzle %d has no question", ErrMalformedOutput, i)
		}
		if len(p.PossibleAnswers) < 2 {
			return nil, fmt.Errorf("%w: puzzle %d has fewer than 2 options", ErrMalformedOutput, i)
		}
		if p.CorrectAnswer == "" {
			return nil, fmt.Errorf("%w: puzzle %d has no correct answer", ErrMalformedOutput, i)
		}
		doc.Puzzles = append(doc.Puzzles, p)
	}
	if len(doc.Puzzles) == 0 {
		return nil, fmt.Errorf("%w: no puzzles", ErrMalformedOutput)
	}
	return doc, nil
}

func cleanJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, `"'`)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	i := strings.Index(raw, "{")
	j := strings.LastIndex(raw, "}")
	if i < 0 || j < i {
		return ""
	}
	return raw[i : j+1]
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
