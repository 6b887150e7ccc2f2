package story

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/escaperoom/escaperoom-backend/internal/db/repository"
	sqlcgen "github.com/escaperoom/escaperoom-backend/internal/db/sqlc"
	"github.com/escaperoom/escaperoom-backend/internal/story/generator"
)

// RandomSampleSize is how many stories RandomStories returns at most.
const RandomSampleSize = 3

// ErrGenerationDisabled is returned by generation operations when no model is configured.
var ErrGenerationDisabled = errors.New("story generation is not configured")

// StoryCache defines cache behavior (implemented by Redis-backed Cache).
type StoryCache interface {
	Get(ctx context.Context, id int64) (*Story, error)
	Set(ctx context.Context, story Story) error
}

// ContentGenerator produces raw story documents and hints.
type ContentGenerator interface {
	Generate(ctx context.Context, subject generator.Subject, difficulty string) (string, error)
	Hint(ctx context.Context, req generator.HintRequest) (string, error)
}

// Transactor runs fn against repositories sharing one transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(stories *repository.StoryRepository, puzzles *repository.PuzzleRepository) error) error
}

// Service stores and serves stories and puzzles.
type Service struct {
	stories *repository.StoryRepository
	puzzles *repository.PuzzleRepository
	tx      Transactor
	cache   StoryCache
	gen     ContentGenerator
	logger  zerolog.Logger
}

// NewService wires the story service. cache and gen may be nil.
func NewService(stories *repository.StoryRepository, puzzles *repository.PuzzleRepository, tx Transactor, cache StoryCache, gen ContentGenerator, logger zerolog.Logger) *Service {
	return &Service{
		stories: stories,
		puzzles: puzzles,
		tx:      tx,
		cache:   cache,
		gen:     gen,
		logger:  logger.With().Str("component", "story").Logger(),
	}
}

// AddStory persists a story and returns it with its new id.
func (s *Service) AddStory(ctx context.Context, in NewStory) (Story, error) {
	row, err := s.stories.Create(ctx, sqlcgen.CreateStoryParams{
		Description: in.Description,
		Difficulty:  in.Difficulty,
		Type:        in.Type,
	})
	if err != nil {
		return Story{}, fmt.Errorf("create story: %w", err)
	}
	return toStory(row), nil
}

// AddPuzzle persists a puzzle. The story id is stored as given.
func (s *Service) AddPuzzle(ctx context.Context, in NewPuzzle) (Puzzle, error) {
	return addPuzzle(ctx, s.puzzles, in)
}

// GetStory returns repository.ErrNotFound (wrapped) for an unknown id.
func (s *Service) GetStory(ctx context.Context, id int64) (Story, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Int64("story_id", id).Msg("story cache read failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	row, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return Story{}, fmt.Errorf("get story %d: %w", id, err)
	}
	story := toStory(row)

	if s.cache != nil {
		if err := s.cache.Set(ctx, story); err != nil {
			s.logger.Warn().Err(err).Int64("story_id", id).Msg("story cache write failed")
		}
	}
	return story, nil
}

// ListPuzzles returns the puzzles of a story; unknown stories yield an empty list.
func (s *Service) ListPuzzles(ctx context.Context, storyID int64) ([]Puzzle, error) {
	rows, err := s.puzzles.ListByStory(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("list puzzles of story %d: %w", storyID, err)
	}
	puzzles := make([]Puzzle, 0, len(rows))
	for _, row := range rows {
		p, err := toPuzzle(row)
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, nil
}

// RandomStories returns up to RandomSampleSize distinct stories.
func (s *Service) RandomStories(ctx context.Context) ([]Story, error) {
	rows, err := s.stories.ListRandom(ctx, RandomSampleSize)
	if err != nil {
		return nil, fmt.Errorf("list random stories: %w", err)
	}
	stories := make([]Story, 0, len(rows))
	for _, row := range rows {
		stories = append(stories, toStory(row))
	}
	return stories, nil
}

// GenerateRaw returns the model output for a subject unmodified.
func (s *Service) GenerateRaw(ctx context.Context, subject generator.Subject, difficulty string) (string, error) {
	if s.gen == nil {
		return "", ErrGenerationDisabled
	}
	return s.gen.Generate(ctx, subject, difficulty)
}

// ImportGenerated generates a story, parses it and stores the story with all
// of its puzzles in one transaction.
func (s *Service) ImportGenerated(ctx context.Context, subject generator.Subject, difficulty string) (*GeneratedStory, error) {
	raw, err := s.GenerateRaw(ctx, subject, difficulty)
	if err != nil {
		return nil, err
	}
	doc, err := generator.Parse(raw)
	if err != nil {
		return nil, err
	}

	var out GeneratedStory
	err = s.tx.InTx(ctx, func(stories *repository.StoryRepository, puzzles *repository.PuzzleRepository) error {
		row, err := stories.Create(ctx, sqlcgen.CreateStoryParams{
			Description: doc.Story,
			Difficulty:  difficulty,
			Type:        string(subject),
		})
		if err != nil {
			return fmt.Errorf("create story: %w", err)
		}
		out.Story = toStory(row)
		out.Puzzles = make([]Puzzle, 0, len(doc.Puzzles))

		for _, draft := range doc.Puzzles {
			p, err := addPuzzle(ctx, puzzles, NewPuzzle{
				StoryID:         row.ID,
				Question:        draft.Question,
				PossibleAnswers: draft.PossibleAnswers,
				CorrectAnswer:   draft.CorrectAnswer,
			})
			if err != nil {
				return err
			}
			out.Puzzles = append(out.Puzzles, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("story_id", out.Story.ID).
		Str("subject", string(subject)).
		Int("puzzles", len(out.Puzzles)).
		Msg("generated story imported")

	return &out, nil
}

// Hint asks the generator for a hint on a stored puzzle.
func (s *Service) Hint(ctx context.Context, puzzleID int64) (string, error) {
	row, err := s.puzzles.GetByID(ctx, puzzleID)
	if err != nil {
		return "", fmt.Errorf("get puzzle %d: %w", puzzleID, err)
	}
	if s.gen == nil {
		return "", ErrGenerationDisabled
	}
	p, err := toPuzzle(row)
	if err != nil {
		return "", err
	}
	return s.gen.Hint(ctx, generator.HintRequest{
		Question:        p.Question,
		PossibleAnswers: p.PossibleAnswers,
	})
}

func addPuzzle(ctx context.Context, repo *repository.PuzzleRepository, in NewPuzzle) (Puzzle, error) {
	answers := in.PossibleAnswers
	if answers == nil {
		answers = []string{}
	}
	encoded, err := json.Marshal(answers)
	if err != nil {
		return Puzzle{}, fmt.Errorf("encode possible answers: %w", err)
	}

	row, err := repo.Create(ctx, sqlcgen.CreatePuzzleParams{
		StoryID:         in.StoryID,
		Question:        in.Question,
		PossibleAnswers: encoded,
		CorrectAnswer:   in.CorrectAnswer,
	})
	if err != nil {
		return Puzzle{}, fmt.Errorf("create puzzle: %w", err)
	}
	return toPuzzle(row)
}

func toStory(row sqlcgen.Story) Story {
	return Story{
		ID:          row.ID,
		Description: row.Description,
		Difficulty:  row.Difficulty,
		Type:        row.Type,
	}
}

func toPuzzle(row sqlcgen.Puzzle) (Puzzle, error) {
	answers := []string{}
	if len(row.PossibleAnswers) > 0 {
		if err := json.Unmarshal(row.PossibleAnswers, &answers); err != nil {
			return Puzzle{}, fmt.Errorf("decode possible answers of puzzle %d: %w", row.ID, err)
		}
	}
	return Puzzle{
		ID:              row.ID,
		StoryID:         row.StoryID,
		Question:        row.Question,
		PossibleAnswers: answers,
		CorrectAnswer:   row.CorrectAnswer,
	}, nil
}
