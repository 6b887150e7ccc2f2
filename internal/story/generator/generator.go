package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpstream wraps transport failures, non-2xx statuses and empty responses.
	ErrUpstream = errors.New("generation upstream failure")
	// ErrUnknownSubject is returned for a subject outside the supported set.
	ErrUnknownSubject = errors.New("unknown subject")
	// ErrMalformedOutput means the generated text is not a usable story document.
	ErrMalformedOutput = errors.New("malformed generation output")
)

// Subject is one of the supported story topics.
type Subject string

const (
	Mathematics Subject = "mathematics"
	Informatics Subject = "informatics"
	Literature  Subject = "literature"
)

// ParseSubject accepts the lowercase subject names used in routes.
func ParseSubject(s string) (Subject, error) {
	switch subject := Subject(strings.ToLower(strings.TrimSpace(s))); subject {
	case Mathematics, Informatics, Literature:
		return subject, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSubject, s)
	}
}

func (s Subject) topic() string {
	switch s {
	case Mathematics:
		return "mathematics"
	case Informatics:
		return "programming"
	case Literature:
		return "Hungarian literature"
	}
	return string(s)
}

// Completer sends a prompt to a text-generation model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HintRequest describes the puzzle a hint is wanted for.
type HintRequest struct {
	Question        string
	PossibleAnswers []string
}

// Generator builds prompts and forwards them to the model.
type Generator struct {
	client Completer
}

func New(client Completer) *Generator {
	return &Generator{client: client}
}

func (g *Generator) Mathematics(ctx context.Context, difficulty string) (string, error) {
	return g.story(ctx, Mathematics, difficulty)
}

func (g *Generator) Informatics(ctx context.Context, difficulty string) (string, error) {
	return g.story(ctx, Informatics, difficulty)
}

func (g *Generator) Literature(ctx context.Context, difficulty string) (string, error) {
	return g.story(ctx, Literature, difficulty)
}

// Generate dispatches on subject and returns the model's raw text unmodified.
func (g *Generator) Generate(ctx context.Context, subject Subject, difficulty string) (string, error) {
	switch subject {
	case Mathematics:
		return g.Mathematics(ctx, difficulty)
	case Informatics:
		return g.Informatics(ctx, difficulty)
	case Literature:
		return g.Literature(ctx, difficulty)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}
}

// Hint asks for a short hint that does not give the answer away.
func (g *Generator) Hint(ctx context.Context, req HintRequest) (string, error) {
	text, err := g.client.Complete(ctx, hintPrompt(req))
	if err != nil {
		observe(kindHint, outcomeUpstreamError)
		return "", err
	}
	observe(kindHint, outcomeOK)
	return strings.TrimSpace(text), nil
}

func (g *Generator) story(ctx context.Context, subject Subject, difficulty string) (string, error) {
	text, err := g.client.Complete(ctx, storyPrompt(subject, difficulty))
	if err != nil {
		observe(string(subject), outcomeUpstreamError)
		return "", err
	}
	observe(string(subject), outcomeOK)
	return text, nil
}
