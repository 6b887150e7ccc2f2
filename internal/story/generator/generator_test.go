package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCompleter struct {
	prompts []string
	reply   string
	err     error
}

func (r *recordingCompleter) Complete(_ context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return r.reply, r.err
}

func TestParseSubject(t *testing.T) {
	for _, s := range []string{"mathematics", "informatics", "literature", "Literature"} {
		_, err := ParseSubject(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseSubject("chemistry")
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestGenerateBuildsSubjectPrompt(t *testing.T) {
	tests := []struct {
		subject Subject
		topic   string
	}{
		{Mathematics, "mathematics"},
		{Informatics, "programming"},
		{Literature, "Hungarian literature"},
	}
	for _, tc := range tests {
		t.Run(string(tc.subject), func(t *testing.T) {
			c := &recordingCompleter{reply: "raw output"}
			g := New(c)

			out, err := g.Generate(context.Background(), tc.subject, "easy")
			require.NoError(t, err)
			assert.Equal(t, "raw output", out)

			require.Len(t, c.prompts, 1)
			prompt := c.prompts[0]
			assert.Contains(t, prompt, tc.topic)
			assert.Contains(t, prompt, "easy difficulty")
			assert.Contains(t, prompt, "exactly 5 puzzles")
			assert.Contains(t, prompt, "exactly 4 possible answers")
			assert.Contains(t, prompt, `"possible_answers"`)
			assert.Contains(t, prompt, "JSON only")
		})
	}
}

func TestGenerateUnknownSubject(t *testing.T) {
	c := &recordingCompleter{}
	_, err := New(c).Generate(context.Background(), Subject("chemistry"), "easy")
	assert.ErrorIs(t, err, ErrUnknownSubject)
	assert.Empty(t, c.prompts)
}

func TestGeneratePropagatesUpstreamError(t *testing.T) {
	c := &recordingCompleter{err: errors.Join(ErrUpstream, errors.New("boom"))}
	_, err := New(c).Mathematics(context.Background(), "hard")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestHint(t *testing.T) {
	c := &recordingCompleter{reply: "  Think about the author's era.\n"}
	hint, err := New(c).Hint(context.Background(), HintRequest{
		Question:        "Who wrote X?",
		PossibleAnswers: []string{"A", "B", "C", "D"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Think about the author's era.", hint)
	assert.Contains(t, c.prompts[0], "Who wrote X?")
	assert.Contains(t, c.prompts[0], "A; B; C; D")
	assert.Contains(t, c.prompts[0], "does NOT reveal the full answer")
}
