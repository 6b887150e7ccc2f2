package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{"story":"The library doors slam shut.","puzzles":[` +
	`{"question":"Who wrote X?","possible_answers":["A","B","C","D"],"correct_answer":"B"},` +
	`{"question":"2+2?","possible_answers":["3","4","5","6"],"correct_answer":"4"}]}`

func TestParseAcceptsWrappedJSON(t *testing.T) {
	tests := map[string]string{
		"plain":      sampleDoc,
		"fenced":     "```json\n" + sampleDoc + "\n```",
		"bare fence": "```\n" + sampleDoc + "\n```",
		"quoted":     `"` + sampleDoc + `"`,
		"with prose": "Here is your escape room:\n" + sampleDoc + "\nHave fun!",
		"padded":     "\n\n  " + sampleDoc + "  \n",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, "The library doors slam shut.", doc.Story)
			require.Len(t, doc.Puzzles, 2)
			assert.Equal(t, []string{"A", "B", "C", "D"}, doc.Puzzles[0].PossibleAnswers)
			assert.Equal(t, "B", doc.Puzzles[0].CorrectAnswer)
		})
	}
}

func TestParseAcceptsKeyVariants(t *testing.T) {
	raw := `{"story":"s","puzzles":[{"question":"q","possible answers":["a","b"],"correct answer":"a"},` +
		`{"question":"q2","options":["x","y","z"],"answer":"z"}]}`

	doc, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.Puzzles[0].PossibleAnswers)
	assert.Equal(t, "a", doc.Puzzles[0].CorrectAnswer)
	assert.Equal(t, []string{"x", "y", "z"}, doc.Puzzles[1].PossibleAnswers)
	assert.Equal(t, "z", doc.Puzzles[1].CorrectAnswer)
}

func TestParseUnwrapsNestedPuzzle(t *testing.T) {
	raw := `{"story":"s","puzzles":[{"puzzle":{"question":"q","possible_answers":["a","b"],"correct_answer":"b"}},` +
		`{"question":"q2","options":["x","y"],"answer":"x"}]}`

	doc, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, doc.Puzzles, 2)
	assert.Equal(t, "q", doc.Puzzles[0].Question)
	assert.Equal(t, []string{"a", "b"}, doc.Puzzles[0].PossibleAnswers)
	assert.Equal(t, "b", doc.Puzzles[0].CorrectAnswer)
	assert.Equal(t, "q2", doc.Puzzles[1].Question)
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"prose only":     "Sorry, I cannot help with that.",
		"empty":          "",
		"broken json":    `{"story": "s", "puzzles": [`,
		"no story":       `{"story":"","puzzles":[{"question":"q","possible_answers":["a","b"],"correct_answer":"a"}]}`,
		"no puzzles":     `{"story":"s","puzzles":[]}`,
		"no question":    `{"story":"s","puzzles":[{"question":" ","possible_answers":["a","b"],"correct_answer":"a"}]}`,
		"single option":  `{"story":"s","puzzles":[{"question":"q","possible_answers":["a"],"correct_answer":"a"}]}`,
		"no answer":      `{"story":"s","puzzles":[{"question":"q","possible_answers":["a","b"],"correct_answer":"  "}]}`,
		"missing answer": `{"story":"s","puzzles":[{"question":"q","possible_answers":["a","b"]}]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(raw)
			assert.ErrorIs(t, err, ErrMalformedOutput)
		})
	}
}
