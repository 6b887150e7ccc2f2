package generator

import (
	"fmt"
	"strings"
)

const storyTemplate = `Write an escape-room story with an educational goal. ` +
	`In it, pose exactly 5 puzzles on %s at %s difficulty. ` +
	`Every puzzle must have exactly 4 possible answers and exactly one correct answer. ` +
	`Give the story, the puzzles and their solutions as JSON in the form ` +
	`{"story": "...", "puzzles": [{"question": "...", "possible_answers": ["...", "...", "...", "..."], "correct_answer": "..."}]}. ` +
	`The question field holds only the question itself. ` +
	`Reply with the JSON only.`

const hintTemplate = `You are a clever and friendly character in an escape-room game. ` +
	`The player clicked on you to ask for help with the current puzzle.

Puzzle: %s
Options: %s

Give a short, useful hint that:
1. does NOT reveal the full answer
2. helps the player think or points them in a direction
3. is at most 2-3 sentences long
4. is friendly and encouraging
5. is concrete but not too obvious

Reply with the hint only, without any other text.`

func storyPrompt(subject Subject, difficulty string) string {
	return fmt.Sprintf(storyTemplate, subject.topic(), difficulty)
}

func hintPrompt(req HintRequest) string {
	return fmt.Sprintf(hintTemplate, req.Question, strings.Join(req.PossibleAnswers, "; "))
}
