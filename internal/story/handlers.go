package story

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/escaperoom/escaperoom-backend/internal/db/repository"
	"github.com/escaperoom/escaperoom-backend/internal/logging"
	"github.com/escaperoom/escaperoom-backend/internal/story/generator"
	httperrors "github.com/escaperoom/escaperoom-backend/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for stories, puzzles and generation.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "story_http").Logger(),
	}
}

// AddStory handles POST /story
func (h *HTTPHandlers) AddStory(w http.ResponseWriter, r *http.Request) {
	var req NewStory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	for _, f := range []struct{ name, value string }{
		{"description", req.Description},
		{"difficulty", req.Difficulty},
		{"type", req.Type},
	} {
		if strings.TrimSpace(f.value) == "" {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "All fields must be filled and non-empty.", f.name)
			return
		}
	}

	story, err := h.svc.AddStory(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to create story")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Story created",
		"story_id": story.ID,
	})
}

// GetStory handles GET /story/{id}
func (h *HTTPHandlers) GetStory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	story, err := h.svc.GetStory(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to load story")
		return
	}
	h.respondJSON(w, http.StatusOK, story)
}

// RandomStories handles GET /stories/random
func (h *HTTPHandlers) RandomStories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.svc.RandomStories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to load stories")
		return
	}
	h.respondJSON(w, http.StatusOK, stories)
}

// AddPuzzle handles POST /puzzle
func (h *HTTPHandlers) AddPuzzle(w http.ResponseWriter, r *http.Request) {
	var req NewPuzzle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if field, msg := validatePuzzle(req); field != "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, msg, field)
		return
	}

	puzzle, err := h.svc.AddPuzzle(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to create puzzle")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Puzzle added",
		"puzzle_id": puzzle.ID,
	})
}

// ListPuzzles handles GET /puzzles/{story_id}
func (h *HTTPHandlers) ListPuzzles(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathID(w, r, "story_id")
	if !ok {
		return
	}

	puzzles, err := h.svc.ListPuzzles(r.Context(), storyID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to load puzzles")
		return
	}
	h.respondJSON(w, http.StatusOK, puzzles)
}

// GenerateRaw handles GET /generate/{subject}/{difficulty} and returns the
// model output as plain text.
func (h *HTTPHandlers) GenerateRaw(w http.ResponseWriter, r *http.Request) {
	subject, difficulty, ok := generationParams(w, r)
	if !ok {
		return
	}

	text, err := h.svc.GenerateRaw(r.Context(), subject, difficulty)
	if err != nil {
		h.respondServiceError(w, r, err, "Story generation failed")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		h.logger.Warn().Err(err).Msg("write generated text")
	}
}

// ImportGenerated handles POST /generate/{subject}/{difficulty}
func (h *HTTPHandlers) ImportGenerated(w http.ResponseWriter, r *http.Request) {
	subject, difficulty, ok := generationParams(w, r)
	if !ok {
		return
	}

	generated, err := h.svc.ImportGenerated(r.Context(), subject, difficulty)
	if err != nil {
		h.respondServiceError(w, r, err, "Story generation failed")
		return
	}
	h.respondJSON(w, http.StatusCreated, generated)
}

// Hint handles GET /puzzle/{id}/hint
func (h *HTTPHandlers) Hint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	hint, err := h.svc.Hint(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Hint generation failed")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"hint": hint})
}

// respondServiceError maps service errors onto HTTP statuses. Only
// unexpected and upstream failures are logged.
func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	logger := logging.FromContextOr(r.Context(), h.logger)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Resource not found")
	case errors.Is(err, repository.ErrTooLong):
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "A field exceeds its maximum length.", "")
	case errors.Is(err, generator.ErrUnknownSubject):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Unknown subject")
	case errors.Is(err, ErrGenerationDisabled):
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeGenerationOff, "Story generation is not configured")
	case errors.Is(err, generator.ErrMalformedOutput):
		logger.Warn().Err(err).Msg("generator returned unusable output")
		httperrors.RespondBadGateway(w, httperrors.ErrCodeMalformedUpstream, "Generated content could not be parsed")
	case errors.Is(err, generator.ErrUpstream):
		logger.Warn().Err(err).Msg("generation upstream failed")
		httperrors.RespondBadGateway(w, httperrors.ErrCodeUpstreamError, "Generation service failed")
	default:
		logger.Error().Err(err).Msg(internalMsg)
		httperrors.RespondInternalError(w, internalMsg)
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("encode response")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "Identifier must be an integer.", name)
		return 0, false
	}
	return id, true
}

func generationParams(w http.ResponseWriter, r *http.Request) (generator.Subject, string, bool) {
	subject, err := generator.ParseSubject(r.PathValue("subject"))
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Unknown subject")
		return "", "", false
	}
	difficulty := strings.TrimSpace(r.PathValue("difficulty"))
	if difficulty == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Difficulty must not be empty.", "difficulty")
		return "", "", false
	}
	return subject, difficulty, true
}

func validatePuzzle(p NewPuzzle) (field, msg string) {
	switch {
	case p.StoryID <= 0:
		return "story_id", "story_id must be a positive integer."
	case strings.TrimSpace(p.Question) == "":
		return "question", "All fields must be filled and non-empty."
	case len(p.PossibleAnswers) == 0:
		return "possible_answers", "At least one possible answer is required."
	case strings.TrimSpace(p.CorrectAnswer) == "":
		return "correct_answer", "All fields must be filled and non-empty."
	}
	return "", ""
}
