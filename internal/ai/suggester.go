// Package ai generates task description suggestions through Gemini. The
// collaborator is strictly best-effort: any failure, including a missing API
// key, degrades to "no suggestion" and never surfaces as an error on the
// request path.
package ai

import (
	"context"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

type Suggester struct {
	llm llms.Model
	log *zap.SugaredLogger
}

// NewSuggester builds the Gemini-backed suggester. An empty API key or a
// client construction failure yields a disabled suggester, not an error.
func NewSuggester(ctx context.Context, apiKey, model string, log *zap.SugaredLogger) *Suggester {
	if apiKey == "" {
		log.Warnw("GEMINI_API_KEY not configured, AI suggestions disabled")
		return &Suggester{log: log}
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		log.Errorw("failed to create Gemini client, AI suggestions disabled", "error", err)
		return &Suggester{log: log}
	}
	return &Suggester{llm: llm, log: log}
}

// Enabled reports whether a model client is configured.
func (s *Suggester) Enabled() bool {
	return s.llm != nil
}

// SuggestionRequest carries the task fields and optional context the prompt
// is built from.
type SuggestionRequest struct {
	TaskName       string
	AssignedToName string
	DueDate        *time.Time
	Tags           []string
	FamilyContext  string
}

// Suggest returns a short description for the task, or "" when the model is
// unavailable or fails.
func (s *Suggester) Suggest(ctx context.Context, req SuggestionRequest) string {
	if s.llm == nil {
		return ""
	}

	prompt := BuildPrompt(req)
	completion, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		s.log.Errorw("AI description generation failed", "task", req.TaskName, "error", err)
		return ""
	}
	return strings.TrimSpace(completion)
}
