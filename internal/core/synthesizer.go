// ABOUTME: Synthesis stage turning retrieved chunks into a final answer
// ABOUTME: Every degradation branch yields a usable answer, never an error
package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/documind/documind/internal/models"
)

// NoRelevantInfoAnswer is returned when retrieval found nothing
const NoRelevantInfoAnswer = "I couldn't find any relevant information in the uploaded documents to answer your question."

const answerPromptTemplate = `Based on the following document excerpts, please answer the question.

If the answer cannot be found in the provided context, please say so.

Question: %s

Document excerpts:
%s

Answer:`

// Generator produces a completion for a prompt. Implemented by llm.Client.
type Generator interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Synthesizer runs the synthesis stage
type Synthesizer struct {
	generator Generator // nil when no generation credential is configured
}

// NewSynthesizer creates a Synthesizer. generator may be nil.
func NewSynthesizer(generator Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Run fills state.Answer and state.Sources from state.Retrieved.
// Degradation ladder: empty retrieval -> fixed message without any
// generation call; no credential -> templated chunk-count answer; call
// failure -> templated answer naming the failure; success -> verbatim.
func (s *Synthesizer) Run(ctx context.Context, state *models.QueryState) {
	state.CurrentStage = models.StageSynthesis

	if len(state.Retrieved) == 0 {
		state.Answer = NoRelevantInfoAnswer
		state.Sources = []models.RetrievalResult{}
		return
	}

	state.Sources = state.Retrieved

	if s.generator == nil {
		state.Answer = fmt.Sprintf(
			"I found %d relevant document chunk(s) related to your question. Please review the sources below for the answer.",
			len(state.Retrieved))
		return
	}

	prompt := fmt.Sprintf(answerPromptTemplate, state.Question, buildContext(state.Retrieved))

	answer, err := s.generator.Chat(ctx, prompt)
	if err != nil {
		slog.Warn("answer generation failed, returning templated answer", "error", err)
		state.Answer = fmt.Sprintf(
			"I found %d relevant document chunk(s) related to your question, but couldn't generate an AI answer due to API limitations. Please review the sources below for the answer to your question: '%s'",
			len(state.Retrieved), state.Question)
		return
	}

	state.Answer = answer
}

// buildContext labels chunks in ranking order for the prompt
func buildContext(results []models.RetrievalResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("[Document %d]: %s", i+1, r.Chunk)
	}
	return strings.Join(parts, "\n\n")
}
