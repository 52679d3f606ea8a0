// ABOUTME: Query expansion generating alternative phrasings of a question
// ABOUTME: Any failure collapses to the original question alone
package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const expansionPromptTemplate = `You are a search query expert. Given a user's question, generate %d alternative ways to ask the same question or search for the same information.

Original question: %s

Generate %d alternative queries that:
1. Use different wording but mean the same thing
2. Include synonyms or related terms
3. May be more specific or more general
4. Could help find relevant documents

Return ONLY the queries, one per line, without numbering or bullets.
Example format:
What is machine learning?
Explain machine learning
Machine learning definition

Alternative queries:`

// boilerplate line prefixes stripped from generator output
var expansionNoisePrefixes = []string{"Alternative", "Example", "Original"}

// Expander broadens retrieval recall with paraphrased queries
type Expander struct {
	generator Generator // nil when no generation credential is configured
}

// NewExpander creates an Expander. generator may be nil.
func NewExpander(generator Generator) *Expander {
	return &Expander{generator: generator}
}

// Expand returns the original question followed by up to count
// paraphrases. Without a credential, or on any generation failure, the
// original question is returned alone.
func (e *Expander) Expand(ctx context.Context, question string, count int) []string {
	if count <= 0 {
		count = 3
	}
	if e.generator == nil {
		return []string{question}
	}

	prompt := fmt.Sprintf(expansionPromptTemplate, count, question, count)

	response, err := e.generator.Chat(ctx, prompt)
	if err != nil {
		slog.Warn("query expansion failed, using original question", "error", err)
		return []string{question}
	}

	var expansions []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || hasNoisePrefix(line) {
			continue
		}
		expansions = append(expansions, line)
		if len(expansions) == count {
			break
		}
	}

	return append([]string{question}, expansions...)
}

func hasNoisePrefix(line string) bool {
	for _, prefix := range expansionNoisePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
