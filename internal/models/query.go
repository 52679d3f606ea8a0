// ABOUTME: QueryState is the per-request record threaded through pipeline stages
// ABOUTME: Created at request entry, mutated by retrieval then synthesis, then discarded
package models

// Pipeline stage labels recorded in QueryState.CurrentStage.
const (
	StageRetrieval = "retrieval"
	StageSynthesis = "synthesis"
)

// QueryState carries one question through retrieval and synthesis.
// It is passed by exclusive reference between stages and is never
// persisted or shared across requests.
type QueryState struct {
	// Input
	Question string
	NResults int

	// Retrieval output
	Retrieved []RetrievalResult
	// RetrievalErr marks the normal "no relevant documents found"
	// terminal outcome. It is a message, not a Go error: the request
	// still produces a usable answer.
	RetrievalErr string

	// Synthesis output
	Answer  string
	Sources []RetrievalResult

	CurrentStage string
}

// NewQueryState creates the state record for a single query request.
func NewQueryState(question string, nResults int) *QueryState {
	return &QueryState{
		Question: question,
		NResults: nResults,
	}
}
