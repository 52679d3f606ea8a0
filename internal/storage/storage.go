// ABOUTME: VectorStore contract for the persistent document collection
// ABOUTME: Store failures are fatal to the request, unlike provider failures
package storage

import (
	"errors"

	"github.com/documind/documind/internal/models"
)

// ErrDimensionMismatch is returned when insert vectors do not match the
// collection's established dimensionality.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// ScoredRecord is a stored record paired with its distance to a query.
// Distance is cosine distance, bounded in [0,2]; lower is closer.
type ScoredRecord struct {
	Record   models.StoredRecord
	Distance float64
}

// VectorStore is a persistent keyed collection with similarity search.
//
// Vectors stored in one collection always share a single dimensionality,
// fixed by the first stored vector. When a caller supplies no embeddings
// the store computes them with its internal default embedder. A query
// vector of the wrong length is ignored in favor of internally embedding
// the query text, so rankings never mix dimensions.
type VectorStore interface {
	// Insert stores one record per chunk. ids and chunks must have equal
	// length; embeddings may be nil. Chunk metadata is validated before
	// anything is written.
	Insert(ids []string, chunks []models.Chunk, embeddings [][]float64) error

	// Query returns up to topK records ordered by ascending distance.
	// Fewer (or zero) matches is not an error. A non-nil embedding of
	// the collection's dimensionality is used as-is; otherwise the
	// query text is embedded internally.
	Query(queryText string, topK int, embedding []float64) ([]ScoredRecord, error)

	// DeleteByFileName removes every record whose file name matches
	// exactly, returning how many were removed (0 for no match).
	DeleteByFileName(fileName string) (int, error)

	// All enumerates every stored record, paging internally.
	All() ([]models.StoredRecord, error)

	// Count returns the total number of stored records.
	Count() (int, error)

	// FileNames returns the sorted set of distinct source file names.
	FileNames() ([]string, error)

	Close() error
}
