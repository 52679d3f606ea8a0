// ABOUTME: Document chunk and stored record models for the vector collection
// ABOUTME: Defines the fixed metadata schema validated at insert time
package models

import (
	"fmt"
	"strings"
	"time"
)

// Chunk is a bounded, overlapping substring of a source document.
// It is the atomic unit of storage and retrieval.
type Chunk struct {
	Text        string `json:"text"`
	FileName    string `json:"file_name"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	SourcePath  string `json:"source_path,omitempty"`
}

// Validate checks the fixed metadata schema before a chunk is stored.
func (c Chunk) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("chunk text is empty")
	}
	if c.FileName == "" {
		return fmt.Errorf("chunk file_name is empty")
	}
	if c.TotalChunks <= 0 {
		return fmt.Errorf("chunk total_chunks must be positive, got %d", c.TotalChunks)
	}
	if c.ChunkIndex < 0 || c.ChunkIndex >= c.TotalChunks {
		return fmt.Errorf("chunk_index %d out of range [0,%d)", c.ChunkIndex, c.TotalChunks)
	}
	return nil
}

// StoredRecord is a chunk as persisted in the vector collection.
// The ID is assigned at insert time and never derived from content,
// so re-ingesting identical text creates new records.
type StoredRecord struct {
	ID        string    `json:"id"`
	Chunk     Chunk     `json:"chunk"`
	Embedding []float64 `json:"embedding,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RetrievalResult is a retrieved chunk with its normalized similarity score.
type RetrievalResult struct {
	Chunk           string  `json:"chunk"`
	FileName        string  `json:"file_name"`
	ChunkIndex      int     `json:"chunk_index"`
	SimilarityScore float64 `json:"similarity_score"`
}

// ClampScore normalizes a cosine-distance-derived score into [0,1].
// Cosine distance is bounded in [0,2], so 1-distance can dip below zero.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
