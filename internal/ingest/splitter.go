// ABOUTME: Splitter cuts document text into overlapping fixed-size windows
// ABOUTME: Chunk indices and totals are assigned after the full pass completes
package ingest

import (
	"strings"

	"github.com/documind/documind/internal/models"
)

// Default window geometry, matching the service configuration defaults.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Splitter splits raw text into overlapping chunks of runes.
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter creates a Splitter. A non-positive chunk size falls back to
// the default; overlap is clamped into [0, chunkSize).
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split cuts text into chunks tagged with fileName and sourcePath.
// Empty or whitespace-only input yields no chunks. Window starts advance
// by chunkSize-overlap; when that step is not strictly positive the next
// start is forced to the current window's end so the loop always
// terminates, even for degenerate overlap settings.
func (s *Splitter) Split(text, fileName, sourcePath string) []models.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	n := len(runes)
	step := s.chunkSize - s.overlap

	var pieces []string
	for start := 0; start < n; {
		end := start + s.chunkSize
		if end > n {
			end = n
		}

		// Trim after slicing; a window that trims to nothing emits no chunk
		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			pieces = append(pieces, piece)
		}

		if step > 0 {
			start += step
		} else {
			start = end
		}
	}

	// Totals are only known once every window has been cut
	chunks := make([]models.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = models.Chunk{
			Text:        piece,
			FileName:    fileName,
			ChunkIndex:  i,
			TotalChunks: len(pieces),
			SourcePath:  sourcePath,
		}
	}
	return chunks
}
