// ABOUTME: Tests for the overlapping window splitter
// ABOUTME: Verifies geometry, coverage, termination, and index invariants
package ingest

import (
	"strings"
	"testing"
	"time"
)

func TestSplit_EmptyInput(t *testing.T) {
	s := NewSplitter(100, 20)

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := s.Split(tt.text, "a.txt", "")
			if len(chunks) != 0 {
				t.Errorf("Split(%q) = %d chunks, want 0", tt.text, len(chunks))
			}
		})
	}
}

func TestSplit_SingleChunk(t *testing.T) {
	s := NewSplitter(1000, 200)
	chunks := s.Split("short text", "a.txt", "/tmp/a.txt")

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "short text" {
		t.Errorf("Text = %q, want %q", chunks[0].Text, "short text")
	}
	if chunks[0].ChunkIndex != 0 || chunks[0].TotalChunks != 1 {
		t.Errorf("index/total = %d/%d, want 0/1", chunks[0].ChunkIndex, chunks[0].TotalChunks)
	}
	if chunks[0].FileName != "a.txt" {
		t.Errorf("FileName = %q, want a.txt", chunks[0].FileName)
	}
	if chunks[0].SourcePath != "/tmp/a.txt" {
		t.Errorf("SourcePath = %q, want /tmp/a.txt", chunks[0].SourcePath)
	}
}

// Reference scenario: chunk_size=1000, overlap=200, input length 2500
// gives window starts 0, 800, 1600, 2400 and a final chunk of length 100.
func TestSplit_WindowGeometry(t *testing.T) {
	s := NewSplitter(1000, 200)
	text := strings.Repeat("x", 2500)

	chunks := s.Split(text, "a.txt", "")
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}

	wantLens := []int{1000, 1000, 900, 100}
	for i, chunk := range chunks {
		if len(chunk.Text) != wantLens[i] {
			t.Errorf("chunk %d length = %d, want %d", i, len(chunk.Text), wantLens[i])
		}
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d ChunkIndex = %d", i, chunk.ChunkIndex)
		}
		if chunk.TotalChunks != 4 {
			t.Errorf("chunk %d TotalChunks = %d, want 4", i, chunk.TotalChunks)
		}
	}
}

func TestSplit_OverlapRepeatsText(t *testing.T) {
	s := NewSplitter(10, 4)
	text := "abcdefghijklmnopqrst" // 20 chars

	chunks := s.Split(text, "a.txt", "")
	// starts 0, 6, 12, 18
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}
	if chunks[0].Text != "abcdefghij" {
		t.Errorf("chunk 0 = %q", chunks[0].Text)
	}
	if chunks[1].Text != "ghijklmnop" {
		t.Errorf("chunk 1 = %q", chunks[1].Text)
	}
	if chunks[3].Text != "st" {
		t.Errorf("chunk 3 = %q", chunks[3].Text)
	}
}

// Every rune of the source must appear in at least one window.
func TestSplit_Coverage(t *testing.T) {
	s := NewSplitter(7, 3)
	text := "the quick brown fox jumps over the lazy dog"

	chunks := s.Split(text, "a.txt", "")
	var joined strings.Builder
	for _, c := range chunks {
		joined.WriteString(c.Text)
	}
	// With overlap, the concatenation must be at least as long as the
	// trimmed source and must contain every non-space character
	for _, word := range strings.Fields(text) {
		for _, r := range word {
			if !strings.ContainsRune(joined.String(), r) {
				t.Errorf("rune %q missing from chunk coverage", r)
			}
		}
	}
}

// Degenerate configurations must still terminate with forward progress.
func TestSplit_DegenerateOverlapTerminates(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"overlap equals size", 10, 10},
		{"overlap above size", 10, 15},
	}

	text := strings.Repeat("a", 100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Bypass constructor clamping to exercise the loop guard
			s := &Splitter{chunkSize: tt.chunkSize, overlap: tt.overlap}

			done := make(chan []string, 1)
			go func() {
				chunks := s.Split(text, "a.txt", "")
				texts := make([]string, len(chunks))
				for i, c := range chunks {
					texts[i] = c.Text
				}
				done <- texts
			}()

			select {
			case texts := <-done:
				// 100 chars at 10 per forced window
				if len(texts) != 10 {
					t.Errorf("got %d chunks, want 10", len(texts))
				}
			case <-time.After(5 * time.Second):
				t.Fatal("Split did not terminate with degenerate overlap")
			}
		})
	}
}

func TestSplit_WhitespaceWindowSkipped(t *testing.T) {
	s := &Splitter{chunkSize: 5, overlap: 0}
	// Middle window is entirely whitespace
	text := "aaaaa     bbbbb"

	chunks := s.Split(text, "a.txt", "")
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Text != "aaaaa" || chunks[1].Text != "bbbbb" {
		t.Errorf("chunks = %q, %q", chunks[0].Text, chunks[1].Text)
	}
	// Indices stay dense after the empty window is dropped
	if chunks[1].ChunkIndex != 1 || chunks[1].TotalChunks != 2 {
		t.Errorf("chunk 1 index/total = %d/%d, want 1/2", chunks[1].ChunkIndex, chunks[1].TotalChunks)
	}
}

func TestSplit_UnicodeSafe(t *testing.T) {
	s := NewSplitter(4, 1)
	text := "héllo wörld ünïcode"

	chunks := s.Split(text, "a.txt", "")
	for i, c := range chunks {
		if strings.ContainsRune(c.Text, '�') {
			t.Errorf("chunk %d contains replacement rune: %q", i, c.Text)
		}
	}
}

func TestNewSplitter_Defaults(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
		wantSize      int
		wantOverlap   int
	}{
		{"zero size", 0, 10, DefaultChunkSize, 10},
		{"negative overlap", 100, -5, 100, 0},
		{"overlap at size", 100, 100, 100, 99},
		{"overlap above size", 100, 150, 100, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSplitter(tt.size, tt.overlap)
			if s.chunkSize != tt.wantSize {
				t.Errorf("chunkSize = %d, want %d", s.chunkSize, tt.wantSize)
			}
			if s.overlap != tt.wantOverlap {
				t.Errorf("overlap = %d, want %d", s.overlap, tt.wantOverlap)
			}
		})
	}
}
