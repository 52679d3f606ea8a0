// ABOUTME: Tests for chunk metadata validation and score clamping
// ABOUTME: Verifies the fixed insert-time schema and the [0,1] score bound
package models

import "testing"

func TestChunkValidate(t *testing.T) {
	tests := []struct {
		name    string
		chunk   Chunk
		wantErr bool
	}{
		{
			name:  "valid chunk",
			chunk: Chunk{Text: "hello", FileName: "a.txt", ChunkIndex: 0, TotalChunks: 1},
		},
		{
			name:  "last index",
			chunk: Chunk{Text: "hello", FileName: "a.txt", ChunkIndex: 2, TotalChunks: 3},
		},
		{
			name:    "empty text",
			chunk:   Chunk{Text: "", FileName: "a.txt", ChunkIndex: 0, TotalChunks: 1},
			wantErr: true,
		},
		{
			name:    "whitespace only text",
			chunk:   Chunk{Text: "  \n\t ", FileName: "a.txt", ChunkIndex: 0, TotalChunks: 1},
			wantErr: true,
		},
		{
			name:    "missing file name",
			chunk:   Chunk{Text: "hello", ChunkIndex: 0, TotalChunks: 1},
			wantErr: true,
		},
		{
			name:    "negative index",
			chunk:   Chunk{Text: "hello", FileName: "a.txt", ChunkIndex: -1, TotalChunks: 1},
			wantErr: true,
		},
		{
			name:    "index equals total",
			chunk:   Chunk{Text: "hello", FileName: "a.txt", ChunkIndex: 3, TotalChunks: 3},
			wantErr: true,
		},
		{
			name:    "zero total",
			chunk:   Chunk{Text: "hello", FileName: "a.txt", ChunkIndex: 0, TotalChunks: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.chunk.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  float64
	}{
		{"in range", 0.42, 0.42},
		{"zero", 0.0, 0.0},
		{"one", 1.0, 1.0},
		{"negative from far distance", -0.8, 0.0},
		{"above one", 1.3, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampScore(tt.score); got != tt.want {
				t.Errorf("ClampScore(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}
