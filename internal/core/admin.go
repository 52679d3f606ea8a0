// ABOUTME: Administrative aggregation over the stored document collection
// ABOUTME: Listing, per-file deletion, and collection statistics
package core

import (
	"fmt"
	"sort"
)

// FileInfo is one file's presence in the collection
type FileInfo struct {
	FileName   string `json:"file_name"`
	ChunkCount int    `json:"chunk_count"`
}

// DocumentList summarizes everything stored
type DocumentList struct {
	TotalCount  int        `json:"total_count"`
	UniqueFiles int        `json:"unique_files"`
	Files       []FileInfo `json:"files"`
}

// DeleteResult reports a per-file deletion
type DeleteResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
	FileName     string `json:"file_name,omitempty"`
}

// Statistics summarizes the collection for the statistics endpoint
type Statistics struct {
	TotalChunks int      `json:"total_chunks"`
	UniqueFiles int      `json:"unique_files"`
	FileNames   []string `json:"file_names"`
}

// ListDocuments aggregates chunk counts per file across the collection
func (p *Pipeline) ListDocuments() (*DocumentList, error) {
	records, err := p.store.All()
	if err != nil {
		return nil, fmt.Errorf("enumerating documents: %w", err)
	}

	counts := make(map[string]int)
	for _, record := range records {
		counts[record.Chunk.FileName]++
	}

	files := make([]FileInfo, 0, len(counts))
	for name, count := range counts {
		files = append(files, FileInfo{FileName: name, ChunkCount: count})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].FileName < files[j].FileName })

	return &DocumentList{
		TotalCount:  len(records),
		UniqueFiles: len(counts),
		Files:       files,
	}, nil
}

// DeleteDocument removes all chunks for a file name. A missing file is
// reported as an unsuccessful result, not an error.
func (p *Pipeline) DeleteDocument(fileName string) (*DeleteResult, error) {
	deleted, err := p.store.DeleteByFileName(fileName)
	if err != nil {
		return nil, fmt.Errorf("deleting document %s: %w", fileName, err)
	}

	if deleted == 0 {
		return &DeleteResult{
			Success:      false,
			Message:      fmt.Sprintf("Document '%s' not found", fileName),
			DeletedCount: 0,
		}, nil
	}

	return &DeleteResult{
		Success:      true,
		Message:      fmt.Sprintf("Successfully deleted %d chunk(s) for file '%s'", deleted, fileName),
		DeletedCount: deleted,
		FileName:     fileName,
	}, nil
}

// GetStatistics returns collection-wide counts
func (p *Pipeline) GetStatistics() (*Statistics, error) {
	total, err := p.store.Count()
	if err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}

	names, err := p.store.FileNames()
	if err != nil {
		return nil, fmt.Errorf("listing file names: %w", err)
	}
	if names == nil {
		names = []string{}
	}

	return &Statistics{
		TotalChunks: total,
		UniqueFiles: len(names),
		FileNames:   names,
	}, nil
}
