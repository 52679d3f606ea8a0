// ABOUTME: Request handlers for upload, query, admin, and health endpoints
// ABOUTME: Response shapes follow the service's published JSON contracts
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/documind/documind/internal/core"
	"github.com/documind/documind/internal/models"
)

// maxUploadBytes caps a single document upload
const maxUploadBytes = 50 << 20

type uploadResponse struct {
	Message    string   `json:"message"`
	FileName   string   `json:"file_name"`
	ChunkCount int      `json:"chunk_count"`
	Chunks     []string `json:"chunks"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field in multipart form")
		return
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	if !core.SupportedFile(fileName) {
		writeError(w, http.StatusBadRequest, "Unsupported file type, we support only PDF, DOCX, TXT")
		return
	}

	// Parsers work from paths, so spool the upload to a temp file
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(fileName))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to buffer upload")
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.ReadFrom(file); err != nil {
		tmp.Close()
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if err := tmp.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to buffer upload")
		return
	}

	chunks, err := s.pipeline.IngestFile(r.Context(), tmpPath, fileName)
	if err != nil {
		slog.Error("document ingest failed", "file", fileName, "error", err)
		if errors.Is(err, core.ErrParse) {
			writeError(w, http.StatusBadRequest, "Failed to extract text from document")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to process and store document")
		return
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:    "Document processed and stored in vector database successfully",
		FileName:   fileName,
		ChunkCount: len(chunks),
		Chunks:     texts,
	})
}

type queryRequest struct {
	Question string `json:"question"`
	NResults *int   `json:"n_results,omitempty"`
}

type sourceChunk struct {
	Chunk           string  `json:"chunk"`
	FileName        string  `json:"file_name"`
	ChunkIndex      int     `json:"chunk_index"`
	SimilarityScore float64 `json:"similarity_score"`
}

type queryResponse struct {
	Answer   string        `json:"answer"`
	Sources  []sourceChunk `json:"sources"`
	Question string        `json:"question"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question must not be empty")
		return
	}

	nResults := 5
	if req.NResults != nil {
		nResults = *req.NResults
	}
	if nResults < 1 {
		nResults = 1
	}
	if nResults > 10 {
		nResults = 10
	}

	state, err := s.pipeline.Answer(r.Context(), req.Question, nResults)
	if err != nil {
		slog.Error("query failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to process query: %s", err))
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:   state.Answer,
		Sources:  toSourceChunks(state.Sources),
		Question: req.Question,
	})
}

func toSourceChunks(sources []models.RetrievalResult) []sourceChunk {
	out := make([]sourceChunk, len(sources))
	for i, src := range sources {
		out[i] = sourceChunk{
			Chunk:           src.Chunk,
			FileName:        src.FileName,
			ChunkIndex:      src.ChunkIndex,
			SimilarityScore: src.SimilarityScore,
		}
	}
	return out
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	list, err := s.pipeline.ListDocuments()
	if err != nil {
		slog.Error("listing documents failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	fileName := r.PathValue("file_name")
	if fileName == "" {
		writeError(w, http.StatusBadRequest, "file_name must not be empty")
		return
	}

	result, err := s.pipeline.DeleteDocument(fileName)
	if err != nil {
		slog.Error("deleting document failed", "file", fileName, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	if !result.Success {
		writeJSON(w, http.StatusNotFound, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.pipeline.GetStatistics()
	if err != nil {
		slog.Error("collecting statistics failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to collect statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "Healthy",
		"app_name": appName,
		"version":  appVersion,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to DocuMind API",
		"version": appVersion,
		"health":  "/health",
	})
}
