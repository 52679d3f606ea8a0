// ABOUTME: SQLite-backed vector store with brute-force cosine similarity search
// ABOUTME: Vectors are stored as BLOBs; collection dimensionality is fixed at first insert
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/documind/documind/internal/models"
	"github.com/documind/documind/internal/storage"
)

// enumeration page size for All()
const pageSize = 500

// Store implements storage.VectorStore on a SQLite collection database
type Store struct {
	db       *DB
	embedder *defaultEmbedder
}

// compile-time interface check
var _ storage.VectorStore = (*Store)(nil)

// New opens the collection database inside dir and returns a Store
func New(dir string) (*Store, error) {
	db, err := Open(dir)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, embedder: newDefaultEmbedder()}, nil
}

// NewInMemory creates a Store on an in-memory database (for testing)
func NewInMemory() (*Store, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, err
	}
	return &Store{db: db, embedder: newDefaultEmbedder()}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores one record per chunk. When embeddings is nil the store
// computes vectors with its internal default embedder. All stored
// vectors must share the collection's dimensionality.
func (s *Store) Insert(ids []string, chunks []models.Chunk, embeddings [][]float64) error {
	if len(ids) != len(chunks) {
		return fmt.Errorf("ids length %d does not match chunks length %d", len(ids), len(chunks))
	}
	if embeddings != nil && len(embeddings) != len(chunks) {
		return fmt.Errorf("embeddings length %d does not match chunks length %d", len(embeddings), len(chunks))
	}
	if len(chunks) == 0 {
		return nil
	}

	for i, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}
	}

	vectors := embeddings
	if vectors == nil {
		vectors = make([][]float64, len(chunks))
		for i, chunk := range chunks {
			vectors[i] = s.embedder.Embed(chunk.Text)
		}
	}

	dimension, err := s.ensureDimension(len(vectors[0]))
	if err != nil {
		return err
	}
	for i, vec := range vectors {
		if len(vec) != dimension {
			return fmt.Errorf("%w: vector %d has dimension %d, collection requires %d",
				storage.ErrDimensionMismatch, i, len(vec), dimension)
		}
	}

	tx, err := s.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO records (id, file_name, chunk_index, total_chunks, source_path, content, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for i, chunk := range chunks {
		_, err := stmt.Exec(ids[i], chunk.FileName, chunk.ChunkIndex, chunk.TotalChunks,
			nullString(chunk.SourcePath), chunk.Text, vectorToBlob(vectors[i]), now)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", ids[i], err)
		}
	}

	return tx.Commit()
}

// Query returns up to topK records ordered by ascending cosine distance.
// A supplied embedding is used only if it matches the collection
// dimensionality; otherwise the query text is embedded internally.
func (s *Store) Query(queryText string, topK int, embedding []float64) ([]storage.ScoredRecord, error) {
	if topK <= 0 {
		topK = 5
	}

	dimension, err := s.dimension()
	if err != nil {
		return nil, err
	}
	if dimension == 0 {
		// Empty collection
		return nil, nil
	}

	queryVec := embedding
	if len(queryVec) != dimension {
		queryVec = s.embedder.Embed(queryText)
		if len(queryVec) != dimension {
			return nil, fmt.Errorf("%w: collection requires provider embeddings of dimension %d",
				storage.ErrDimensionMismatch, dimension)
		}
	}

	rows, err := s.db.Query(`
		SELECT id, file_name, chunk_index, total_chunks, source_path, content, vector, created_at
		FROM records
	`)
	if err != nil {
		return nil, fmt.Errorf("scanning records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []storage.ScoredRecord
	for rows.Next() {
		record, blob, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		distance := 1.0 - cosineSimilarity(queryVec, blobToVector(blob))
		record.Embedding = nil // not needed for ranking output
		results = append(results, storage.ScoredRecord{
			Record:   record,
			Distance: distance,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Ascending distance, closest first
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// DeleteByFileName removes all records whose file name matches exactly
func (s *Store) DeleteByFileName(fileName string) (int, error) {
	res, err := s.db.Exec("DELETE FROM records WHERE file_name = ?", fileName)
	if err != nil {
		return 0, fmt.Errorf("deleting records for %s: %w", fileName, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// All enumerates every stored record, paging internally so large
// collections are never silently truncated
func (s *Store) All() ([]models.StoredRecord, error) {
	var all []models.StoredRecord

	for offset := 0; ; offset += pageSize {
		rows, err := s.db.Query(`
			SELECT id, file_name, chunk_index, total_chunks, source_path, content, vector, created_at
			FROM records
			ORDER BY created_at, id
			LIMIT ? OFFSET ?
		`, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("enumerating records: %w", err)
		}

		fetched := 0
		for rows.Next() {
			record, blob, err := scanRecord(rows)
			if err != nil {
				_ = rows.Close()
				return nil, err
			}
			record.Embedding = blobToVector(blob)
			all = append(all, record)
			fetched++
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return nil, err
		}
		_ = rows.Close()

		if fetched < pageSize {
			break
		}
	}

	return all, nil
}

// Count returns the total number of stored records
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// FileNames returns the sorted set of distinct source file names
func (s *Store) FileNames() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT file_name FROM records ORDER BY file_name")
	if err != nil {
		return nil, fmt.Errorf("listing file names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// dimension returns the collection dimensionality, 0 if nothing stored yet
func (s *Store) dimension() (int, error) {
	var dimension int
	err := s.db.QueryRow("SELECT dimension FROM collection_meta WHERE id = 1").Scan(&dimension)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading collection dimension: %w", err)
	}
	return dimension, nil
}

// ensureDimension fixes the collection dimensionality on first insert
// and returns the established value afterwards
func (s *Store) ensureDimension(want int) (int, error) {
	current, err := s.dimension()
	if err != nil {
		return 0, err
	}
	if current != 0 {
		return current, nil
	}
	if want <= 0 {
		return 0, fmt.Errorf("invalid embedding dimension %d", want)
	}
	if _, err := s.db.Exec("INSERT INTO collection_meta (id, dimension) VALUES (1, ?)", want); err != nil {
		return 0, fmt.Errorf("recording collection dimension: %w", err)
	}
	return want, nil
}

// scanRecord reads one record row plus its raw vector blob
func scanRecord(rows *sql.Rows) (models.StoredRecord, []byte, error) {
	var (
		record     models.StoredRecord
		sourcePath sql.NullString
		blob       []byte
	)
	err := rows.Scan(&record.ID, &record.Chunk.FileName, &record.Chunk.ChunkIndex,
		&record.Chunk.TotalChunks, &sourcePath, &record.Chunk.Text, &blob, &record.CreatedAt)
	if err != nil {
		return models.StoredRecord{}, nil, err
	}
	if sourcePath.Valid {
		record.Chunk.SourcePath = sourcePath.String
	}
	return record, blob, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
