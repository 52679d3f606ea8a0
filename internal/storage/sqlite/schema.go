// ABOUTME: SQLite schema for the document vector collection
// ABOUTME: One record row per chunk plus a singleton dimensionality row
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Document chunk records with their embedding vectors
CREATE TABLE IF NOT EXISTS records (
    id TEXT PRIMARY KEY,
    file_name TEXT NOT NULL,
    chunk_index INTEGER NOT NULL,
    total_chunks INTEGER NOT NULL,
    source_path TEXT,
    content TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Collection-wide embedding dimensionality, fixed by the first insert
CREATE TABLE IF NOT EXISTS collection_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    dimension INTEGER NOT NULL
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_records_file ON records(file_name);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
