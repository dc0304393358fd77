// ABOUTME: SQLite schema for the conversation log and the vector index
// ABOUTME: Timestamps are UTC unix nanoseconds; embeddings are float32 LE blobs
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Conversation turns. Sessions are implicit: a session is the set of turns
-- sharing a session_id, alive while its newest turn is recent enough.
CREATE TABLE IF NOT EXISTS turns (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    timestamp INTEGER NOT NULL
);

-- Vector index over document chunks.
CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    content TEXT NOT NULL,
    embedding BLOB NOT NULL,
    created_at INTEGER NOT NULL
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
