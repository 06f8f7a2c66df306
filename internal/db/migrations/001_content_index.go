package migrations

type Migration struct {
	Version int
	Name    string
	UpSQL   string
}

const contentIndexSchemaSQL = `
CREATE TABLE IF NOT EXISTS index_runs (
    id TEXT PRIMARY KEY,
    content_dir TEXT NOT NULL,
    document_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS documents (
    slug TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    draft INTEGER NOT NULL DEFAULT 0 CHECK (draft IN (0, 1)),
    content_hash TEXT NOT NULL,
    run_id TEXT NOT NULL REFERENCES index_runs(id) ON DELETE CASCADE,
    indexed_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_documents_run_id ON documents(run_id);
`

func All() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "content_index",
			UpSQL:   contentIndexSchemaSQL,
		},
	}
}
