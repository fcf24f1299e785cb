package history

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS suggestions (
	id          TEXT PRIMARY KEY,
	file_name   TEXT NOT NULL DEFAULT '',
	language    TEXT NOT NULL DEFAULT 'text',
	intention   TEXT NOT NULL,
	prompt      TEXT NOT NULL,
	suggestion  TEXT NOT NULL,
	explanation TEXT NOT NULL DEFAULT '',
	confidence  REAL NOT NULL DEFAULT 0,
	applied     INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_suggestions_file ON suggestions(file_name);
CREATE INDEX IF NOT EXISTS idx_suggestions_created ON suggestions(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
