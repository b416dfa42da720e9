package store

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

CREATE TABLE IF NOT EXISTS saved_tabs (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	url          TEXT NOT NULL,
	fav_icon_url TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT 'Uncategorized',
	form_type    TEXT NOT NULL DEFAULT '',
	deadline     TEXT NOT NULL DEFAULT '',
	saved_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS pinned_tabs (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	url          TEXT NOT NULL UNIQUE,
	fav_icon_url TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT 'Uncategorized',
	form_type    TEXT NOT NULL DEFAULT '',
	deadline     TEXT NOT NULL DEFAULT '',
	saved_at     DATETIME NOT NULL,
	pinned_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_saved_tabs_category ON saved_tabs(category);
CREATE INDEX IF NOT EXISTS idx_saved_tabs_saved_at ON saved_tabs(saved_at);
CREATE INDEX IF NOT EXISTS idx_pinned_tabs_category ON pinned_tabs(category);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_saved_tabs_url ON saved_tabs(url);
CREATE INDEX IF NOT EXISTS idx_pinned_tabs_pinned_at ON pinned_tabs(pinned_at);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
