package sqlite

const schema = `
-- Knowledge-base items
CREATE TABLE IF NOT EXISTS entities (
    item_id INTEGER PRIMARY KEY,
    label TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    views INTEGER NOT NULL DEFAULT 0
);

-- Normalized surface forms; one row per (alias, item)
CREATE TABLE IF NOT EXISTS aliases (
    alias TEXT NOT NULL,
    item_id INTEGER NOT NULL REFERENCES entities(item_id) ON DELETE CASCADE,
    tokens INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (alias, item_id)
);

CREATE INDEX IF NOT EXISTS idx_aliases_item ON aliases(item_id);

-- Raw dataset pages fetched from the hub
CREATE TABLE IF NOT EXISTS pages (
    dataset TEXT NOT NULL,
    config TEXT NOT NULL,
    split TEXT NOT NULL,
    page_offset INTEGER NOT NULL,
    page_length INTEGER NOT NULL,
    payload BLOB NOT NULL,
    fetched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (dataset, config, split, page_offset, page_length)
);

-- Key/value metadata (import source, counts)
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
