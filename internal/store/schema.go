package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    file_path    TEXT NOT NULL,
    seq          INTEGER NOT NULL,
    tx_date      TEXT NOT NULL,
    amount       TEXT NOT NULL,
    category     TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (file_path, seq)
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path    TEXT PRIMARY KEY,
    mtime_ns     INTEGER NOT NULL,
    size_bytes   INTEGER NOT NULL,
    parsed_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(tx_date);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
`
