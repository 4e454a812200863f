package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS activity (
    seq          INTEGER PRIMARY KEY AUTOINCREMENT,
    id           TEXT NOT NULL UNIQUE,
    at           TEXT NOT NULL,
    op           TEXT NOT NULL,
    expense_id   TEXT,
    success      INTEGER NOT NULL DEFAULT 0,
    status       INTEGER,
    message      TEXT,
    request_id   TEXT
);

CREATE INDEX IF NOT EXISTS idx_activity_op ON activity(op);
`
