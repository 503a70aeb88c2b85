package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS budgets (
    id              TEXT PRIMARY KEY,
    organization_id TEXT NOT NULL,
    creator_id      TEXT NOT NULL,
    title           TEXT NOT NULL,
    total_amount    TEXT NOT NULL,
    details         TEXT NOT NULL DEFAULT '',
    budget_date     DATETIME,
    status          TEXT NOT NULL DEFAULT 'active',
    version         INTEGER NOT NULL DEFAULT 1,
    created_at      DATETIME NOT NULL,
    updated_at      DATETIME NOT NULL,
    archived_at     DATETIME
);

CREATE INDEX IF NOT EXISTS idx_budgets_org_status ON budgets (organization_id, status);

CREATE TABLE IF NOT EXISTS budget_accounts (
    budget_id  TEXT NOT NULL REFERENCES budgets(id) ON DELETE CASCADE,
    account_id TEXT NOT NULL,
    name       TEXT NOT NULL,
    budgeted   TEXT NOT NULL,
    spent      TEXT NOT NULL DEFAULT '0',
    position   INTEGER NOT NULL,
    PRIMARY KEY (budget_id, account_id)
);

CREATE TABLE IF NOT EXISTS transactions (
    id              TEXT PRIMARY KEY,
    budget_id       TEXT NOT NULL REFERENCES budgets(id),
    account_id      TEXT NOT NULL,
    organization_id TEXT NOT NULL,
    kind            TEXT NOT NULL,
    amount          TEXT NOT NULL,
    description     TEXT NOT NULL,
    tx_date         DATETIME NOT NULL,
    author_id       TEXT NOT NULL,
    author_name     TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL,
    decided_by      TEXT,
    decided_at      DATETIME,
    created_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (budget_id, account_id, tx_date);
CREATE INDEX IF NOT EXISTS idx_transactions_org_status ON transactions (organization_id, status);
`
