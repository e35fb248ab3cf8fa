package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS budget_groups (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    sort_order  INTEGER NOT NULL DEFAULT 0,
    is_default  INTEGER NOT NULL DEFAULT 0,
    is_active   INTEGER NOT NULL DEFAULT 1,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    group_id    TEXT NOT NULL REFERENCES budget_groups(id),
    is_default  INTEGER NOT NULL DEFAULT 0,
    is_active   INTEGER NOT NULL DEFAULT 1,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budget_months (
    id              TEXT PRIMARY KEY,
    year            INTEGER NOT NULL,
    month           INTEGER NOT NULL,
    month_key       TEXT NOT NULL UNIQUE,
    expected_income TEXT,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budget_items (
    id               TEXT PRIMARY KEY,
    budget_month_id  TEXT NOT NULL REFERENCES budget_months(id) ON DELETE CASCADE,
    group_id         TEXT NOT NULL REFERENCES budget_groups(id),
    category_id      TEXT NOT NULL REFERENCES categories(id),
    name             TEXT NOT NULL,
    planned_amount   TEXT NOT NULL,
    multiplier       INTEGER NOT NULL DEFAULT 1,
    split_ratio      TEXT NOT NULL DEFAULT '1',
    is_bill          INTEGER NOT NULL DEFAULT 0,
    due_date         TEXT,
    is_from_template INTEGER NOT NULL DEFAULT 0,
    template_id      TEXT,
    created_at       TEXT NOT NULL,
    updated_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id               TEXT PRIMARY KEY,
    budget_month_id  TEXT NOT NULL REFERENCES budget_months(id) ON DELETE CASCADE,
    category_id      TEXT NOT NULL,
    budget_item_id   TEXT,
    amount           TEXT NOT NULL,
    date             TEXT NOT NULL,
    note             TEXT NOT NULL DEFAULT '',
    created_at       TEXT NOT NULL,
    updated_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_ticks (
    id               TEXT PRIMARY KEY,
    budget_month_id  TEXT NOT NULL REFERENCES budget_months(id) ON DELETE CASCADE,
    budget_item_id   TEXT NOT NULL REFERENCES budget_items(id) ON DELETE CASCADE,
    is_paid          INTEGER NOT NULL DEFAULT 0,
    paid_at          TEXT,
    created_at       TEXT NOT NULL,
    updated_at       TEXT NOT NULL,
    UNIQUE (budget_month_id, budget_item_id)
);

CREATE TABLE IF NOT EXISTS recurring_templates (
    id               TEXT PRIMARY KEY,
    group_id         TEXT NOT NULL REFERENCES budget_groups(id),
    category_id      TEXT NOT NULL REFERENCES categories(id),
    name             TEXT NOT NULL,
    planned_amount   TEXT NOT NULL,
    multiplier       INTEGER NOT NULL DEFAULT 1,
    split_ratio      TEXT NOT NULL DEFAULT '1',
    is_bill          INTEGER NOT NULL DEFAULT 0,
    due_day_of_month INTEGER,
    is_active        INTEGER NOT NULL DEFAULT 1,
    created_at       TEXT NOT NULL,
    updated_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    id                      TEXT PRIMARY KEY,
    payday_day_of_month     INTEGER NOT NULL,
    expected_monthly_income TEXT,
    updated_at              TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS purchase_scenarios (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scenario_expenses (
    id             TEXT PRIMARY KEY,
    scenario_id    TEXT NOT NULL REFERENCES purchase_scenarios(id) ON DELETE CASCADE,
    name           TEXT NOT NULL,
    monthly_amount TEXT NOT NULL,
    sort_order     INTEGER NOT NULL DEFAULT 0,
    created_at     TEXT NOT NULL,
    updated_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bank_configs (
    id               TEXT PRIMARY KEY,
    bank_name        TEXT NOT NULL,
    bank_code        TEXT NOT NULL,
    upload_frequency TEXT NOT NULL DEFAULT 'monthly',
    is_active        INTEGER NOT NULL DEFAULT 1,
    last_upload_at   TEXT,
    created_at       TEXT NOT NULL,
    updated_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS statement_uploads (
    id                 TEXT PRIMARY KEY,
    bank_config_id     TEXT NOT NULL REFERENCES bank_configs(id),
    filename           TEXT NOT NULL,
    uploaded_at        TEXT NOT NULL,
    period_start       TEXT NOT NULL,
    period_end         TEXT NOT NULL,
    total_transactions INTEGER NOT NULL DEFAULT 0,
    matched_count      INTEGER NOT NULL DEFAULT 0,
    unmatched_count    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_categories_group ON categories(group_id);
CREATE INDEX IF NOT EXISTS idx_items_month ON budget_items(budget_month_id);
CREATE INDEX IF NOT EXISTS idx_tx_month ON transactions(budget_month_id);
CREATE INDEX IF NOT EXISTS idx_tx_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_ticks_month ON bill_ticks(budget_month_id);
CREATE INDEX IF NOT EXISTS idx_expenses_scenario ON scenario_expenses(scenario_id);
`
