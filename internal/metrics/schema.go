package metrics

const createMetricsTable = `
CREATE TABLE IF NOT EXISTS performance_metrics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    domain TEXT NOT NULL,
    date TEXT NOT NULL,
    metric_type TEXT NOT NULL,
    value REAL NOT NULL,
    metadata TEXT,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_domain_date ON performance_metrics(domain, date);
CREATE INDEX IF NOT EXISTS idx_metric_type ON performance_metrics(metric_type);
`

const insertMetric = `
INSERT INTO performance_metrics (domain, date, metric_type, value, metadata)
VALUES (?, ?, ?, ?, ?)
`

const selectSeries = `
SELECT metric_type, date, value
FROM performance_metrics
WHERE domain = ? AND date >= ?
ORDER BY date
`
