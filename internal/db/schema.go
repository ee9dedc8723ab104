package db

// Schema creates the tables erpgrid reads. It is valid for both PostgreSQL
// and SQLite; erpgrid never runs it itself.
const Schema = `
CREATE TABLE IF NOT EXISTS leads (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	company     TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'new',
	owner       TEXT NOT NULL DEFAULT '',
	value       NUMERIC NOT NULL DEFAULT 0,
	created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS approvals (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	kind          TEXT NOT NULL DEFAULT '',
	requester     TEXT NOT NULL DEFAULT '',
	amount        NUMERIC NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'pending',
	submitted_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS employees (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	department   TEXT NOT NULL DEFAULT '',
	designation  TEXT NOT NULL DEFAULT '',
	basic        NUMERIC NOT NULL DEFAULT 0
);
`

// Amounts are cast so both drivers hand back a float64.
const (
	selectLeads = `
	SELECT id, name, company, email, phone, source, status, owner,
	       CAST(value AS DOUBLE PRECISION), created_at
	FROM leads
	ORDER BY id`

	selectApprovals = `
	SELECT id, title, kind, requester, CAST(amount AS DOUBLE PRECISION), status, submitted_at
	FROM approvals
	ORDER BY id`

	selectEmployees = `
	SELECT id, name, department, designation, CAST(basic AS DOUBLE PRECISION)
	FROM employees
	ORDER BY id`
)
