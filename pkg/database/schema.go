package database

import (
	"entgo.io/ent/dialect"
)

// schema returns the DDL for the lead service tables. Types differ only in the
// timestamp and money columns.
func schema(name string) []string {
	timestamp, money := "DATETIME", "REAL"
	if name == dialect.Postgres {
		timestamp, money = "TIMESTAMPTZ", "DOUBLE PRECISION"
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS ` + UsersTable + ` (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at ` + timestamp + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + LeadsTable + ` (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(64) NOT NULL DEFAULT '',
			company VARCHAR(255) NOT NULL DEFAULT '',
			job_title VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(32) NOT NULL,
			source VARCHAR(32) NOT NULL,
			value ` + money + ` NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			assigned_to VARCHAR(255) NOT NULL DEFAULT '',
			last_contacted ` + timestamp + `,
			created_at ` + timestamp + ` NOT NULL,
			updated_at ` + timestamp + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS leads_status_idx ON ` + LeadsTable + ` (status)`,
		`CREATE INDEX IF NOT EXISTS leads_source_idx ON ` + LeadsTable + ` (source)`,
		`CREATE INDEX IF NOT EXISTS leads_created_at_idx ON ` + LeadsTable + ` (created_at)`,
	}
}
