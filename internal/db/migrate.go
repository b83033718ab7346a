package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, and
// ADD COLUMN statements that already ran are skipped.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS programs (
		id         TEXT PRIMARY KEY,
		short_id   TEXT NOT NULL,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_programs_short_id ON programs(UPPER(short_id))`,

	`CREATE TABLE IF NOT EXISTS program_gates (
		program_id TEXT NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		gate_key   TEXT NOT NULL
		           CHECK(gate_key IN ('briefed','design-intent','design-approval','design-transfer',
		                              'sprint','design-transfer-line','mass-production','design-transfer-complete')),
		gate_date  TEXT,
		PRIMARY KEY (program_id, gate_key)
	)`,

	`CREATE TABLE IF NOT EXISTS parts (
		id                         TEXT PRIMARY KEY,
		program_id                 TEXT NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		code                       TEXT NOT NULL,
		final_code                 TEXT NOT NULL DEFAULT '',
		description                TEXT NOT NULL DEFAULT '',
		group_code                 TEXT NOT NULL DEFAULT '',
		stage                      TEXT NOT NULL DEFAULT 'added'
		                           CHECK(stage IN ('added','pending','design','engineering','procurement','complete','on_hold','cancelled')),
		sprint_target_date         TEXT,
		sprint_po_number           TEXT NOT NULL DEFAULT '',
		sprint_po_date             TEXT,
		sprint_received            INTEGER NOT NULL DEFAULT 0,
		sprint_received_qty        INTEGER,
		sprint_requested_qty       INTEGER,
		production_target_date     TEXT,
		production_po_number       TEXT NOT NULL DEFAULT '',
		production_po_date         TEXT,
		production_received        INTEGER NOT NULL DEFAULT 0,
		production_received_qty    INTEGER,
		production_requested_qty   INTEGER,
		base_lead_time_days        INTEGER,
		lead_time_weeks            TEXT NOT NULL DEFAULT '',
		freight_type               TEXT NOT NULL DEFAULT 'sea' CHECK(freight_type IN ('','sea','air')),
		sea_freight_days           INTEGER,
		air_freight_days           INTEGER,
		pa_forecast                INTEGER,
		scrap_rate                 REAL,
		mass_production_qty        INTEGER,
		order_together             INTEGER NOT NULL DEFAULT 0,
		new_supplier               INTEGER NOT NULL DEFAULT 0,
		created_at                 TEXT NOT NULL,
		updated_at                 TEXT NOT NULL,
		UNIQUE (program_id, code)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_parts_program ON parts(program_id)`,
	`CREATE INDEX IF NOT EXISTS idx_parts_stage ON parts(stage)`,

	// Columns added after the first release.
	`ALTER TABLE parts ADD COLUMN air_premium TEXT`,
	`ALTER TABLE parts ADD COLUMN color_touchpoint INTEGER NOT NULL DEFAULT 0`,
}
