package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"programs", "program_gates", "parts"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_programs_short_id", "idx_parts_program", "idx_parts_stage"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_GateKeyConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO programs (id, short_id, name, created_at, updated_at) VALUES ('p1', 'AX10', 'Axle', 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO program_gates (program_id, gate_key) VALUES ('p1', 'design-transfer')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO program_gates (program_id, gate_key) VALUES ('p1', 'kickoff')`)
	assert.Error(t, err, "unknown gate keys are rejected")
}

// TestMigrate_UpgradeAddsLateColumns opens a store created before the air
// premium and colour touchpoint columns existed and checks rows survive.
func TestMigrate_UpgradeAddsLateColumns(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE programs (id TEXT PRIMARY KEY, short_id TEXT NOT NULL, name TEXT NOT NULL, created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`,
		`CREATE TABLE parts (
			id TEXT PRIMARY KEY, program_id TEXT NOT NULL, code TEXT NOT NULL,
			final_code TEXT NOT NULL DEFAULT '', description TEXT NOT NULL DEFAULT '', group_code TEXT NOT NULL DEFAULT '',
			stage TEXT NOT NULL DEFAULT 'added',
			sprint_target_date TEXT, sprint_po_number TEXT NOT NULL DEFAULT '', sprint_po_date TEXT,
			sprint_received INTEGER NOT NULL DEFAULT 0, sprint_received_qty INTEGER, sprint_requested_qty INTEGER,
			production_target_date TEXT, production_po_number TEXT NOT NULL DEFAULT '', production_po_date TEXT,
			production_received INTEGER NOT NULL DEFAULT 0, production_received_qty INTEGER, production_requested_qty INTEGER,
			base_lead_time_days INTEGER, lead_time_weeks TEXT NOT NULL DEFAULT '', freight_type TEXT NOT NULL DEFAULT 'sea',
			sea_freight_days INTEGER, air_freight_days INTEGER, pa_forecast INTEGER, scrap_rate REAL, mass_production_qty INTEGER,
			order_together INTEGER NOT NULL DEFAULT 0, new_supplier INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL, updated_at TEXT NOT NULL
		)`,
		`INSERT INTO programs VALUES ('p1', 'AX10', 'Axle', 'x', 'x')`,
		`INSERT INTO parts (id, program_id, code, base_lead_time_days, created_at, updated_at) VALUES ('part1', 'p1', 'BRK-1', 45, 'x', 'x')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var code string
	var base int
	var premium sql.NullString
	var touch int
	err = db.QueryRow(`SELECT code, base_lead_time_days, air_premium, color_touchpoint FROM parts WHERE id = 'part1'`).
		Scan(&code, &base, &premium, &touch)
	require.NoError(t, err)
	assert.Equal(t, "BRK-1", code)
	assert.Equal(t, 45, base)
	assert.False(t, premium.Valid)
	assert.Equal(t, 0, touch)
}
