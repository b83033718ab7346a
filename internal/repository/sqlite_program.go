package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/leadtime/internal/db"
	"github.com/alexanderramin/leadtime/internal/domain"
)

// SQLiteProgramRepo implements ProgramRepo. Gates live in program_gates, one
// row per known gate.
type SQLiteProgramRepo struct {
	db db.DBTX
}

func NewSQLiteProgramRepo(conn db.DBTX) *SQLiteProgramRepo {
	return &SQLiteProgramRepo{db: conn}
}

const programColumns = `id, short_id, name, created_at, updated_at`

func (r *SQLiteProgramRepo) Create(ctx context.Context, p *domain.Program) error {
	query := `INSERT INTO programs (` + programColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		p.Name,
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting program: %w", err)
	}
	for _, g := range p.Gates {
		if err := r.SetGate(ctx, p.ID, g.Key, g.Date); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteProgramRepo) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+programColumns+` FROM programs WHERE id = ?`, id)
	p, err := scanProgram(row)
	if err != nil {
		return nil, wrapNotFound(err, "program", id)
	}
	return r.withGates(ctx, p)
}

func (r *SQLiteProgramRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Program, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+programColumns+` FROM programs WHERE UPPER(short_id) = UPPER(?)`, shortID)
	p, err := scanProgram(row)
	if err != nil {
		return nil, wrapNotFound(err, "program", shortID)
	}
	return r.withGates(ctx, p)
}

func (r *SQLiteProgramRepo) List(ctx context.Context) ([]*domain.Program, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+programColumns+` FROM programs ORDER BY short_id`)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var programs []*domain.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating programs: %w", err)
	}

	gatesByProgram, err := r.loadAllGates(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range programs {
		p.Gates = domain.NewGateSequence(gatesByProgram[p.ID]...)
	}
	return programs, nil
}

func (r *SQLiteProgramRepo) Update(ctx context.Context, p *domain.Program) error {
	res, err := r.db.ExecContext(ctx, `UPDATE programs SET short_id = ?, name = ?, updated_at = ? WHERE id = ?`,
		p.ShortID, p.Name, formatTimestamp(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("updating program: %w", err)
	}
	return requireAffected(res, "program", p.ID)
}

// SetGate records (or clears, with a nil date) one gate of a program.
func (r *SQLiteProgramRepo) SetGate(ctx context.Context, programID string, key domain.GateKey, date *time.Time) error {
	query := `INSERT INTO program_gates (program_id, gate_key, gate_date) VALUES (?, ?, ?)
		ON CONFLICT (program_id, gate_key) DO UPDATE SET gate_date = excluded.gate_date`
	if _, err := r.db.ExecContext(ctx, query, programID, string(key), nullableTimeToString(date, dateLayout)); err != nil {
		return fmt.Errorf("setting gate %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteProgramRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	return requireAffected(res, "program", id)
}

func (r *SQLiteProgramRepo) withGates(ctx context.Context, p *domain.Program) (*domain.Program, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT gate_key, gate_date FROM program_gates WHERE program_id = ?`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("loading gates: %w", err)
	}
	defer rows.Close()

	var gates []domain.Gate
	for rows.Next() {
		var key string
		var date sql.NullString
		if err := rows.Scan(&key, &date); err != nil {
			return nil, fmt.Errorf("scanning gate: %w", err)
		}
		gates = append(gates, domain.Gate{Key: domain.GateKey(key), Date: parseNullableTime(date, dateLayout)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gates: %w", err)
	}
	p.Gates = domain.NewGateSequence(gates...)
	return p, nil
}

func (r *SQLiteProgramRepo) loadAllGates(ctx context.Context) (map[string][]domain.Gate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT program_id, gate_key, gate_date FROM program_gates`)
	if err != nil {
		return nil, fmt.Errorf("loading gates: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Gate)
	for rows.Next() {
		var programID, key string
		var date sql.NullString
		if err := rows.Scan(&programID, &key, &date); err != nil {
			return nil, fmt.Errorf("scanning gate: %w", err)
		}
		out[programID] = append(out[programID], domain.Gate{Key: domain.GateKey(key), Date: parseNullableTime(date, dateLayout)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gates: %w", err)
	}
	return out, nil
}

func scanProgram(s rowScanner) (*domain.Program, error) {
	var p domain.Program
	var createdAt, updatedAt string
	if err := s.Scan(&p.ID, &p.ShortID, &p.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func wrapNotFound(err error, kind, key string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", kind, err)
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return nil
}
