package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/leadtime/internal/db"
	"github.com/alexanderramin/leadtime/internal/domain"
)

// SQLitePartRepo implements PartRepo. Each phase is flattened into
// sprint_* and production_* columns.
type SQLitePartRepo struct {
	db db.DBTX
}

func NewSQLitePartRepo(conn db.DBTX) *SQLitePartRepo {
	return &SQLitePartRepo{db: conn}
}

const partColumns = `id, program_id, code, final_code, description, group_code, stage,
	sprint_target_date, sprint_po_number, sprint_po_date, sprint_received, sprint_received_qty, sprint_requested_qty,
	production_target_date, production_po_number, production_po_date, production_received, production_received_qty, production_requested_qty,
	base_lead_time_days, lead_time_weeks, freight_type, sea_freight_days, air_freight_days, air_premium,
	pa_forecast, scrap_rate, mass_production_qty,
	order_together, new_supplier, color_touchpoint,
	created_at, updated_at`

func (r *SQLitePartRepo) Create(ctx context.Context, p *domain.Part) error {
	query := `INSERT INTO parts (` + partColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := append([]any{p.ID, p.ProgramID}, partValues(p)...)
	args = append(args, formatTimestamp(p.CreatedAt), formatTimestamp(p.UpdatedAt))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting part: %w", err)
	}
	return nil
}

func (r *SQLitePartRepo) GetByID(ctx context.Context, id string) (*domain.Part, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+partColumns+` FROM parts WHERE id = ?`, id)
	p, err := scanPart(row)
	if err != nil {
		return nil, wrapNotFound(err, "part", id)
	}
	return p, nil
}

func (r *SQLitePartRepo) GetByCode(ctx context.Context, programID, code string) (*domain.Part, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+partColumns+` FROM parts WHERE program_id = ? AND (UPPER(code) = UPPER(?) OR UPPER(final_code) = UPPER(?))
		ORDER BY CASE WHEN UPPER(code) = UPPER(?) THEN 0 ELSE 1 END LIMIT 1`,
		programID, code, code, code)
	p, err := scanPart(row)
	if err != nil {
		return nil, wrapNotFound(err, "part", code)
	}
	return p, nil
}

func (r *SQLitePartRepo) ListByProgram(ctx context.Context, programID string) ([]*domain.Part, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+partColumns+` FROM parts WHERE program_id = ? ORDER BY code`, programID)
	if err != nil {
		return nil, fmt.Errorf("listing parts: %w", err)
	}
	defer rows.Close()

	var parts []*domain.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning part row: %w", err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parts: %w", err)
	}
	return parts, nil
}

func (r *SQLitePartRepo) Update(ctx context.Context, p *domain.Part) error {
	query := `UPDATE parts SET code = ?, final_code = ?, description = ?, group_code = ?, stage = ?,
		sprint_target_date = ?, sprint_po_number = ?, sprint_po_date = ?, sprint_received = ?, sprint_received_qty = ?, sprint_requested_qty = ?,
		production_target_date = ?, production_po_number = ?, production_po_date = ?, production_received = ?, production_received_qty = ?, production_requested_qty = ?,
		base_lead_time_days = ?, lead_time_weeks = ?, freight_type = ?, sea_freight_days = ?, air_freight_days = ?, air_premium = ?,
		pa_forecast = ?, scrap_rate = ?, mass_production_qty = ?,
		order_together = ?, new_supplier = ?, color_touchpoint = ?,
		updated_at = ?
		WHERE id = ?`
	args := append(partValues(p), formatTimestamp(p.UpdatedAt), p.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating part: %w", err)
	}
	return requireAffected(res, "part", p.ID)
}

func (r *SQLitePartRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting part: %w", err)
	}
	return requireAffected(res, "part", id)
}

// partValues returns the mutable columns in partColumns order, from code to
// color_touchpoint.
func partValues(p *domain.Part) []any {
	vals := []any{p.Code, p.FinalCode, p.Description, p.GroupCode, string(p.Stage)}
	vals = append(vals, phaseValues(&p.Sprint)...)
	vals = append(vals, phaseValues(&p.Production)...)
	return append(vals,
		nullableIntToValue(p.BaseLeadTimeDays),
		p.LeadTimeWeeks,
		string(p.FreightType),
		nullableIntToValue(p.SeaFreightDays),
		nullableIntToValue(p.AirFreightDays),
		p.AirPremium,
		nullableIntToValue(p.PAForecast),
		nullableFloatToValue(p.ScrapRate),
		nullableIntToValue(p.MassProductionQty),
		boolToInt(p.OrderTogether),
		boolToInt(p.NewSupplier),
		boolToInt(p.ColorTouchpoint),
	)
}

func phaseValues(d *domain.PhaseData) []any {
	return []any{
		nullableTimeToString(d.TargetDate, dateLayout),
		d.PONumber,
		nullableTimeToString(d.PODate, dateLayout),
		boolToInt(d.Received),
		nullableIntToValue(d.ReceivedQty),
		nullableIntToValue(d.RequestedQty),
	}
}

type phaseRow struct {
	target, poDate         sql.NullString
	received               int
	receivedQty, requested sql.NullInt64
}

func (pr *phaseRow) into(d *domain.PhaseData) {
	d.TargetDate = parseNullableTime(pr.target, dateLayout)
	d.PODate = parseNullableTime(pr.poDate, dateLayout)
	d.Received = intToBool(pr.received)
	d.ReceivedQty = nullIntPtr(pr.receivedQty)
	d.RequestedQty = nullIntPtr(pr.requested)
}

func scanPart(s rowScanner) (*domain.Part, error) {
	var (
		p                                    domain.Part
		stage, freight, createdAt, updatedAt string
		sprint, production                   phaseRow
		baseDays, seaDays, airDays           sql.NullInt64
		forecast, massQty                    sql.NullInt64
		scrap                                sql.NullFloat64
		orderTogether, newSupplier, touch    int
	)
	err := s.Scan(
		&p.ID, &p.ProgramID, &p.Code, &p.FinalCode, &p.Description, &p.GroupCode, &stage,
		&sprint.target, &p.Sprint.PONumber, &sprint.poDate, &sprint.received, &sprint.receivedQty, &sprint.requested,
		&production.target, &p.Production.PONumber, &production.poDate, &production.received, &production.receivedQty, &production.requested,
		&baseDays, &p.LeadTimeWeeks, &freight, &seaDays, &airDays, &p.AirPremium,
		&forecast, &scrap, &massQty,
		&orderTogether, &newSupplier, &touch,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Stage = domain.PartStage(stage)
	p.FreightType = domain.FreightType(freight)
	sprint.into(&p.Sprint)
	production.into(&p.Production)
	p.BaseLeadTimeDays = nullIntPtr(baseDays)
	p.SeaFreightDays = nullIntPtr(seaDays)
	p.AirFreightDays = nullIntPtr(airDays)
	p.PAForecast = nullIntPtr(forecast)
	p.ScrapRate = nullFloatPtr(scrap)
	p.MassProductionQty = nullIntPtr(massQty)
	p.OrderTogether = intToBool(orderTogether)
	p.NewSupplier = intToBool(newSupplier)
	p.ColorTouchpoint = intToBool(touch)

	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
