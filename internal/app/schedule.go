package app

import (
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/scheduler"
)

type ScheduleRequest struct {
	ProgramID string
	Now       *time.Time
	Phases    []domain.Phase
	Statuses  []domain.OrderStatus
	Stages    []domain.PartStage
	LateOnly  bool
	EarlyOnly bool
	// IncludeClosed keeps complete and cancelled parts in the result.
	IncludeClosed bool
	// PixelsPerDay > 0 adds bar geometry and a timeline window to the response.
	PixelsPerDay float64
	PadDays      int
}

func NewScheduleRequest(programID string) ScheduleRequest {
	return ScheduleRequest{
		ProgramID:     programID,
		IncludeClosed: true,
		PadDays:       14,
	}
}

type BarView struct {
	StartX              float64 `json:"start_x"`
	OrderSegmentWidth   float64 `json:"order_segment_width"`
	TransitSegmentWidth float64 `json:"transit_segment_width"`
	TotalWidth          float64 `json:"total_width"`
	Opacity             float64 `json:"opacity"`
}

// PhaseScheduleView is the derived order record of one part phase, shaped for
// display.
type PhaseScheduleView struct {
	PartID            string              `json:"part_id"`
	PartCode          string              `json:"part_code"`
	Description       string              `json:"description,omitempty"`
	GroupCode         string              `json:"group_code,omitempty"`
	Stage             domain.PartStage    `json:"stage"`
	Phase             domain.Phase        `json:"phase"`
	Status            domain.OrderStatus  `json:"status"`
	IsLate            bool                `json:"is_late"`
	PlacedLate        bool                `json:"placed_late,omitempty"`
	TargetDate        *string             `json:"target_date,omitempty"`
	OrderByDate       *string             `json:"order_by_date,omitempty"`
	DaysUntilOrderBy  *int                `json:"days_until_order_by,omitempty"`
	BaseDays          int                 `json:"base_days"`
	TransitDays       int                 `json:"transit_days"`
	EffectiveLeadDays int                 `json:"effective_lead_days"`
	BaseSource        string              `json:"base_source"`
	Freight           domain.FreightType  `json:"freight"`
	PONumber          string              `json:"po_number,omitempty"`
	RequestedQty      int                 `json:"requested_qty"`
	ReceivedQty       int                 `json:"received_qty"`
	ReceivedPct       float64             `json:"received_pct"`
	PartialReceipt    bool                `json:"partial_receipt,omitempty"`
	NeedsEarlyOrder   bool                `json:"needs_early_order"`
	PrecedesGate      *domain.GateKey     `json:"precedes_gate,omitempty"`
	Tone              scheduler.Tone      `json:"tone"`
	Bar               *BarView            `json:"bar,omitempty"`
	Warnings          []scheduler.Warning `json:"warnings,omitempty"`
}

type ScheduleSummary struct {
	GeneratedAt      time.Time       `json:"generated_at"`
	ProgramID        string          `json:"program_id"`
	ProgramName      string          `json:"program_name"`
	PartCount        int             `json:"part_count"`
	CountsTotal      int             `json:"counts_total"`
	CountsNoTarget   int             `json:"counts_no_target"`
	CountsNotOrdered int             `json:"counts_not_ordered"`
	CountsOrdered    int             `json:"counts_ordered"`
	CountsReceived   int             `json:"counts_received"`
	CountsLate       int             `json:"counts_late"`
	CountsEarly      int             `json:"counts_early_order"`
	CountsWarnings   int             `json:"counts_warnings"`
	LastReachedGate  *domain.GateKey `json:"last_reached_gate,omitempty"`
}

type GateMarker struct {
	Key   domain.GateKey `json:"key"`
	Label string         `json:"label"`
	Date  string         `json:"date"`
	X     float64        `json:"x"`
}

type TimelineView struct {
	Start        string       `json:"start"`
	End          string       `json:"end"`
	Days         int          `json:"days"`
	PixelsPerDay float64      `json:"pixels_per_day"`
	Width        float64      `json:"width"`
	TodayX       *float64     `json:"today_x,omitempty"`
	Gates        []GateMarker `json:"gates"`
}

type ScheduleResponse struct {
	Summary  ScheduleSummary     `json:"summary"`
	Rows     []PhaseScheduleView `json:"rows"`
	Timeline *TimelineView       `json:"timeline,omitempty"`
	Warnings []string            `json:"warnings,omitempty"`
}

// EarlyOrderView is one part flagged for ordering ahead of its authorizing gate.
type EarlyOrderView struct {
	PartID            string         `json:"part_id"`
	PartCode          string         `json:"part_code"`
	Description       string         `json:"description,omitempty"`
	Phase             domain.Phase   `json:"phase"`
	OrderByDate       string         `json:"order_by_date"`
	PrecedesGate      domain.GateKey `json:"precedes_gate"`
	PrecedesGateLabel string         `json:"precedes_gate_label"`
	AuthorizingGate   domain.GateKey `json:"authorizing_gate"`
	AuthorizingDate   string         `json:"authorizing_date"`
	DaysBeforeGate    int            `json:"days_before_gate"`
	EffectiveLeadDays int            `json:"effective_lead_days"`
	NewSupplier       bool           `json:"new_supplier,omitempty"`
}

type EarlyOrderResponse struct {
	GeneratedAt     time.Time        `json:"generated_at"`
	ProgramID       string           `json:"program_id"`
	ProgramName     string           `json:"program_name"`
	Evaluable       bool             `json:"evaluable"`
	AuthorizingGate *domain.GateKey  `json:"authorizing_gate,omitempty"`
	LastReachedGate *domain.GateKey  `json:"last_reached_gate,omitempty"`
	Items           []EarlyOrderView `json:"items"`
	Warnings        []string         `json:"warnings,omitempty"`
}

type PartScheduleResponse struct {
	GeneratedAt        time.Time                `json:"generated_at"`
	ProgramID          string                   `json:"program_id"`
	PartID             string                   `json:"part_id"`
	PartCode           string                   `json:"part_code"`
	Rows               []PhaseScheduleView      `json:"rows"`
	EarlyOrder         *EarlyOrderView          `json:"early_order,omitempty"`
	TotalProductionQty int                      `json:"total_production_qty"`
	QuantitySource     scheduler.QuantitySource `json:"quantity_source"`
	AirPremiumTotal    string                   `json:"air_premium_total,omitempty"`
	Warnings           []scheduler.Warning      `json:"warnings,omitempty"`
}

type ScheduleErrorCode string

const (
	ScheduleErrInvalidPhase    ScheduleErrorCode = "INVALID_PHASE"
	ScheduleErrProgramNotFound ScheduleErrorCode = "PROGRAM_NOT_FOUND"
	ScheduleErrPartNotFound    ScheduleErrorCode = "PART_NOT_FOUND"
	ScheduleErrInvalidFilter   ScheduleErrorCode = "INVALID_FILTER"
)

type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
}

func (e *ScheduleError) Error() string {
	return string(e.Code) + ": " + e.Message
}
