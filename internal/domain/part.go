package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PhaseData holds the order facts of one phase. Every pointer is optional.
type PhaseData struct {
	TargetDate   *time.Time
	PONumber     string
	PODate       *time.Time
	Received     bool
	ReceivedQty  *int
	RequestedQty *int
}

// HasPO reports whether a purchase-order number has been recorded.
func (d *PhaseData) HasPO() bool {
	return d.PONumber != ""
}

type Part struct {
	ID          string
	ProgramID   string
	Code        string
	FinalCode   string
	Description string
	GroupCode   string
	Stage       PartStage

	Sprint     PhaseData
	Production PhaseData

	// Lead time inputs
	BaseLeadTimeDays *int
	LeadTimeWeeks    string
	FreightType      FreightType
	SeaFreightDays   *int
	AirFreightDays   *int
	AirPremium       decimal.NullDecimal

	// Production quantity inputs
	PAForecast        *int
	ScrapRate         *float64
	MassProductionQty *int

	OrderTogether   bool
	NewSupplier     bool
	ColorTouchpoint bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Phase returns the order facts for phase. An unknown phase is a caller error.
func (p *Part) Phase(phase Phase) (*PhaseData, error) {
	switch phase {
	case PhaseSprint:
		return &p.Sprint, nil
	case PhaseProduction:
		return &p.Production, nil
	default:
		return nil, phase.Validate()
	}
}

// DisplayCode prefers the final code once one has been assigned.
func (p *Part) DisplayCode() string {
	return CoalesceStr(p.FinalCode, p.Code)
}

// Validate checks the fields a stored part must always carry.
func (p *Part) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("part code is required")
	}
	if p.Stage != "" && !ValidPartStages[string(p.Stage)] {
		return fmt.Errorf("invalid stage %q", p.Stage)
	}
	if p.FreightType != "" && !ValidFreightTypes[string(p.FreightType)] {
		return fmt.Errorf("invalid freight type %q (expected sea or air)", p.FreightType)
	}
	return nil
}

// IsClosed reports whether the workflow has finished with the part.
func (p *Part) IsClosed() bool {
	return p.Stage == StageComplete || p.Stage == StageCancelled
}
