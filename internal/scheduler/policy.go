package scheduler

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/leadtime/internal/domain"
)

var (
	// ErrInvalidPhase is returned when a caller asks for a phase other than
	// sprint or production.
	ErrInvalidPhase = errors.New("invalid phase")
	// ErrInvalidScale is returned for a non-positive pixels-per-day scale.
	ErrInvalidScale = errors.New("pixels per day must be positive")
	// ErrNilPart is returned when no part snapshot is supplied.
	ErrNilPart = errors.New("part is required")
)

// Policy carries the documented defaults the engine falls back to when part
// data is missing. The zero value is not useful; start from DefaultPolicy.
type Policy struct {
	DefaultBaseDays int
	SeaFreightDays  int
	AirFreightDays  int
	// MaxScrapRate replaces scrap rates of 1 or more so the forecast multiplier stays finite.
	MaxScrapRate    float64
	AuthorizingGate domain.GateKey
	MinSegmentPx    float64
	// Workers bounds concurrent part evaluation in batch use-cases.
	Workers int
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultBaseDays: 30,
		SeaFreightDays:  35,
		AirFreightDays:  5,
		MaxScrapRate:    0.99,
		AuthorizingGate: domain.GateDesignTransfer,
		MinSegmentPx:    4,
		Workers:         8,
	}
}

// Validate rejects policies the engine cannot evaluate with.
func (pol Policy) Validate() error {
	if pol.DefaultBaseDays < 0 || pol.SeaFreightDays < 0 || pol.AirFreightDays < 0 {
		return fmt.Errorf("policy day defaults must not be negative")
	}
	if pol.MaxScrapRate < 0 || pol.MaxScrapRate >= 1 {
		return fmt.Errorf("max scrap rate %v must be in [0, 1)", pol.MaxScrapRate)
	}
	if pol.AuthorizingGate.Rank() < 0 {
		return fmt.Errorf("unknown authorizing gate %q", pol.AuthorizingGate)
	}
	if pol.MinSegmentPx < 0 {
		return fmt.Errorf("minimum segment width must not be negative")
	}
	return nil
}

type WarningCode string

const (
	WarnMissingInput     WarningCode = "MISSING_INPUT"
	WarnInvalidRange     WarningCode = "INVALID_RANGE"
	WarnUnresolvableRisk WarningCode = "UNRESOLVABLE_RISK"
)

// Warning reports a data condition the engine resolved with a default or a
// clamp. Warnings never stop evaluation.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func warnf(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

func checkPhase(p *domain.Part, phase domain.Phase) (*domain.PhaseData, error) {
	if p == nil {
		return nil, ErrNilPart
	}
	data, err := p.Phase(phase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhase, err)
	}
	return data, nil
}
