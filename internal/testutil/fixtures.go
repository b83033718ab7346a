package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/google/uuid"
)

var (
	testShortIDCounter atomic.Int64
	testPartCounter    atomic.Int64
)

// Date returns midnight UTC of the given calendar day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Program options
type ProgramOption func(*domain.Program)

func WithShortID(id string) ProgramOption {
	return func(p *domain.Program) {
		p.ShortID = id
	}
}

// WithGate dates one gate of the program.
func WithGate(key domain.GateKey, d time.Time) ProgramOption {
	return func(p *domain.Program) {
		p.Gates = p.Gates.With(key, &d)
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n%10000)
}

func NewTestProgram(name string, opts ...ProgramOption) *domain.Program {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Program{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Gates:     domain.NewGateSequence(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Part options
type PartOption func(*domain.Part)

func WithCode(code string) PartOption {
	return func(p *domain.Part) {
		p.Code = code
	}
}

func WithStage(s domain.PartStage) PartOption {
	return func(p *domain.Part) {
		p.Stage = s
	}
}

func WithBaseLeadTime(days int) PartOption {
	return func(p *domain.Part) {
		p.BaseLeadTimeDays = &days
	}
}

func WithLeadTimeWeeks(text string) PartOption {
	return func(p *domain.Part) {
		p.LeadTimeWeeks = text
	}
}

func WithFreight(f domain.FreightType) PartOption {
	return func(p *domain.Part) {
		p.FreightType = f
	}
}

func WithTarget(phase domain.Phase, d time.Time) PartOption {
	return func(p *domain.Part) {
		data, err := p.Phase(phase)
		if err != nil {
			panic(err)
		}
		data.TargetDate = &d
	}
}

func WithPO(phase domain.Phase, number string, d *time.Time) PartOption {
	return func(p *domain.Part) {
		data, err := p.Phase(phase)
		if err != nil {
			panic(err)
		}
		data.PONumber = number
		data.PODate = d
	}
}

func WithReceived(phase domain.Phase) PartOption {
	return func(p *domain.Part) {
		data, err := p.Phase(phase)
		if err != nil {
			panic(err)
		}
		data.Received = true
	}
}

func WithForecast(forecast int, scrap float64) PartOption {
	return func(p *domain.Part) {
		p.PAForecast = &forecast
		p.ScrapRate = &scrap
	}
}

func NewTestPart(programID string, opts ...PartOption) *domain.Part {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Part{
		ID:          uuid.New().String(),
		ProgramID:   programID,
		Code:        fmt.Sprintf("PT-%04d", testPartCounter.Add(1)),
		Stage:       domain.StageProcurement,
		FreightType: domain.FreightSea,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
