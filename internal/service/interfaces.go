package service

import (
	"context"
	"time"

	"github.com/alexanderramin/leadtime/internal/app"
	"github.com/alexanderramin/leadtime/internal/domain"
)

type ProgramService interface {
	Create(ctx context.Context, p *domain.Program) error
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	// Resolve accepts a short ID, a full UUID, or an unambiguous UUID prefix.
	Resolve(ctx context.Context, ref string) (*domain.Program, error)
	List(ctx context.Context) ([]*domain.Program, error)
	Update(ctx context.Context, p *domain.Program) error
	SetGate(ctx context.Context, programID string, key domain.GateKey, date *time.Time) error
	Delete(ctx context.Context, id string) error
}

type PartService interface {
	Create(ctx context.Context, p *domain.Part) error
	GetByID(ctx context.Context, id string) (*domain.Part, error)
	// Resolve accepts a part code (or final code) within the program, or a part ID.
	Resolve(ctx context.Context, programID, ref string) (*domain.Part, error)
	ListByProgram(ctx context.Context, programID string) ([]*domain.Part, error)
	Update(ctx context.Context, p *domain.Part) error
	SetPhase(ctx context.Context, partID string, phase domain.Phase, upd PhaseUpdate) (*domain.Part, error)
	Delete(ctx context.Context, id string) error
}

// PhaseUpdate changes the order facts of one phase. Nil fields are left as
// they are; the Clear flags remove a value.
type PhaseUpdate struct {
	TargetDate   *time.Time
	ClearTarget  bool
	PONumber     *string
	PODate       *time.Time
	ClearPODate  bool
	Received     *bool
	ReceivedQty  *int
	RequestedQty *int
}

func (u PhaseUpdate) apply(d *domain.PhaseData) {
	switch {
	case u.ClearTarget:
		d.TargetDate = nil
	case u.TargetDate != nil:
		t := domain.DateOnly(*u.TargetDate)
		d.TargetDate = &t
	}
	if u.PONumber != nil {
		d.PONumber = *u.PONumber
	}
	switch {
	case u.ClearPODate:
		d.PODate = nil
	case u.PODate != nil:
		t := domain.DateOnly(*u.PODate)
		d.PODate = &t
	}
	if u.Received != nil {
		d.Received = *u.Received
	}
	if u.ReceivedQty != nil {
		d.ReceivedQty = domain.IntPtr(*u.ReceivedQty)
	}
	if u.RequestedQty != nil {
		d.RequestedQty = domain.IntPtr(*u.RequestedQty)
	}
}

type ScheduleService = app.ScheduleUseCase

type ImportService = app.ImportProgramUseCase
