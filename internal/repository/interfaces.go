package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type ProgramRepo interface {
	Create(ctx context.Context, p *domain.Program) error
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Program, error)
	List(ctx context.Context) ([]*domain.Program, error)
	Update(ctx context.Context, p *domain.Program) error
	SetGate(ctx context.Context, programID string, key domain.GateKey, date *time.Time) error
	Delete(ctx context.Context, id string) error
}

type PartRepo interface {
	Create(ctx context.Context, p *domain.Part) error
	GetByID(ctx context.Context, id string) (*domain.Part, error)
	GetByCode(ctx context.Context, programID, code string) (*domain.Part, error)
	ListByProgram(ctx context.Context, programID string) ([]*domain.Part, error)
	Update(ctx context.Context, p *domain.Part) error
	Delete(ctx context.Context, id string) error
}
