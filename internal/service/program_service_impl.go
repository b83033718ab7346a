package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/leadtime/internal/db"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/repository"
)

type programService struct {
	programs repository.ProgramRepo
	uow      db.UnitOfWork
}

func NewProgramService(programs repository.ProgramRepo, uow db.UnitOfWork) ProgramService {
	return &programService{programs: programs, uow: uow}
}

func (s *programService) Create(ctx context.Context, p *domain.Program) error {
	p.ShortID = strings.ToUpper(strings.TrimSpace(p.ShortID))
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("program name is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Gates = domain.NewGateSequence(p.Gates...)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProgramRepo(tx).Create(ctx, p)
	})
}

func (s *programService) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	return s.programs.GetByID(ctx, id)
}

func (s *programService) Resolve(ctx context.Context, ref string) (*domain.Program, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("program ID is required")
	}

	p, err := s.programs.GetByShortID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	programs, err := s.programs.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range programs {
		if p.ID == ref {
			return p, nil
		}
	}

	var matches []*domain.Program
	for _, p := range programs {
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("program %q: %w", ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("program ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func (s *programService) List(ctx context.Context) ([]*domain.Program, error) {
	return s.programs.List(ctx)
}

func (s *programService) Update(ctx context.Context, p *domain.Program) error {
	p.ShortID = strings.ToUpper(strings.TrimSpace(p.ShortID))
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.programs.Update(ctx, p)
}

// SetGate records a gate date, or clears it when date is nil.
func (s *programService) SetGate(ctx context.Context, programID string, key domain.GateKey, date *time.Time) error {
	if _, err := domain.ParseGateKey(string(key)); err != nil {
		return err
	}
	if date != nil {
		d := domain.DateOnly(*date)
		date = &d
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		programs := repository.NewSQLiteProgramRepo(tx)
		p, err := programs.GetByID(ctx, programID)
		if err != nil {
			return err
		}
		if err := programs.SetGate(ctx, p.ID, key, date); err != nil {
			return err
		}
		p.UpdatedAt = time.Now().UTC()
		return programs.Update(ctx, p)
	})
}

func (s *programService) Delete(ctx context.Context, id string) error {
	return s.programs.Delete(ctx, id)
}
