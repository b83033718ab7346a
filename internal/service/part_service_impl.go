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

type partService struct {
	parts repository.PartRepo
	uow   db.UnitOfWork
}

func NewPartService(parts repository.PartRepo, uow db.UnitOfWork) PartService {
	return &partService{parts: parts, uow: uow}
}

func (s *partService) Create(ctx context.Context, p *domain.Part) error {
	p.Code = strings.TrimSpace(p.Code)
	if p.ProgramID == "" {
		return fmt.Errorf("part must belong to a program")
	}
	if p.Stage == "" {
		p.Stage = domain.StageAdded
	}
	if p.FreightType == "" {
		p.FreightType = domain.FreightSea
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.parts.Create(ctx, p)
}

func (s *partService) GetByID(ctx context.Context, id string) (*domain.Part, error) {
	return s.parts.GetByID(ctx, id)
}

func (s *partService) Resolve(ctx context.Context, programID, ref string) (*domain.Part, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("part code is required")
	}
	p, err := s.parts.GetByCode(ctx, programID, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	p, err = s.parts.GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if programID != "" && p.ProgramID != programID {
		return nil, fmt.Errorf("part %q: %w", ref, repository.ErrNotFound)
	}
	return p, nil
}

func (s *partService) ListByProgram(ctx context.Context, programID string) ([]*domain.Part, error) {
	return s.parts.ListByProgram(ctx, programID)
}

func (s *partService) Update(ctx context.Context, p *domain.Part) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.parts.Update(ctx, p)
}

// SetPhase applies upd to one phase of the part in a single transaction and
// returns the stored result.
func (s *partService) SetPhase(ctx context.Context, partID string, phase domain.Phase, upd PhaseUpdate) (*domain.Part, error) {
	if err := phase.Validate(); err != nil {
		return nil, err
	}
	var updated *domain.Part
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		parts := repository.NewSQLitePartRepo(tx)
		p, err := parts.GetByID(ctx, partID)
		if err != nil {
			return err
		}
		data, err := p.Phase(phase)
		if err != nil {
			return err
		}
		upd.apply(data)
		if data.PODate != nil && !data.HasPO() {
			return fmt.Errorf("%s PO date requires a PO number", phase)
		}
		if data.ReceivedQty != nil && *data.ReceivedQty < 0 {
			return fmt.Errorf("%s received quantity must not be negative", phase)
		}
		if data.RequestedQty != nil && *data.RequestedQty < 0 {
			return fmt.Errorf("%s requested quantity must not be negative", phase)
		}
		p.UpdatedAt = time.Now().UTC()
		if err := parts.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *partService) Delete(ctx context.Context, id string) error {
	return s.parts.Delete(ctx, id)
}
