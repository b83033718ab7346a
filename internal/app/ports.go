package app

import (
	"context"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/importer"
)

type ScheduleUseCase interface {
	GetSchedule(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
	GetEarlyOrders(ctx context.Context, programID string, now *time.Time) (*EarlyOrderResponse, error)
	GetPartSchedule(ctx context.Context, partID string, now *time.Time) (*PartScheduleResponse, error)
}

type ImportResult struct {
	Program   *domain.Program
	GateCount int
	PartCount int
}

type ImportProgramUseCase interface {
	ImportProgram(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProgramFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
