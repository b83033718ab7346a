package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/leadtime/internal/app"
	"github.com/alexanderramin/leadtime/internal/db"
	"github.com/alexanderramin/leadtime/internal/importer"
	"github.com/alexanderramin/leadtime/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService writes each imported program and its parts in one
// transaction.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportProgram(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProgramFromSchema(ctx context.Context, schema *importer.ImportSchema) (*app.ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-program",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if schema == nil {
		return nil, fmt.Errorf("import schema is required")
	}
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	fields["program"] = generated.Program.ShortID
	fields["part_count"] = len(generated.Parts)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		programs := repository.NewSQLiteProgramRepo(tx)
		parts := repository.NewSQLitePartRepo(tx)

		if err := programs.Create(ctx, generated.Program); err != nil {
			return fmt.Errorf("creating program: %w", err)
		}
		for _, p := range generated.Parts {
			if err := parts.Create(ctx, p); err != nil {
				return fmt.Errorf("creating part %q: %w", p.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	gateCount := 0
	for _, g := range generated.Program.Gates {
		if g.Date != nil {
			gateCount++
		}
	}
	return &app.ImportResult{
		Program:   generated.Program,
		GateCount: gateCount,
		PartCount: len(generated.Parts),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
