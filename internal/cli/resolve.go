package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/leadtime/internal/domain"
)

// resolveProgram accepts a short ID, a UUID, or a unique UUID prefix.
func resolveProgram(ctx context.Context, app *App, ref string) (*domain.Program, error) {
	if ref == "" {
		return nil, fmt.Errorf("program ID is required")
	}
	return app.Programs.Resolve(ctx, ref)
}

// resolvePart finds a part by code, final code, or ID inside the program.
func resolvePart(ctx context.Context, app *App, programRef, partRef string) (*domain.Program, *domain.Part, error) {
	program, err := resolveProgram(ctx, app, programRef)
	if err != nil {
		return nil, nil, err
	}
	part, err := app.Parts.Resolve(ctx, program.ID, partRef)
	if err != nil {
		return nil, nil, err
	}
	return program, part, nil
}
