package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/repository"
	"github.com/alexanderramin/leadtime/internal/testutil"
)

func TestPartService_Create_Defaults(t *testing.T) {
	programs, parts, uow, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewPartService(parts, uow)
	prog := seedProgram(t, programs)

	p := &domain.Part{ProgramID: prog.ID, Code: " BRK-100 "}
	require.NoError(t, svc.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "BRK-100", p.Code)
	assert.Equal(t, domain.StageAdded, p.Stage)
	assert.Equal(t, domain.FreightSea, p.FreightType)

	fetched, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "BRK-100", fetched.Code)
}

func TestPartService_Create_Invalid(t *testing.T) {
	programs, parts, uow, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewPartService(parts, uow)
	prog := seedProgram(t, programs)

	assert.Error(t, svc.Create(ctx, &domain.Part{Code: "X-1"}), "program is required")
	assert.Error(t, svc.Create(ctx, &domain.Part{ProgramID: prog.ID}), "code is required")
	assert.Error(t, svc.Create(ctx, &domain.Part{ProgramID: prog.ID, Code: "X-2", FreightType: "rail"}))
	assert.Error(t, svc.Create(ctx, &domain.Part{ProgramID: prog.ID, Code: "X-3", Stage: "shipped"}))
}

func TestPartService_Resolve(t *testing.T) {
	programs, parts, uow, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewPartService(parts, uow)
	prog := seedProgram(t, programs)
	other := seedProgram(t, programs)

	p := testutil.NewTestPart(prog.ID, testutil.WithCode("BRK-100"))
	p.FinalCode = "BRK-100-F"
	require.NoError(t, parts.Create(ctx, p))
	foreign := seedPart(t, parts, other.ID, testutil.WithCode("CAM-1"))

	got, err := svc.Resolve(ctx, prog.ID, "brk-100")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	got, err = svc.Resolve(ctx, prog.ID, "BRK-100-F")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID, "final code resolves")

	got, err = svc.Resolve(ctx, prog.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.Resolve(ctx, prog.ID, foreign.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "parts of another program do not resolve")
}

func TestPartService_SetPhase(t *testing.T) {
	programs, parts, uow, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewPartService(parts, uow)
	prog := seedProgram(t, programs)
	p := seedPart(t, parts, prog.ID)

	po := "PO-881"
	updated, err := svc.SetPhase(ctx, p.ID, domain.PhaseSprint, PhaseUpdate{
		TargetDate:   timePtr(testutil.Date(2025, 5, 1)),
		PONumber:     &po,
		PODate:       timePtr(testutil.Date(2025, 2, 1)),
		RequestedQty: domain.IntPtr(50),
		ReceivedQty:  domain.IntPtr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "PO-881", updated.Sprint.PONumber)

	fetched, err := parts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Sprint.TargetDate)
	assert.Equal(t, testutil.Date(2025, 5, 1), *fetched.Sprint.TargetDate)
	assert.Equal(t, 50, *fetched.Sprint.RequestedQty)
	assert.Equal(t, 20, *fetched.Sprint.ReceivedQty)
	assert.Nil(t, fetched.Production.TargetDate, "other phase untouched")

	_, err = svc.SetPhase(ctx, p.ID, domain.PhaseSprint, PhaseUpdate{ClearTarget: true, Received: boolPtr(true)})
	require.NoError(t, err)
	fetched, err = parts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Sprint.TargetDate)
	assert.True(t, fetched.Sprint.Received)
	assert.Equal(t, "PO-881", fetched.Sprint.PONumber, "unset fields are kept")
}

func TestPartService_SetPhase_Rejected(t *testing.T) {
	programs, parts, uow, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewPartService(parts, uow)
	prog := seedProgram(t, programs)
	p := seedPart(t, parts, prog.ID)

	_, err := svc.SetPhase(ctx, p.ID, domain.Phase("pilot"), PhaseUpdate{})
	assert.Error(t, err)

	_, err = svc.SetPhase(ctx, p.ID, domain.PhaseProduction, PhaseUpdate{
		TargetDate: timePtr(testutil.Date(2025, 9, 1)),
		PODate:     timePtr(testutil.Date(2025, 6, 1)),
	})
	assert.ErrorContains(t, err, "PO number")

	fetched, err := parts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Production.TargetDate, "rejected update leaves the part unchanged")

	_, err = svc.SetPhase(ctx, "missing", domain.PhaseSprint, PhaseUpdate{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPartService_Delete(t *testing.T) {
	programs, parts, uow, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewPartService(parts, uow)
	prog := seedProgram(t, programs)
	p := seedPart(t, parts, prog.ID)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), repository.ErrNotFound)
}

func boolPtr(b bool) *bool { return &b }
