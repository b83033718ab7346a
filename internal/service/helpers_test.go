package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/leadtime/internal/db"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/repository"
	"github.com/alexanderramin/leadtime/internal/testutil"
)

func setupRepos(t *testing.T) (
	repository.ProgramRepo,
	repository.PartRepo,
	db.UnitOfWork,
	*sql.DB,
) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteProgramRepo(database),
		repository.NewSQLitePartRepo(database),
		testutil.NewTestUoW(database),
		database
}

func seedProgram(t *testing.T, programs repository.ProgramRepo, opts ...testutil.ProgramOption) *domain.Program {
	t.Helper()
	p := testutil.NewTestProgram("Axle Refresh", opts...)
	require.NoError(t, programs.Create(context.Background(), p))
	return p
}

func seedPart(t *testing.T, parts repository.PartRepo, programID string, opts ...testutil.PartOption) *domain.Part {
	t.Helper()
	p := testutil.NewTestPart(programID, opts...)
	require.NoError(t, parts.Create(context.Background(), p))
	return p
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func timePtr(t time.Time) *time.Time { return &t }
