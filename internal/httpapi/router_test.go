package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/leadtime/internal/app"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/repository"
	"github.com/alexanderramin/leadtime/internal/scheduler"
	"github.com/alexanderramin/leadtime/internal/service"
	"github.com/alexanderramin/leadtime/internal/testutil"
)

func TestRouter_EndToEnd(t *testing.T) {
	database := testutil.NewTestDB(t)
	programs := repository.NewSQLiteProgramRepo(database)
	parts := repository.NewSQLitePartRepo(database)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	prog := testutil.NewTestProgram("Axle", testutil.WithShortID("AX100"),
		testutil.WithGate(domain.GateDesignTransfer, testutil.Date(2025, 4, 1)))
	require.NoError(t, programs.Create(ctx, prog))
	part := testutil.NewTestPart(prog.ID,
		testutil.WithCode("BRK-100"),
		testutil.WithBaseLeadTime(45),
		testutil.WithTarget(domain.PhaseSprint, testutil.Date(2025, 5, 1)))
	require.NoError(t, parts.Create(ctx, part))

	h := NewRouter(discardLogger(), Deps{
		Programs: service.NewProgramService(programs, uow),
		Schedule: service.NewScheduleService(programs, parts, scheduler.DefaultPolicy(), discardLogger()),
	}, RouterConfig{})

	rr := serve(t, h, "/api/programs/ax100/schedule?now=2025-03-01&phase=sprint")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var sched app.ScheduleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sched))
	require.Len(t, sched.Rows, 1)
	assert.Equal(t, "2025-02-10", *sched.Rows[0].OrderByDate)
	assert.True(t, sched.Rows[0].IsLate)
	assert.Equal(t, 1, sched.Summary.CountsEarly)

	rr = serve(t, h, "/api/programs/AX100/timeline?now=2025-03-01&pad=0")
	require.Equal(t, http.StatusOK, rr.Code)
	var tl app.ScheduleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tl))
	require.NotNil(t, tl.Timeline)
	assert.Equal(t, "2025-02-10", tl.Timeline.Start)
	require.NotNil(t, tl.Rows[0].Bar)

	rr = serve(t, h, "/api/programs/AX100/early-orders?now=2025-03-01")
	require.Equal(t, http.StatusOK, rr.Code)
	var early app.EarlyOrderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &early))
	require.Len(t, early.Items, 1)
	assert.Equal(t, domain.GateDesignTransfer, early.Items[0].PrecedesGate)

	rr = serve(t, h, "/api/parts/"+part.ID+"/schedule?now=2025-03-01")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, h, "/api/programs/AX100/schedule?phase=pilot")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_PHASE", decodeError(t, rr).Code)
}
