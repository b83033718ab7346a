package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/leadtime/internal/app"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/repository"
)

type mockPrograms struct {
	mock.Mock
}

func (m *mockPrograms) List(ctx context.Context) ([]*domain.Program, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Program), args.Error(1)
}

func (m *mockPrograms) Resolve(ctx context.Context, ref string) (*domain.Program, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Program), args.Error(1)
}

type mockSchedule struct {
	mock.Mock
}

func (m *mockSchedule) GetSchedule(ctx context.Context, req app.ScheduleRequest) (*app.ScheduleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*app.ScheduleResponse), args.Error(1)
}

func (m *mockSchedule) GetEarlyOrders(ctx context.Context, programID string, now *time.Time) (*app.EarlyOrderResponse, error) {
	args := m.Called(ctx, programID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*app.EarlyOrderResponse), args.Error(1)
}

func (m *mockSchedule) GetPartSchedule(ctx context.Context, partID string, now *time.Time) (*app.PartScheduleResponse, error) {
	args := m.Called(ctx, partID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*app.PartScheduleResponse), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(programs *mockPrograms, schedule *mockSchedule) http.Handler {
	return NewRouter(discardLogger(), Deps{Programs: programs, Schedule: schedule}, RouterConfig{})
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

var axle = &domain.Program{ID: "prog-1", ShortID: "AX100", Name: "Axle Refresh", Gates: domain.NewGateSequence()}

func TestHealthz(t *testing.T) {
	rr := serve(t, newTestRouter(new(mockPrograms), new(mockSchedule)), "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestListPrograms(t *testing.T) {
	programs := new(mockPrograms)
	transfer := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	p := &domain.Program{
		ID: "prog-1", ShortID: "AX100", Name: "Axle Refresh",
		Gates: domain.NewGateSequence(domain.Gate{Key: domain.GateDesignTransfer, Date: &transfer}),
	}
	programs.On("List", mock.Anything).Return([]*domain.Program{p}, nil)

	rr := serve(t, newTestRouter(programs, new(mockSchedule)), "/api/programs")
	require.Equal(t, http.StatusOK, rr.Code)

	var views []ProgramView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "AX100", views[0].ShortID)
	assert.Len(t, views[0].Gates, len(domain.ProgramGateKeys))
	assert.Nil(t, views[0].Gates[0].Date)
	require.NotNil(t, views[0].Gates[3].Date)
	assert.Equal(t, "2025-04-01", *views[0].Gates[3].Date)
	programs.AssertExpectations(t)
}

func TestListPrograms_StoreFailure(t *testing.T) {
	programs := new(mockPrograms)
	programs.On("List", mock.Anything).Return(nil, fmt.Errorf("database is locked"))

	rr := serve(t, newTestRouter(programs, new(mockSchedule)), "/api/programs")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", decodeError(t, rr).Error, "internal details are not leaked")
}

func TestGetSchedule_ParsesQuery(t *testing.T) {
	programs := new(mockPrograms)
	schedule := new(mockSchedule)
	programs.On("Resolve", mock.Anything, "ax100").Return(axle, nil)

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	schedule.On("GetSchedule", mock.Anything, mock.MatchedBy(func(req app.ScheduleRequest) bool {
		return req.ProgramID == "prog-1" &&
			req.Now != nil && req.Now.Equal(now) &&
			assert.ObjectsAreEqual([]domain.Phase{domain.PhaseSprint}, req.Phases) &&
			assert.ObjectsAreEqual([]domain.OrderStatus{domain.OrderNotOrdered, domain.OrderOrdered}, req.Statuses) &&
			req.LateOnly && !req.EarlyOnly && req.IncludeClosed &&
			req.PixelsPerDay == 0
	})).Return(&app.ScheduleResponse{Summary: app.ScheduleSummary{ProgramID: "prog-1", CountsLate: 2}}, nil)

	rr := serve(t, newTestRouter(programs, schedule),
		"/api/programs/ax100/schedule?now=2025-03-01&phase=sprint&status=not_ordered,ordered&late=true")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp app.ScheduleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Summary.CountsLate)
	schedule.AssertExpectations(t)
}

func TestGetTimeline_DefaultsScale(t *testing.T) {
	programs := new(mockPrograms)
	schedule := new(mockSchedule)
	programs.On("Resolve", mock.Anything, "AX100").Return(axle, nil)
	schedule.On("GetSchedule", mock.Anything, mock.MatchedBy(func(req app.ScheduleRequest) bool {
		return req.PixelsPerDay == 4 && req.PadDays == 7
	})).Return(&app.ScheduleResponse{}, nil)

	rr := serve(t, newTestRouter(programs, schedule), "/api/programs/AX100/timeline?pad=7")
	assert.Equal(t, http.StatusOK, rr.Code)
	schedule.AssertExpectations(t)
}

func TestGetSchedule_BadQuery(t *testing.T) {
	programs := new(mockPrograms)
	programs.On("Resolve", mock.Anything, "AX100").Return(axle, nil)

	for _, target := range []string{
		"/api/programs/AX100/schedule?now=03/01/2025",
		"/api/programs/AX100/schedule?late=maybe",
		"/api/programs/AX100/schedule?ppd=wide",
		"/api/programs/AX100/schedule?pad=2.5",
	} {
		t.Run(target, func(t *testing.T) {
			rr := serve(t, newTestRouter(programs, new(mockSchedule)), target)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, string(app.ScheduleErrInvalidFilter), decodeError(t, rr).Code)
		})
	}
}

func TestGetSchedule_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid phase", &app.ScheduleError{Code: app.ScheduleErrInvalidPhase, Message: "unknown phase"}, http.StatusBadRequest, "INVALID_PHASE"},
		{"program gone", &app.ScheduleError{Code: app.ScheduleErrProgramNotFound, Message: "gone"}, http.StatusNotFound, "PROGRAM_NOT_FOUND"},
		{"timeout", fmt.Errorf("loading parts: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			programs := new(mockPrograms)
			schedule := new(mockSchedule)
			programs.On("Resolve", mock.Anything, "AX100").Return(axle, nil)
			schedule.On("GetSchedule", mock.Anything, mock.Anything).Return(nil, tc.err)

			rr := serve(t, newTestRouter(programs, schedule), "/api/programs/AX100/schedule")
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.code, decodeError(t, rr).Code)
		})
	}
}

func TestGetSchedule_UnknownProgram(t *testing.T) {
	programs := new(mockPrograms)
	programs.On("Resolve", mock.Anything, "ZZ999").Return(nil, fmt.Errorf("program %q: %w", "ZZ999", repository.ErrNotFound))

	rr := serve(t, newTestRouter(programs, new(mockSchedule)), "/api/programs/ZZ999/early-orders")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "PROGRAM_NOT_FOUND", decodeError(t, rr).Code)
}

func TestGetEarlyOrders(t *testing.T) {
	programs := new(mockPrograms)
	schedule := new(mockSchedule)
	programs.On("Resolve", mock.Anything, "AX100").Return(axle, nil)
	schedule.On("GetEarlyOrders", mock.Anything, "prog-1", mock.AnythingOfType("*time.Time")).
		Return(&app.EarlyOrderResponse{ProgramID: "prog-1", Evaluable: true, Items: []app.EarlyOrderView{{PartCode: "BRK-100"}}}, nil)

	rr := serve(t, newTestRouter(programs, schedule), "/api/programs/AX100/early-orders?now=2025-03-01")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp app.EarlyOrderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "BRK-100", resp.Items[0].PartCode)
}

func TestGetPartSchedule(t *testing.T) {
	schedule := new(mockSchedule)
	schedule.On("GetPartSchedule", mock.Anything, "part-9", (*time.Time)(nil)).
		Return(&app.PartScheduleResponse{PartID: "part-9", TotalProductionQty: 1042}, nil)
	schedule.On("GetPartSchedule", mock.Anything, "missing", (*time.Time)(nil)).
		Return(nil, &app.ScheduleError{Code: app.ScheduleErrPartNotFound, Message: "part not found"})

	h := newTestRouter(new(mockPrograms), schedule)

	rr := serve(t, h, "/api/parts/part-9/schedule")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp app.PartScheduleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1042, resp.TotalProductionQty)

	rr = serve(t, h, "/api/parts/missing/schedule")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "PART_NOT_FOUND", decodeError(t, rr).Code)
}

func TestCORSPreflight(t *testing.T) {
	h := NewRouter(discardLogger(), Deps{Programs: new(mockPrograms), Schedule: new(mockSchedule)},
		RouterConfig{AllowedOrigins: []string{"http://planner.test"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/programs", nil)
	req.Header.Set("Origin", "http://planner.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "http://planner.test", rr.Header().Get("Access-Control-Allow-Origin"))
}
