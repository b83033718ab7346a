package contract

import "github.com/alexanderramin/leadtime/internal/app"

type ScheduleRequest = app.ScheduleRequest

func NewScheduleRequest(programID string) ScheduleRequest {
	return app.NewScheduleRequest(programID)
}

type PhaseScheduleView = app.PhaseScheduleView

type BarView = app.BarView

type ScheduleSummary = app.ScheduleSummary

type GateMarker = app.GateMarker

type TimelineView = app.TimelineView

type ScheduleResponse = app.ScheduleResponse

type EarlyOrderView = app.EarlyOrderView

type EarlyOrderResponse = app.EarlyOrderResponse

type PartScheduleResponse = app.PartScheduleResponse

type ScheduleErrorCode = app.ScheduleErrorCode

const (
	ScheduleErrInvalidPhase    ScheduleErrorCode = app.ScheduleErrInvalidPhase
	ScheduleErrProgramNotFound ScheduleErrorCode = app.ScheduleErrProgramNotFound
	ScheduleErrPartNotFound    ScheduleErrorCode = app.ScheduleErrPartNotFound
	ScheduleErrInvalidFilter   ScheduleErrorCode = app.ScheduleErrInvalidFilter
)

type ScheduleError = app.ScheduleError

type ImportResult = app.ImportResult
