package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/alexanderramin/leadtime/internal/app"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/repository"
)

type ProgramFinder interface {
	List(ctx context.Context) ([]*domain.Program, error)
	Resolve(ctx context.Context, ref string) (*domain.Program, error)
}

type ScheduleReader interface {
	GetSchedule(ctx context.Context, req app.ScheduleRequest) (*app.ScheduleResponse, error)
	GetEarlyOrders(ctx context.Context, programID string, now *time.Time) (*app.EarlyOrderResponse, error)
	GetPartSchedule(ctx context.Context, partID string, now *time.Time) (*app.PartScheduleResponse, error)
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type GateView struct {
	Key   domain.GateKey `json:"key"`
	Label string         `json:"label"`
	Date  *string        `json:"date"`
}

type ProgramView struct {
	ID      string     `json:"id"`
	ShortID string     `json:"short_id"`
	Name    string     `json:"name"`
	Gates   []GateView `json:"gates"`
}

func Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

func ListPrograms(log *slog.Logger, programs ProgramFinder, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.ListPrograms"

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		list, err := programs.List(ctx)
		if err != nil {
			writeError(w, r, log.With(slog.String("op", op)), err)
			return
		}

		views := make([]ProgramView, 0, len(list))
		for _, p := range list {
			views = append(views, toProgramView(p))
		}
		render.JSON(w, r, views)
	}
}

func GetSchedule(log *slog.Logger, programs ProgramFinder, schedule ScheduleReader, timeout time.Duration) http.HandlerFunc {
	return scheduleHandler("httpapi.GetSchedule", log, programs, schedule, timeout, 0)
}

// GetTimeline is the schedule with bar geometry; ppd defaults to 4.
func GetTimeline(log *slog.Logger, programs ProgramFinder, schedule ScheduleReader, timeout time.Duration) http.HandlerFunc {
	return scheduleHandler("httpapi.GetTimeline", log, programs, schedule, timeout, 4)
}

func scheduleHandler(op string, log *slog.Logger, programs ProgramFinder, schedule ScheduleReader, timeout time.Duration, defaultPPD float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(slog.String("op", op), slog.String("program", chi.URLParam(r, "id")))

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		program, err := programs.Resolve(ctx, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		req, err := parseScheduleQuery(r, program.ID, defaultPPD)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		resp, err := schedule.GetSchedule(ctx, req)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		render.JSON(w, r, resp)
	}
}

func GetEarlyOrders(log *slog.Logger, programs ProgramFinder, schedule ScheduleReader, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.GetEarlyOrders"
		log := log.With(slog.String("op", op), slog.String("program", chi.URLParam(r, "id")))

		now, err := parseNow(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		program, err := programs.Resolve(ctx, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		resp, err := schedule.GetEarlyOrders(ctx, program.ID, now)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		render.JSON(w, r, resp)
	}
}

func GetPartSchedule(log *slog.Logger, schedule ScheduleReader, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.GetPartSchedule"
		partID := chi.URLParam(r, "id")
		log := log.With(slog.String("op", op), slog.String("part", partID))

		now, err := parseNow(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		resp, err := schedule.GetPartSchedule(ctx, partID, now)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		render.JSON(w, r, resp)
	}
}

// writeError maps use-case errors to HTTP statuses. Only unexpected errors
// are logged at error level.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: "internal server error"}

	var se *app.ScheduleError
	var qe *queryError
	switch {
	case errors.As(err, &se):
		resp = ErrorResponse{Error: se.Message, Code: string(se.Code)}
		switch se.Code {
		case app.ScheduleErrProgramNotFound, app.ScheduleErrPartNotFound:
			status = http.StatusNotFound
		default:
			status = http.StatusBadRequest
		}
	case errors.As(err, &qe):
		status = http.StatusBadRequest
		resp = ErrorResponse{Error: qe.Error(), Code: string(qe.code)}
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
		resp = ErrorResponse{Error: err.Error(), Code: string(app.ScheduleErrProgramNotFound)}
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		resp = ErrorResponse{Error: "request timed out"}
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.String("error", err.Error()))
	} else {
		log.Warn("request rejected", slog.String("error", err.Error()), slog.Int("status", status))
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

func toProgramView(p *domain.Program) ProgramView {
	v := ProgramView{ID: p.ID, ShortID: p.ShortID, Name: p.Name, Gates: make([]GateView, 0, len(p.Gates))}
	for _, g := range p.Gates {
		gv := GateView{Key: g.Key, Label: g.Key.Label()}
		if g.Date != nil {
			s := g.Date.Format(domain.DateLayout)
			gv.Date = &s
		}
		v.Gates = append(v.Gates, gv)
	}
	return v
}
