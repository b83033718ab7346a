package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/leadtime/internal/app"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/repository"
	"github.com/alexanderramin/leadtime/internal/scheduler"
)

type scheduleService struct {
	programs repository.ProgramRepo
	parts    repository.PartRepo
	policy   scheduler.Policy
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewScheduleService(
	programs repository.ProgramRepo,
	parts repository.PartRepo,
	policy scheduler.Policy,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		programs: programs,
		parts:    parts,
		policy:   policy,
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// partEvaluation holds every derived record of one part, all computed
// against the same now.
type partEvaluation struct {
	part     *domain.Part
	statuses map[domain.Phase]scheduler.StatusResult
	early    scheduler.EarlyOrderResult
	quantity scheduler.QuantityResult
}

func (e *partEvaluation) earlyFlag(phase domain.Phase) (bool, *domain.GateKey) {
	for _, pe := range e.early.Phases {
		if pe.Phase == phase && pe.NeedsEarlyOrder {
			return true, pe.PrecedesGate
		}
	}
	return false, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, req app.ScheduleRequest) (resp *app.ScheduleResponse, err error) {
	now := captureNow(req.Now)
	startedAt := time.Now().UTC()
	fields := map[string]any{"program_id": req.ProgramID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	phases, err := validateScheduleRequest(req)
	if err != nil {
		return nil, err
	}

	program, err := s.loadProgram(ctx, req.ProgramID)
	if err != nil {
		return nil, err
	}
	parts, err := s.parts.ListByProgram(ctx, program.ID)
	if err != nil {
		return nil, fmt.Errorf("loading parts: %w", err)
	}
	parts = filterParts(parts, req)

	evals, err := s.evaluateAll(ctx, parts, program.Gates, now)
	if err != nil {
		return nil, err
	}

	rows := s.buildRows(evals, phases, req, now)

	resp = &app.ScheduleResponse{
		Summary: buildScheduleSummary(program, len(parts), rows, now),
		Rows:    rows,
	}
	gateCheck, err := s.gateRisk(program.Gates, now)
	if err != nil {
		return nil, err
	}
	if !gateCheck.Evaluable {
		resp.Warnings = append(resp.Warnings, warningMessages(gateCheck.Warnings)...)
	}
	if req.PixelsPerDay > 0 {
		resp.Timeline, err = s.layoutTimeline(evals, resp.Rows, program.Gates, req, now)
		if err != nil {
			return nil, err
		}
	}

	s.logRowWarnings(ctx, program, rows)
	fields["part_count"] = len(parts)
	fields["row_count"] = len(rows)
	fields["late_count"] = resp.Summary.CountsLate
	return resp, nil
}

func (s *scheduleService) GetEarlyOrders(ctx context.Context, programID string, nowOverride *time.Time) (resp *app.EarlyOrderResponse, err error) {
	now := captureNow(nowOverride)
	startedAt := time.Now().UTC()
	fields := map[string]any{"program_id": programID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "early-orders",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	program, err := s.loadProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	parts, err := s.parts.ListByProgram(ctx, program.ID)
	if err != nil {
		return nil, fmt.Errorf("loading parts: %w", err)
	}
	open := make([]*domain.Part, 0, len(parts))
	for _, p := range parts {
		if !p.IsClosed() {
			open = append(open, p)
		}
	}

	evals, err := s.evaluateAll(ctx, open, program.Gates, now)
	if err != nil {
		return nil, err
	}

	gateCheck, err := s.gateRisk(program.Gates, now)
	if err != nil {
		return nil, err
	}

	resp = &app.EarlyOrderResponse{
		GeneratedAt:     now,
		ProgramID:       program.ID,
		ProgramName:     program.Name,
		Evaluable:       gateCheck.Evaluable,
		AuthorizingGate: gateCheck.AuthorizingGate,
		LastReachedGate: gateCheck.LastReachedGate,
		Items:           []app.EarlyOrderView{},
		Warnings:        warningMessages(gateCheck.Warnings),
	}
	for i := range evals {
		if v := buildEarlyOrderView(&evals[i]); v != nil {
			resp.Items = append(resp.Items, *v)
		}
	}
	sort.SliceStable(resp.Items, func(i, j int) bool {
		a, b := resp.Items[i], resp.Items[j]
		if a.OrderByDate != b.OrderByDate {
			return a.OrderByDate < b.OrderByDate
		}
		return a.PartCode < b.PartCode
	})
	fields["flagged"] = len(resp.Items)
	return resp, nil
}

func (s *scheduleService) GetPartSchedule(ctx context.Context, partID string, nowOverride *time.Time) (resp *app.PartScheduleResponse, err error) {
	now := captureNow(nowOverride)
	startedAt := time.Now().UTC()
	fields := map[string]any{"part_id": partID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "part-schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	part, err := s.parts.GetByID(ctx, partID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.ScheduleError{Code: app.ScheduleErrPartNotFound, Message: fmt.Sprintf("part %q not found", partID)}
		}
		return nil, fmt.Errorf("loading part: %w", err)
	}
	program, err := s.loadProgram(ctx, part.ProgramID)
	if err != nil {
		return nil, err
	}

	eval, err := s.evaluatePart(part, program.Gates, now)
	if err != nil {
		return nil, err
	}

	resp = &app.PartScheduleResponse{
		GeneratedAt:        now,
		ProgramID:          program.ID,
		PartID:             part.ID,
		PartCode:           part.DisplayCode(),
		EarlyOrder:         buildEarlyOrderView(&eval),
		TotalProductionQty: eval.quantity.Total,
		QuantitySource:     eval.quantity.Source,
		Warnings:           append(append([]scheduler.Warning(nil), eval.quantity.Warnings...), eval.early.Warnings...),
	}
	for _, phase := range domain.Phases {
		resp.Rows = append(resp.Rows, buildPhaseView(&eval, phase, now))
	}
	if premium := scheduler.AirPremiumTotal(part, eval.quantity.Total); !premium.IsZero() {
		resp.AirPremiumTotal = premium.StringFixed(2)
	}
	return resp, nil
}

func (s *scheduleService) loadProgram(ctx context.Context, id string) (*domain.Program, error) {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.ScheduleError{Code: app.ScheduleErrProgramNotFound, Message: fmt.Sprintf("program %q not found", id)}
		}
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return program, nil
}

func (s *scheduleService) evaluatePart(p *domain.Part, gates domain.GateSequence, now time.Time) (partEvaluation, error) {
	eval := partEvaluation{
		part:     p,
		statuses: make(map[domain.Phase]scheduler.StatusResult, len(domain.Phases)),
		quantity: s.policy.ProductionQuantity(p),
	}
	for _, phase := range domain.Phases {
		st, err := s.policy.ComputeOrderStatus(p, phase, now)
		if err != nil {
			return partEvaluation{}, fmt.Errorf("part %s %s: %w", p.DisplayCode(), phase, err)
		}
		eval.statuses[phase] = st
	}
	early, err := s.policy.CheckEarlyOrder(p, gates, now)
	if err != nil {
		return partEvaluation{}, fmt.Errorf("part %s early order: %w", p.DisplayCode(), err)
	}
	eval.early = early
	return eval, nil
}

// evaluateAll evaluates parts concurrently, bounded by the policy's worker
// count. Results keep the order of parts.
func (s *scheduleService) evaluateAll(ctx context.Context, parts []*domain.Part, gates domain.GateSequence, now time.Time) ([]partEvaluation, error) {
	evals := make([]partEvaluation, len(parts))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.policy.Workers))
	for i, p := range parts {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			eval, err := s.evaluatePart(p, gates, now)
			if err != nil {
				return err
			}
			evals[i] = eval
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return evals, nil
}

func (s *scheduleService) buildRows(evals []partEvaluation, phases []domain.Phase, req app.ScheduleRequest, now time.Time) []app.PhaseScheduleView {
	statuses := make(map[domain.OrderStatus]bool, len(req.Statuses))
	for _, st := range req.Statuses {
		statuses[st] = true
	}

	type rowKey struct {
		partID string
		phase  domain.Phase
	}
	byKey := make(map[rowKey]*partEvaluation, len(evals)*len(phases))
	var entries []scheduler.ScheduleEntry
	for i := range evals {
		eval := &evals[i]
		for _, phase := range phases {
			st := eval.statuses[phase]
			early, _ := eval.earlyFlag(phase)
			if len(statuses) > 0 && !statuses[st.Status] {
				continue
			}
			if req.LateOnly && !st.IsLate {
				continue
			}
			if req.EarlyOnly && !early {
				continue
			}
			entries = append(entries, scheduler.ScheduleEntry{
				PartID:     eval.part.ID,
				PartCode:   eval.part.DisplayCode(),
				Status:     st,
				EarlyOrder: early,
			})
			byKey[rowKey{eval.part.ID, phase}] = eval
		}
	}

	scheduler.CanonicalSort(entries)

	rows := make([]app.PhaseScheduleView, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, buildPhaseView(byKey[rowKey{e.PartID, e.Status.Phase}], e.Status.Phase, now))
	}
	return rows
}

func (s *scheduleService) layoutTimeline(
	evals []partEvaluation,
	rows []app.PhaseScheduleView,
	gates domain.GateSequence,
	req app.ScheduleRequest,
	now time.Time,
) (*app.TimelineView, error) {
	byPart := make(map[string]*partEvaluation, len(evals))
	results := make([]scheduler.StatusResult, 0, len(rows))
	for i := range evals {
		byPart[evals[i].part.ID] = &evals[i]
	}
	for _, r := range rows {
		results = append(results, byPart[r.PartID].statuses[r.Phase])
	}

	window, ok := scheduler.TimelineWindow(results, req.PadDays)
	if !ok {
		return nil, nil
	}

	ppd := req.PixelsPerDay
	tl := &app.TimelineView{
		Start:        window.Start.Format(domain.DateLayout),
		End:          window.End.Format(domain.DateLayout),
		Days:         window.Days(),
		PixelsPerDay: ppd,
		Width:        float64(window.Days()) * ppd,
		Gates:        []app.GateMarker{},
	}
	today := domain.DateOnly(now)
	if !today.Before(window.Start) && !today.After(window.End) {
		x := float64(domain.DaysBetween(window.Start, today)) * ppd
		tl.TodayX = &x
	}
	for _, g := range gates {
		if g.Date == nil {
			continue
		}
		d := domain.DateOnly(*g.Date)
		if d.Before(window.Start) || d.After(window.End) {
			continue
		}
		tl.Gates = append(tl.Gates, app.GateMarker{
			Key:   g.Key,
			Label: g.Key.Label(),
			Date:  d.Format(domain.DateLayout),
			X:     float64(domain.DaysBetween(window.Start, d)) * ppd,
		})
	}

	for i := range rows {
		eval := byPart[rows[i].PartID]
		geo, drawn, err := s.policy.ComputeBarGeometry(eval.part, rows[i].Phase, window.Start, ppd)
		if err != nil {
			return nil, &app.ScheduleError{Code: app.ScheduleErrInvalidFilter, Message: err.Error()}
		}
		if !drawn {
			continue
		}
		rows[i].Bar = &app.BarView{
			StartX:              geo.StartX,
			OrderSegmentWidth:   geo.OrderSegmentWidth,
			TransitSegmentWidth: geo.TransitSegmentWidth,
			TotalWidth:          geo.TotalWidth,
			Opacity:             rows[i].Tone.Opacity(),
		}
	}
	return tl, nil
}

func (s *scheduleService) logRowWarnings(ctx context.Context, program *domain.Program, rows []app.PhaseScheduleView) {
	for _, r := range rows {
		for _, w := range r.Warnings {
			s.logger.WarnContext(ctx, "schedule input degraded",
				"program", program.DisplayID(),
				"part", r.PartCode,
				"phase", r.Phase,
				"code", w.Code,
				"message", w.Message,
			)
		}
	}
}

// gateRisk evaluates the gate side of the early-order check, which does not
// depend on any part.
func (s *scheduleService) gateRisk(gates domain.GateSequence, now time.Time) (scheduler.EarlyOrderResult, error) {
	return s.policy.CheckEarlyOrder(&domain.Part{}, gates, now)
}

func captureNow(override *time.Time) time.Time {
	if override != nil {
		return override.UTC()
	}
	return wallClock(time.Now())
}

// wallClock re-expresses t's local date and clock reading in UTC, so the
// engine's calendar-day comparisons follow the operator's day rather than
// the UTC one.
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func validateScheduleRequest(req app.ScheduleRequest) ([]domain.Phase, error) {
	phases := req.Phases
	if len(phases) == 0 {
		phases = domain.Phases
	}
	for _, ph := range phases {
		if err := ph.Validate(); err != nil {
			return nil, &app.ScheduleError{Code: app.ScheduleErrInvalidPhase, Message: err.Error()}
		}
	}
	for _, st := range req.Statuses {
		if !domain.ValidOrderStatuses[string(st)] {
			return nil, &app.ScheduleError{Code: app.ScheduleErrInvalidFilter, Message: fmt.Sprintf("unknown status %q", st)}
		}
	}
	for _, st := range req.Stages {
		if !domain.ValidPartStages[string(st)] {
			return nil, &app.ScheduleError{Code: app.ScheduleErrInvalidFilter, Message: fmt.Sprintf("unknown stage %q", st)}
		}
	}
	if req.PixelsPerDay < 0 || math.IsNaN(req.PixelsPerDay) || math.IsInf(req.PixelsPerDay, 0) {
		return nil, &app.ScheduleError{Code: app.ScheduleErrInvalidFilter, Message: fmt.Sprintf("pixels per day %v must be positive", req.PixelsPerDay)}
	}
	if req.PadDays < 0 {
		return nil, &app.ScheduleError{Code: app.ScheduleErrInvalidFilter, Message: "pad days must not be negative"}
	}
	return phases, nil
}

func filterParts(parts []*domain.Part, req app.ScheduleRequest) []*domain.Part {
	stages := make(map[domain.PartStage]bool, len(req.Stages))
	for _, st := range req.Stages {
		stages[st] = true
	}
	out := make([]*domain.Part, 0, len(parts))
	for _, p := range parts {
		if !req.IncludeClosed && p.IsClosed() {
			continue
		}
		if len(stages) > 0 && !stages[p.Stage] {
			continue
		}
		out = append(out, p)
	}
	return out
}
