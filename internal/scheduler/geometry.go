package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
)

type BarGeometry struct {
	StartX              float64
	OrderSegmentWidth   float64
	TransitSegmentWidth float64
	TotalWidth          float64
	OrderByDate         time.Time
	TargetDate          time.Time
}

// MinBarWidth is the smallest clickable bar at a zoom level.
func MinBarWidth(pixelsPerDay float64) float64 {
	switch {
	case pixelsPerDay >= 4:
		return 8
	case pixelsPerDay >= 1:
		return 12
	default:
		return 20
	}
}

// ComputeBarGeometry lays out a phase with the default policy.
func ComputeBarGeometry(p *domain.Part, phase domain.Phase, timelineStart time.Time, pixelsPerDay float64) (BarGeometry, bool, error) {
	return DefaultPolicy().ComputeBarGeometry(p, phase, timelineStart, pixelsPerDay)
}

// ComputeBarGeometry lays out the two-segment bar of one phase: the order
// segment (supplier lead time) followed by the transit segment. ok is false
// when the phase has no target date and there is nothing to draw.
func (pol Policy) ComputeBarGeometry(p *domain.Part, phase domain.Phase, timelineStart time.Time, pixelsPerDay float64) (BarGeometry, bool, error) {
	if !(pixelsPerDay > 0) || math.IsInf(pixelsPerDay, 0) {
		return BarGeometry{}, false, fmt.Errorf("%w: %v", ErrInvalidScale, pixelsPerDay)
	}
	data, err := checkPhase(p, phase)
	if err != nil {
		return BarGeometry{}, false, err
	}
	if data.TargetDate == nil {
		return BarGeometry{}, false, nil
	}
	lt, err := pol.ResolveLeadTime(p, phase)
	if err != nil {
		return BarGeometry{}, false, err
	}

	target := domain.DateOnly(*data.TargetDate)
	orderBy := OrderByDate(target, lt.EffectiveDays)
	minSeg := pol.MinSegmentPx

	g := BarGeometry{
		StartX:              math.Max(0, float64(domain.DaysBetween(timelineStart, orderBy))*pixelsPerDay),
		OrderSegmentWidth:   math.Max(float64(lt.BaseDays)*pixelsPerDay, minSeg),
		TransitSegmentWidth: math.Max(float64(lt.TransitDays)*pixelsPerDay, minSeg),
		OrderByDate:         orderBy,
		TargetDate:          target,
	}
	g.TotalWidth = math.Max(float64(lt.EffectiveDays)*pixelsPerDay, MinBarWidth(pixelsPerDay))
	g.TotalWidth = math.Max(g.TotalWidth, g.OrderSegmentWidth+g.TransitSegmentWidth)
	return g, true, nil
}

// Tone is the colour class of a bar, derived only from order status.
type Tone string

const (
	ToneNone    Tone = "none"
	ToneMuted   Tone = "muted"
	ToneNeutral Tone = "neutral"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
)

// ToneFor maps a status to its tone. Lateness wins over ordered and unordered,
// a received phase is never shown as late.
func ToneFor(r StatusResult) Tone {
	switch {
	case r.Status == domain.OrderNoTarget || r.Status == "":
		return ToneNone
	case r.Status == domain.OrderReceived:
		return ToneSuccess
	case r.IsLate:
		return ToneWarning
	case r.Status == domain.OrderOrdered:
		return ToneNeutral
	default:
		return ToneMuted
	}
}

func (t Tone) Opacity() float64 {
	switch t {
	case ToneWarning, ToneSuccess:
		return 1
	case ToneNeutral:
		return 0.85
	case ToneMuted:
		return 0.45
	default:
		return 0
	}
}

// Window is the date span a timeline covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive number of calendar days in the window.
func (w Window) Days() int {
	return domain.DaysBetween(w.Start, w.End) + 1
}

// TimelineWindow spans every order-by and target date in results, padded by
// padDays on both sides. ok is false when no result carries dates.
func TimelineWindow(results []StatusResult, padDays int) (Window, bool) {
	var (
		w     Window
		found bool
	)
	extend := func(t *time.Time) {
		if t == nil {
			return
		}
		d := domain.DateOnly(*t)
		if !found {
			w.Start, w.End = d, d
			found = true
			return
		}
		if d.Before(w.Start) {
			w.Start = d
		}
		if d.After(w.End) {
			w.End = d
		}
	}
	for i := range results {
		extend(results[i].OrderByDate)
		extend(results[i].TargetDate)
	}
	if !found {
		return Window{}, false
	}
	padDays = max(0, padDays)
	w.Start = w.Start.AddDate(0, 0, -padDays)
	w.End = w.End.AddDate(0, 0, padDays)
	return w, true
}
