package service

import (
	"time"

	"github.com/alexanderramin/leadtime/internal/app"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/scheduler"
)

func buildPhaseView(eval *partEvaluation, phase domain.Phase, now time.Time) app.PhaseScheduleView {
	p := eval.part
	st := eval.statuses[phase]
	data, _ := p.Phase(phase)
	early, precedes := eval.earlyFlag(phase)

	v := app.PhaseScheduleView{
		PartID:            p.ID,
		PartCode:          p.DisplayCode(),
		Description:       p.Description,
		GroupCode:         p.GroupCode,
		Stage:             p.Stage,
		Phase:             phase,
		Status:            st.Status,
		IsLate:            st.IsLate,
		PlacedLate:        st.PlacedLate,
		TargetDate:        formatDatePtr(st.TargetDate),
		OrderByDate:       formatDatePtr(st.OrderByDate),
		BaseDays:          st.LeadTime.BaseDays,
		TransitDays:       st.LeadTime.TransitDays,
		EffectiveLeadDays: st.LeadTime.EffectiveDays,
		BaseSource:        string(st.LeadTime.BaseSource),
		Freight:           st.LeadTime.Freight,
		PONumber:          data.PONumber,
		RequestedQty:      st.RequestedQty,
		ReceivedQty:       st.ReceivedQty,
		ReceivedPct:       st.ReceivedPct,
		PartialReceipt:    st.PartialReceipt,
		NeedsEarlyOrder:   early,
		PrecedesGate:      precedes,
		Tone:              scheduler.ToneFor(st),
	}
	if st.OrderByDate != nil {
		days := domain.DaysBetween(now, *st.OrderByDate)
		v.DaysUntilOrderBy = &days
	}
	v.Warnings = append(v.Warnings, st.LeadTime.Warnings...)
	if phase == domain.PhaseProduction {
		v.Warnings = append(v.Warnings, eval.quantity.Warnings...)
	}
	return v
}

// buildEarlyOrderView returns nil unless the part is flagged.
func buildEarlyOrderView(eval *partEvaluation) *app.EarlyOrderView {
	eo := eval.early
	if !eo.NeedsEarlyOrder || eo.OrderByDate == nil || eo.AuthorizingDate == nil {
		return nil
	}
	v := &app.EarlyOrderView{
		PartID:            eval.part.ID,
		PartCode:          eval.part.DisplayCode(),
		Description:       eval.part.Description,
		Phase:             eo.Phase,
		OrderByDate:       eo.OrderByDate.Format(domain.DateLayout),
		AuthorizingGate:   *eo.AuthorizingGate,
		AuthorizingDate:   eo.AuthorizingDate.Format(domain.DateLayout),
		DaysBeforeGate:    domain.DaysBetween(*eo.OrderByDate, *eo.AuthorizingDate),
		EffectiveLeadDays: eval.statuses[eo.Phase].LeadTime.EffectiveDays,
		NewSupplier:       eval.part.NewSupplier,
	}
	if eo.PrecedesGate != nil {
		v.PrecedesGate = *eo.PrecedesGate
		v.PrecedesGateLabel = eo.PrecedesGate.Label()
	}
	return v
}

func buildScheduleSummary(program *domain.Program, partCount int, rows []app.PhaseScheduleView, now time.Time) app.ScheduleSummary {
	sum := app.ScheduleSummary{
		GeneratedAt:     now,
		ProgramID:       program.ID,
		ProgramName:     program.Name,
		PartCount:       partCount,
		CountsTotal:     len(rows),
		LastReachedGate: scheduler.LastReachedGate(program.Gates, now),
	}
	for _, r := range rows {
		switch r.Status {
		case domain.OrderNoTarget:
			sum.CountsNoTarget++
		case domain.OrderNotOrdered:
			sum.CountsNotOrdered++
		case domain.OrderOrdered:
			sum.CountsOrdered++
		case domain.OrderReceived:
			sum.CountsReceived++
		}
		if r.IsLate {
			sum.CountsLate++
		}
		if r.NeedsEarlyOrder {
			sum.CountsEarly++
		}
		if len(r.Warnings) > 0 {
			sum.CountsWarnings++
		}
	}
	return sum
}

func warningMessages(ws []scheduler.Warning) []string {
	if len(ws) == 0 {
		return nil
	}
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, string(w.Code)+": "+w.Message)
	}
	return out
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
