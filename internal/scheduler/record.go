package scheduler

import (
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
)

// OrderRecord is the derived, never persisted, view of one part phase.
type OrderRecord struct {
	Phase             domain.Phase
	Status            domain.OrderStatus
	IsLate            bool
	OrderByDate       *time.Time
	EffectiveLeadDays int
	NeedsEarlyOrder   bool
	PrecedesGate      *domain.GateKey
	Tone              Tone
	Warnings          []Warning
}

// DeriveOrderRecord derives the order record with the default policy.
func DeriveOrderRecord(p *domain.Part, gates domain.GateSequence, phase domain.Phase, now time.Time) (OrderRecord, error) {
	return DefaultPolicy().DeriveOrderRecord(p, gates, phase, now)
}

// DeriveOrderRecord combines status and early-order risk for one phase,
// evaluated against a single now.
func (pol Policy) DeriveOrderRecord(p *domain.Part, gates domain.GateSequence, phase domain.Phase, now time.Time) (OrderRecord, error) {
	st, err := pol.ComputeOrderStatus(p, phase, now)
	if err != nil {
		return OrderRecord{}, err
	}
	eo, err := pol.CheckEarlyOrder(p, gates, now)
	if err != nil {
		return OrderRecord{}, err
	}

	rec := OrderRecord{
		Phase:             phase,
		Status:            st.Status,
		IsLate:            st.IsLate,
		OrderByDate:       st.OrderByDate,
		EffectiveLeadDays: st.LeadTime.EffectiveDays,
		Tone:              ToneFor(st),
		Warnings:          append(append([]Warning(nil), st.LeadTime.Warnings...), eo.Warnings...),
	}
	for _, pe := range eo.Phases {
		if pe.Phase == phase && pe.NeedsEarlyOrder {
			rec.NeedsEarlyOrder = true
			rec.PrecedesGate = pe.PrecedesGate
		}
	}
	return rec, nil
}
