package scheduler

import (
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
)

// PhaseEarlyOrder is the early-order evaluation of one phase with a target date.
type PhaseEarlyOrder struct {
	Phase           domain.Phase
	OrderByDate     time.Time
	NeedsEarlyOrder bool
	PrecedesGate    *domain.GateKey
	// Committed phases already carry a PO or a receipt and are never flagged.
	Committed bool
}

type EarlyOrderResult struct {
	NeedsEarlyOrder bool
	PrecedesGate    *domain.GateKey
	Phase           domain.Phase
	OrderByDate     *time.Time
	AuthorizingGate *domain.GateKey
	AuthorizingDate *time.Time
	LastReachedGate *domain.GateKey
	Evaluable       bool
	Phases          []PhaseEarlyOrder
	Warnings        []Warning
}

// CheckEarlyOrder evaluates early-order risk with the default policy.
func CheckEarlyOrder(p *domain.Part, gates domain.GateSequence, now time.Time) (EarlyOrderResult, error) {
	return DefaultPolicy().CheckEarlyOrder(p, gates, now)
}

// CheckEarlyOrder flags a part whose order-by date falls before the gate that
// conventionally authorizes ordering while that gate is still ahead of now.
// An entirely undated gate sequence cannot be evaluated and is never flagged.
func (pol Policy) CheckEarlyOrder(p *domain.Part, gates domain.GateSequence, now time.Time) (EarlyOrderResult, error) {
	if p == nil {
		return EarlyOrderResult{}, ErrNilPart
	}
	seq := domain.NewGateSequence(gates...)
	today := domain.DateOnly(now)

	var res EarlyOrderResult
	res.LastReachedGate = lastReachedGate(seq, today)

	authKey, authDate, ok := authorizingGate(seq, pol.AuthorizingGate)
	if !ok {
		res.Warnings = append(res.Warnings, warnf(WarnUnresolvableRisk,
			"no dated gate at or after %s; early-order risk not evaluated", pol.AuthorizingGate.Label()))
	} else {
		res.Evaluable = true
		res.AuthorizingGate = &authKey
		res.AuthorizingDate = &authDate
	}

	lt, err := pol.ResolveLeadTime(p, domain.PhaseSprint)
	if err != nil {
		return EarlyOrderResult{}, err
	}

	for _, phase := range domain.Phases {
		data, _ := p.Phase(phase)
		if data.TargetDate == nil {
			continue
		}
		orderBy := OrderByDate(*data.TargetDate, lt.EffectiveDays)
		pe := PhaseEarlyOrder{
			Phase:        phase,
			OrderByDate:  orderBy,
			PrecedesGate: soonestGateOnOrAfter(seq, orderBy),
			Committed:    data.HasPO() || data.Received,
		}
		if ok && !pe.Committed {
			pe.NeedsEarlyOrder = orderBy.Before(authDate) && today.Before(authDate)
		}
		res.Phases = append(res.Phases, pe)

		if pe.NeedsEarlyOrder && (res.OrderByDate == nil || orderBy.Before(*res.OrderByDate)) {
			ob := orderBy
			res.NeedsEarlyOrder = true
			res.Phase = phase
			res.OrderByDate = &ob
			res.PrecedesGate = pe.PrecedesGate
		}
	}
	return res, nil
}

// authorizingGate returns the configured gate, or the next dated gate after
// it in program order when it is undated.
func authorizingGate(seq domain.GateSequence, want domain.GateKey) (domain.GateKey, time.Time, bool) {
	start := want.Rank()
	if start < 0 {
		start = domain.GateDesignTransfer.Rank()
	}
	for _, g := range seq[start:] {
		if g.Date != nil {
			return g.Key, domain.DateOnly(*g.Date), true
		}
	}
	return "", time.Time{}, false
}

// soonestGateOnOrAfter returns the dated gate closest after (or on) day.
// Ties go to the earlier gate in program order.
func soonestGateOnOrAfter(seq domain.GateSequence, day time.Time) *domain.GateKey {
	var (
		best     *domain.GateKey
		bestDate time.Time
	)
	for _, g := range seq {
		if g.Date == nil {
			continue
		}
		d := domain.DateOnly(*g.Date)
		if d.Before(day) {
			continue
		}
		if best == nil || d.Before(bestDate) {
			k := g.Key
			best = &k
			bestDate = d
		}
	}
	return best
}

func lastReachedGate(seq domain.GateSequence, today time.Time) *domain.GateKey {
	var last *domain.GateKey
	for _, g := range seq {
		if g.Date != nil && !domain.DateOnly(*g.Date).After(today) {
			k := g.Key
			last = &k
		}
	}
	return last
}

// LastReachedGate returns the latest gate dated on or before now, or nil.
func LastReachedGate(gates domain.GateSequence, now time.Time) *domain.GateKey {
	return lastReachedGate(domain.NewGateSequence(gates...), domain.DateOnly(now))
}
