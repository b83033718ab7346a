package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
)

type StatusResult struct {
	Phase       domain.Phase
	Status      domain.OrderStatus
	IsLate      bool
	TargetDate  *time.Time
	OrderByDate *time.Time
	LeadTime    LeadTime
	// PlacedLate is set when the recorded PO date falls after the order-by date.
	PlacedLate     bool
	PartialReceipt bool
	RequestedQty   int
	ReceivedQty    int
	ReceivedPct    float64
}

// ComputeOrderStatus evaluates one phase with the default policy.
func ComputeOrderStatus(p *domain.Part, phase domain.Phase, now time.Time) (StatusResult, error) {
	return DefaultPolicy().ComputeOrderStatus(p, phase, now)
}

// ComputeOrderStatus applies the status precedence for one phase:
//  1. no target date: no_target
//  2. received (and not contradicted by a partial quantity): received
//  3. PO number present: ordered, late when now is past the order-by day
//  4. otherwise: not_ordered, late when now is past the order-by day
//
// now is compared by calendar day and must be captured once by the caller.
func (pol Policy) ComputeOrderStatus(p *domain.Part, phase domain.Phase, now time.Time) (StatusResult, error) {
	data, err := checkPhase(p, phase)
	if err != nil {
		return StatusResult{}, err
	}
	lt, err := pol.ResolveLeadTime(p, phase)
	if err != nil {
		return StatusResult{}, err
	}

	res := StatusResult{
		Phase:        phase,
		LeadTime:     lt,
		RequestedQty: pol.requestedQty(p, phase, data),
		ReceivedQty:  domain.IntFromPtrWithDefault(0, data.ReceivedQty),
	}
	res.ReceivedPct = receivedPct(res.ReceivedQty, res.RequestedQty)
	res.PartialReceipt = data.ReceivedQty != nil && res.RequestedQty > 0 && *data.ReceivedQty < res.RequestedQty

	if data.TargetDate == nil {
		res.Status = domain.OrderNoTarget
		return res, nil
	}
	target := domain.DateOnly(*data.TargetDate)
	orderBy := OrderByDate(target, lt.EffectiveDays)
	res.TargetDate = &target
	res.OrderByDate = &orderBy

	if isReceived(data, res.RequestedQty) {
		res.Status = domain.OrderReceived
		return res, nil
	}

	late := domain.DateOnly(now).After(orderBy)
	if data.HasPO() {
		res.Status = domain.OrderOrdered
		res.PlacedLate = data.PODate != nil && domain.DateOnly(*data.PODate).After(orderBy)
	} else {
		res.Status = domain.OrderNotOrdered
	}
	res.IsLate = late
	return res, nil
}

func isReceived(data *domain.PhaseData, requested int) bool {
	if data.ReceivedQty != nil && requested > 0 {
		return *data.ReceivedQty >= requested
	}
	return data.Received
}

func (pol Policy) requestedQty(p *domain.Part, phase domain.Phase, data *domain.PhaseData) int {
	if data.RequestedQty != nil {
		return max(0, *data.RequestedQty)
	}
	if phase == domain.PhaseProduction {
		return pol.ProductionQuantity(p).Total
	}
	return 0
}

func receivedPct(received, requested int) float64 {
	if requested <= 0 || received <= 0 {
		return 0
	}
	pct := float64(received) / float64(requested) * 100
	return math.Min(100, math.Round(pct*10)/10)
}
