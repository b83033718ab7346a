package scheduler

import (
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
)

var day0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return day0.AddDate(0, 0, n) }

func dayPtr(n int) *time.Time { return domain.TimePtr(day(n)) }

type partOpt func(*domain.Part)

func newPart(opts ...partOpt) *domain.Part {
	p := &domain.Part{
		ID:          "part-1",
		Code:        "P-100",
		Stage:       domain.StageProcurement,
		FreightType: domain.FreightSea,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func withBaseDays(n int) partOpt { return func(p *domain.Part) { p.BaseLeadTimeDays = domain.IntPtr(n) } }
func withWeeks(s string) partOpt  { return func(p *domain.Part) { p.LeadTimeWeeks = s } }
func withFreight(f domain.FreightType) partOpt {
	return func(p *domain.Part) { p.FreightType = f }
}
func withSprintTarget(n int) partOpt {
	return func(p *domain.Part) { p.Sprint.TargetDate = dayPtr(n) }
}
func withProductionTarget(n int) partOpt {
	return func(p *domain.Part) { p.Production.TargetDate = dayPtr(n) }
}
func withSprintPO(po string) partOpt { return func(p *domain.Part) { p.Sprint.PONumber = po } }

func gates(pairs map[domain.GateKey]int) domain.GateSequence {
	var gs []domain.Gate
	for k, n := range pairs {
		gs = append(gs, domain.Gate{Key: k, Date: dayPtr(n)})
	}
	return domain.NewGateSequence(gs...)
}
