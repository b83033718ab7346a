package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/leadtime/internal/contract"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/scheduler"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func gatePtr(k domain.GateKey) *domain.GateKey { return &k }

func sampleSchedule() *contract.ScheduleResponse {
	return &contract.ScheduleResponse{
		Summary: contract.ScheduleSummary{
			GeneratedAt:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			ProgramName:      "Axle",
			PartCount:        2,
			CountsTotal:      2,
			CountsNoTarget:   1,
			CountsNotOrdered: 1,
			CountsLate:       1,
			CountsEarly:      1,
			LastReachedGate:  gatePtr(domain.GateDesignApproval),
		},
		Rows: []contract.PhaseScheduleView{
			{
				PartCode:          "BRK-100",
				Phase:             domain.PhaseSprint,
				Status:            domain.OrderNotOrdered,
				IsLate:            true,
				TargetDate:        strPtr("2025-05-01"),
				OrderByDate:       strPtr("2025-02-10"),
				DaysUntilOrderBy:  intPtr(-19),
				BaseDays:          45,
				TransitDays:       35,
				EffectiveLeadDays: 80,
				Freight:           domain.FreightSea,
				NeedsEarlyOrder:   true,
				PrecedesGate:      gatePtr(domain.GateDesignTransfer),
				Tone:              scheduler.ToneWarning,
				Bar:               &contract.BarView{StartX: 34, OrderSegmentWidth: 90, TransitSegmentWidth: 70, TotalWidth: 160, Opacity: 1},
			},
			{
				PartCode:          "ENC-400",
				Phase:             domain.PhaseProduction,
				Status:            domain.OrderNoTarget,
				BaseDays:          30,
				TransitDays:       35,
				EffectiveLeadDays: 65,
				Freight:           domain.FreightSea,
				Tone:              scheduler.ToneNone,
				Warnings:          []scheduler.Warning{{Code: scheduler.WarnMissingInput, Message: "no lead time"}},
			},
		},
		Timeline: &contract.TimelineView{
			Start:        "2025-01-24",
			End:          "2025-06-01",
			Days:         129,
			PixelsPerDay: 2,
			Width:        258,
			TodayX:       func() *float64 { v := 72.0; return &v }(),
			Gates: []contract.GateMarker{
				{Key: domain.GateDesignTransfer, Label: "Design Transfer", Date: "2025-04-01", X: 134},
			},
		},
	}
}

func TestFormatSchedule(t *testing.T) {
	out := stripANSI(FormatSchedule(sampleSchedule()))

	assert.Contains(t, out, "AXLE SCHEDULE")
	assert.Contains(t, out, "last gate reached: Design Approval")
	assert.Contains(t, out, "BRK-100")
	assert.Contains(t, out, "Late")
	assert.Contains(t, out, "2025-02-10 2w ago")
	assert.Contains(t, out, "45+35=80d")
	assert.Contains(t, out, "early: before Design Transfer")
	assert.Contains(t, out, "1 warn")
	assert.Contains(t, out, "1 late")
	assert.Contains(t, out, "1 early order")
	assert.Less(t, strings.Index(out, "BRK-100"), strings.Index(out, "ENC-400"))
}

func TestFormatSchedule_EmptyRows(t *testing.T) {
	resp := sampleSchedule()
	resp.Rows = nil
	resp.Warnings = []string{"UNRESOLVABLE_RISK: no authorizing gate date"}

	out := stripANSI(FormatSchedule(resp))
	assert.Contains(t, out, "No parts match.")
	assert.Contains(t, out, "UNRESOLVABLE_RISK")
}

func TestFormatEarlyOrders(t *testing.T) {
	resp := &contract.EarlyOrderResponse{
		ProgramName:     "Axle",
		Evaluable:       true,
		AuthorizingGate: gatePtr(domain.GateDesignTransfer),
		Items: []contract.EarlyOrderView{{
			PartCode:          "BRK-100",
			Phase:             domain.PhaseSprint,
			OrderByDate:       "2025-02-10",
			PrecedesGateLabel: "Design Transfer",
			AuthorizingDate:   "2025-04-01",
			DaysBeforeGate:    50,
			EffectiveLeadDays: 80,
			NewSupplier:       true,
		}},
	}

	out := stripANSI(FormatEarlyOrders(resp))
	assert.Contains(t, out, "authorizing gate: Design Transfer")
	assert.Contains(t, out, "50d")
	assert.Contains(t, out, "new")
	assert.Contains(t, out, "1 part phases need ordering before 2025-04-01")
}

func TestFormatEarlyOrders_NotEvaluable(t *testing.T) {
	resp := &contract.EarlyOrderResponse{
		ProgramName: "Axle",
		Warnings:    []string{"UNRESOLVABLE_RISK: gate design-transfer has no date"},
	}

	out := stripANSI(FormatEarlyOrders(resp))
	assert.Contains(t, out, "cannot be evaluated")
	assert.Contains(t, out, "gate design-transfer has no date")
}

func TestFormatEarlyOrders_NoneFlagged(t *testing.T) {
	resp := &contract.EarlyOrderResponse{ProgramName: "Axle", Evaluable: true}
	assert.Contains(t, stripANSI(FormatEarlyOrders(resp)), "No parts need ordering ahead of the gate.")
}

func TestFormatPartSchedule(t *testing.T) {
	sched := sampleSchedule()
	resp := &contract.PartScheduleResponse{
		PartCode:           "BRK-100",
		Rows:               sched.Rows[:1],
		TotalProductionQty: 1042,
		QuantitySource:     scheduler.QuantityForecast,
		AirPremiumTotal:    "1563.00",
	}

	out := stripANSI(FormatPartSchedule(resp))
	assert.Contains(t, out, "SPRINT")
	assert.Contains(t, out, "order before Design Transfer")
	assert.Contains(t, out, "1042")
	assert.Contains(t, out, "(forecast)")
	assert.Contains(t, out, "1563.00")
}
