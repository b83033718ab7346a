package scheduler

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/leadtime/internal/domain"
)

type QuantitySource string

const (
	QuantityExplicit QuantitySource = "explicit"
	QuantityForecast QuantitySource = "forecast"
	QuantityNone     QuantitySource = "none"
)

type QuantityResult struct {
	Total    int
	Source   QuantitySource
	Warnings []Warning
}

// TotalProductionQty returns the mass-production order quantity, never negative.
func TotalProductionQty(p *domain.Part) int {
	return DefaultPolicy().ProductionQuantity(p).Total
}

// TotalProductionQty is the int-only form of ProductionQuantity.
func (pol Policy) TotalProductionQty(p *domain.Part) int {
	return pol.ProductionQuantity(p).Total
}

// maxProductionQty caps a forecast-derived quantity so it fits in an int on
// every platform.
const maxProductionQty = math.MaxInt32

// ProductionQuantity returns the explicit mass-production quantity when set,
// otherwise ceil(forecast / (1 - scrap)). Scrap in [0, 1) is used as given;
// a rate of 1 or more is an input error and falls back to MaxScrapRate.
func (pol Policy) ProductionQuantity(p *domain.Part) QuantityResult {
	if p == nil {
		return QuantityResult{Source: QuantityNone}
	}
	var res QuantityResult

	if p.MassProductionQty != nil {
		res.Source = QuantityExplicit
		res.Total = *p.MassProductionQty
		if res.Total < 0 {
			res.Warnings = append(res.Warnings, warnf(WarnInvalidRange, "negative production quantity %d clamped to 0", res.Total))
			res.Total = 0
		}
		return res
	}

	if p.PAForecast == nil {
		res.Source = QuantityNone
		return res
	}
	res.Source = QuantityForecast
	forecast := *p.PAForecast
	if forecast < 0 {
		res.Warnings = append(res.Warnings, warnf(WarnInvalidRange, "negative forecast %d clamped to 0", forecast))
		forecast = 0
	}

	maxScrap := pol.MaxScrapRate
	if !(maxScrap >= 0 && maxScrap < 1) {
		maxScrap = DefaultPolicy().MaxScrapRate
	}
	scrap := domain.Float64FromPtrWithDefault(0, p.ScrapRate)
	switch {
	case math.IsNaN(scrap):
		res.Warnings = append(res.Warnings, warnf(WarnInvalidRange, "scrap rate is not a number; using 0"))
		scrap = 0
	case scrap < 0:
		res.Warnings = append(res.Warnings, warnf(WarnInvalidRange, "negative scrap rate %v clamped to 0", scrap))
		scrap = 0
	case scrap >= 1:
		res.Warnings = append(res.Warnings, warnf(WarnInvalidRange, "scrap rate %v clamped to %v", scrap, maxScrap))
		scrap = maxScrap
	}

	yield := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(scrap))
	total := decimal.NewFromInt(int64(forecast)).Div(yield).Ceil()
	if limit := decimal.NewFromInt(maxProductionQty); total.GreaterThan(limit) {
		res.Warnings = append(res.Warnings, warnf(WarnInvalidRange, "production quantity %s capped at %d", total.String(), maxProductionQty))
		total = limit
	}
	res.Total = int(total.IntPart())
	return res
}

// AirPremiumTotal prices the air premium for qty units, or zero when no
// premium is recorded.
func AirPremiumTotal(p *domain.Part, qty int) decimal.Decimal {
	if p == nil || !p.AirPremium.Valid || qty <= 0 {
		return decimal.Zero
	}
	return p.AirPremium.Decimal.Mul(decimal.NewFromInt(int64(qty)))
}
