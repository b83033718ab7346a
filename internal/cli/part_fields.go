package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// partFields are the part attribute flags shared by "part add" and
// "part update". Only flags the user actually set are applied.
type partFields struct {
	finalCode   string
	description string
	group       string
	stage       string

	baseDays   int
	weeks      string
	freight    string
	seaDays    int
	airDays    int
	airPremium string

	forecast int
	scrap    float64
	mpQty    int

	orderTogether   bool
	newSupplier     bool
	colorTouchpoint bool

	sprintTarget *time.Time
	prodTarget   *time.Time
}

func (f *partFields) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.finalCode, "final-code", "", "Final part code, once assigned")
	fs.StringVar(&f.description, "description", "", "Part description")
	fs.StringVar(&f.group, "group", "", "Assembly group code")
	fs.StringVar(&f.stage, "stage", "", "Workflow stage (added, pending, design, engineering, procurement, complete, on_hold, cancelled)")

	fs.IntVar(&f.baseDays, "base-days", 0, "Supplier lead time in days")
	fs.StringVar(&f.weeks, "weeks", "", `Supplier lead time as free text, e.g. "6-8 weeks"`)
	fs.StringVar(&f.freight, "freight", "", "Freight mode (sea or air)")
	fs.IntVar(&f.seaDays, "sea-days", 0, "Sea transit days for this part")
	fs.IntVar(&f.airDays, "air-days", 0, "Air transit days for this part")
	fs.StringVar(&f.airPremium, "air-premium", "", "Air freight premium per unit")

	fs.IntVar(&f.forecast, "forecast", 0, "Forecast production volume")
	fs.Float64Var(&f.scrap, "scrap", 0, "Scrap rate as a fraction (0.04 = 4%)")
	fs.IntVar(&f.mpQty, "mp-qty", 0, "Explicit mass-production order quantity")

	fs.BoolVar(&f.orderTogether, "order-together", false, "Ordered together with its assembly group")
	fs.BoolVar(&f.newSupplier, "new-supplier", false, "Supplier has not delivered to this program before")
	fs.BoolVar(&f.colorTouchpoint, "color-touchpoint", false, "Part is a colour or finish touchpoint")

	fs.Var(newDateFlag(&f.sprintTarget), "sprint-target", "Sprint phase target date (YYYY-MM-DD)")
	fs.Var(newDateFlag(&f.prodTarget), "prod-target", "Production phase target date (YYYY-MM-DD)")
}

func (f *partFields) apply(fs *pflag.FlagSet, p *domain.Part) error {
	set := func(name string) bool { return fs.Changed(name) }

	if set("final-code") {
		p.FinalCode = strings.TrimSpace(f.finalCode)
	}
	if set("description") {
		p.Description = f.description
	}
	if set("group") {
		p.GroupCode = f.group
	}
	if set("stage") {
		p.Stage = domain.PartStage(f.stage)
	}
	if set("base-days") {
		p.BaseLeadTimeDays = domain.IntPtr(f.baseDays)
	}
	if set("weeks") {
		p.LeadTimeWeeks = f.weeks
	}
	if set("freight") {
		p.FreightType = domain.FreightType(strings.ToLower(f.freight))
	}
	if set("sea-days") {
		p.SeaFreightDays = domain.IntPtr(f.seaDays)
	}
	if set("air-days") {
		p.AirFreightDays = domain.IntPtr(f.airDays)
	}
	if set("air-premium") {
		premium, err := parsePremium(f.airPremium)
		if err != nil {
			return err
		}
		p.AirPremium = premium
	}
	if set("forecast") {
		p.PAForecast = domain.IntPtr(f.forecast)
	}
	if set("scrap") {
		p.ScrapRate = domain.Float64Ptr(f.scrap)
	}
	if set("mp-qty") {
		p.MassProductionQty = domain.IntPtr(f.mpQty)
	}
	if set("order-together") {
		p.OrderTogether = f.orderTogether
	}
	if set("new-supplier") {
		p.NewSupplier = f.newSupplier
	}
	if set("color-touchpoint") {
		p.ColorTouchpoint = f.colorTouchpoint
	}
	if f.sprintTarget != nil {
		p.Sprint.TargetDate = f.sprintTarget
	}
	if f.prodTarget != nil {
		p.Production.TargetDate = f.prodTarget
	}
	return nil
}

// parsePremium reads a per-unit premium; blank clears it.
func parsePremium(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid air premium %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("air premium must not be negative")
	}
	return decimal.NewNullDecimal(d), nil
}
