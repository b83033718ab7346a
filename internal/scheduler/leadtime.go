package scheduler

import (
	"regexp"
	"strconv"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
)

// BaseSource records which input produced LeadTime.BaseDays.
type BaseSource string

const (
	BaseFromDays    BaseSource = "days"
	BaseFromWeeks   BaseSource = "weeks"
	BaseFromDefault BaseSource = "default"
)

type LeadTime struct {
	BaseDays      int
	TransitDays   int
	EffectiveDays int
	BaseSource    BaseSource
	Freight       domain.FreightType
	Warnings      []Warning
}

var leadingInt = regexp.MustCompile(`-?\d+`)

// ResolveLeadTime resolves the lead time of a part with the default policy.
func ResolveLeadTime(p *domain.Part, phase domain.Phase) (LeadTime, error) {
	return DefaultPolicy().ResolveLeadTime(p, phase)
}

// ResolveLeadTime derives base, transit and effective days for one phase.
// Missing or malformed inputs degrade to policy defaults; only an unknown
// phase is an error.
func (pol Policy) ResolveLeadTime(p *domain.Part, phase domain.Phase) (LeadTime, error) {
	if _, err := checkPhase(p, phase); err != nil {
		return LeadTime{}, err
	}

	var lt LeadTime
	switch {
	case p.BaseLeadTimeDays != nil:
		lt.BaseDays = *p.BaseLeadTimeDays
		lt.BaseSource = BaseFromDays
	default:
		if weeks, ok := parseWeeks(p.LeadTimeWeeks); ok {
			lt.BaseDays = weeks * 7
			lt.BaseSource = BaseFromWeeks
		} else {
			if p.LeadTimeWeeks != "" {
				lt.Warnings = append(lt.Warnings, warnf(WarnMissingInput,
					"lead time %q has no week count; using %d days", p.LeadTimeWeeks, pol.DefaultBaseDays))
			} else {
				lt.Warnings = append(lt.Warnings, warnf(WarnMissingInput,
					"no lead time recorded; using %d days", pol.DefaultBaseDays))
			}
			lt.BaseDays = pol.DefaultBaseDays
			lt.BaseSource = BaseFromDefault
		}
	}
	if lt.BaseDays < 0 {
		lt.Warnings = append(lt.Warnings, warnf(WarnInvalidRange, "negative lead time %d clamped to 0", lt.BaseDays))
		lt.BaseDays = 0
	}

	switch p.FreightType {
	case domain.FreightAir:
		lt.Freight = domain.FreightAir
		lt.TransitDays = domain.IntFromPtrWithDefault(pol.AirFreightDays, p.AirFreightDays)
	case domain.FreightSea:
		lt.Freight = domain.FreightSea
		lt.TransitDays = domain.IntFromPtrWithDefault(pol.SeaFreightDays, p.SeaFreightDays)
	default:
		if p.FreightType == "" {
			lt.Warnings = append(lt.Warnings, warnf(WarnMissingInput, "no freight type; assuming sea"))
		} else {
			lt.Warnings = append(lt.Warnings, warnf(WarnInvalidRange, "unknown freight type %q; assuming sea", p.FreightType))
		}
		lt.Freight = domain.FreightSea
		lt.TransitDays = domain.IntFromPtrWithDefault(pol.SeaFreightDays, p.SeaFreightDays)
	}
	if lt.TransitDays < 0 {
		lt.Warnings = append(lt.Warnings, warnf(WarnInvalidRange, "negative %s transit %d clamped to 0", lt.Freight, lt.TransitDays))
		lt.TransitDays = 0
	}

	lt.EffectiveDays = lt.BaseDays + lt.TransitDays
	return lt, nil
}

// OrderByDate is the last calendar day an order can be placed and still land
// by target.
func OrderByDate(target time.Time, effectiveDays int) time.Time {
	return domain.DateOnly(target).AddDate(0, 0, -effectiveDays)
}

// parseWeeks reads the first integer from free text such as "12", "12 weeks",
// "12w" or "10-12".
func parseWeeks(s string) (int, bool) {
	m := leadingInt.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
