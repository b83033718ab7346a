package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProgram(&schema.Program)...)
	errs = append(errs, validateDefaults(schema.Defaults)...)
	errs = append(errs, validateGates(schema.Gates)...)
	errs = append(errs, validateParts(schema.Parts)...)

	return errs
}

func validateProgram(p *ProgramImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("program.name is required"))
	}
	prog := domain.Program{ShortID: strings.ToUpper(p.ShortID)}
	if err := prog.ValidateShortID(); err != nil {
		errs = append(errs, fmt.Errorf("program.short_id: %w", err))
	}
	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error

	if d.Stage != "" && !domain.ValidPartStages[d.Stage] {
		errs = append(errs, fmt.Errorf("defaults.stage: invalid value %q", d.Stage))
	}
	if d.FreightType != "" && !domain.ValidFreightTypes[d.FreightType] {
		errs = append(errs, fmt.Errorf("defaults.freight_type: invalid value %q", d.FreightType))
	}
	errs = append(errs, validateNonNegative("defaults.sea_freight_days", d.SeaFreightDays)...)
	errs = append(errs, validateNonNegative("defaults.air_freight_days", d.AirFreightDays)...)
	return errs
}

func validateGates(gates []GateImport) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, g := range gates {
		prefix := fmt.Sprintf("gates[%d]", i)
		if _, err := domain.ParseGateKey(g.Key); err != nil {
			errs = append(errs, fmt.Errorf("%s.key: %w", prefix, err))
			continue
		}
		if seen[g.Key] {
			errs = append(errs, fmt.Errorf("%s.key: duplicate gate %q", prefix, g.Key))
		}
		seen[g.Key] = true
		errs = append(errs, validateDate(prefix+".date", g.Date)...)
	}
	return errs
}

func validateParts(parts []PartImport) []error {
	var errs []error
	codes := make(map[string]bool)

	for i, p := range parts {
		prefix := fmt.Sprintf("parts[%d]", i)

		if strings.TrimSpace(p.Code) == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", prefix))
		} else {
			key := strings.ToUpper(p.Code)
			if codes[key] {
				errs = append(errs, fmt.Errorf("%s.code: duplicate code %q", prefix, p.Code))
			}
			codes[key] = true
		}
		if p.Stage != "" && !domain.ValidPartStages[p.Stage] {
			errs = append(errs, fmt.Errorf("%s.stage: invalid value %q", prefix, p.Stage))
		}
		if p.FreightType != "" && !domain.ValidFreightTypes[p.FreightType] {
			errs = append(errs, fmt.Errorf("%s.freight_type: invalid value %q (expected sea or air)", prefix, p.FreightType))
		}

		errs = append(errs, validateNonNegative(prefix+".base_lead_time_days", p.BaseLeadTimeDays)...)
		errs = append(errs, validateNonNegative(prefix+".sea_freight_days", p.SeaFreightDays)...)
		errs = append(errs, validateNonNegative(prefix+".air_freight_days", p.AirFreightDays)...)
		errs = append(errs, validateNonNegative(prefix+".pa_forecast", p.PAForecast)...)
		errs = append(errs, validateNonNegative(prefix+".mass_production_qty", p.MassProductionQty)...)

		if p.ScrapRate != nil && (*p.ScrapRate < 0 || *p.ScrapRate >= 1) {
			errs = append(errs, fmt.Errorf("%s.scrap_rate: %v must be in [0, 1)", prefix, *p.ScrapRate))
		}
		if p.AirPremium != nil {
			if d, err := decimal.NewFromString(*p.AirPremium); err != nil {
				errs = append(errs, fmt.Errorf("%s.air_premium: invalid amount %q", prefix, *p.AirPremium))
			} else if d.IsNegative() {
				errs = append(errs, fmt.Errorf("%s.air_premium: must not be negative", prefix))
			}
		}

		errs = append(errs, validatePhase(prefix+".sprint", p.Sprint)...)
		errs = append(errs, validatePhase(prefix+".production", p.Production)...)
	}
	return errs
}

func validatePhase(prefix string, ph *PhaseImport) []error {
	if ph == nil {
		return nil
	}
	var errs []error
	errs = append(errs, validateDate(prefix+".target_date", ph.TargetDate)...)
	errs = append(errs, validateDate(prefix+".po_date", ph.PODate)...)
	errs = append(errs, validateNonNegative(prefix+".received_qty", ph.ReceivedQty)...)
	errs = append(errs, validateNonNegative(prefix+".requested_qty", ph.RequestedQty)...)
	if ph.PODate != nil && ph.PONumber == "" {
		errs = append(errs, fmt.Errorf("%s.po_date: set without po_number", prefix))
	}
	return errs
}

func validateDate(field string, s *string) []error {
	if s == nil || *s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, *s); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *s)}
	}
	return nil
}

func validateNonNegative(field string, v *int) []error {
	if v != nil && *v < 0 {
		return []error{fmt.Errorf("%s: %d must not be negative", field, *v)}
	}
	return nil
}
