package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GeneratedProgram holds the domain objects produced from one import.
type GeneratedProgram struct {
	Program *domain.Program
	Parts   []*domain.Part
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*GeneratedProgram, error) {
	now := time.Now().UTC()

	gates := make([]domain.Gate, 0, len(schema.Gates))
	for _, g := range schema.Gates {
		gates = append(gates, domain.Gate{Key: domain.GateKey(g.Key), Date: parseOptionalDate(g.Date)})
	}

	program := &domain.Program{
		ID:        uuid.New().String(),
		ShortID:   strings.ToUpper(schema.Program.ShortID),
		Name:      schema.Program.Name,
		Gates:     domain.NewGateSequence(gates...),
		CreatedAt: now,
		UpdatedAt: now,
	}

	defaults := schema.Defaults
	if defaults == nil {
		defaults = &DefaultsImport{}
	}

	parts := make([]*domain.Part, 0, len(schema.Parts))
	for _, p := range schema.Parts {
		part := &domain.Part{
			ID:                uuid.New().String(),
			ProgramID:         program.ID,
			Code:              strings.TrimSpace(p.Code),
			FinalCode:         p.FinalCode,
			Description:       p.Description,
			GroupCode:         p.GroupCode,
			Stage:             domain.PartStage(domain.CoalesceStr(p.Stage, defaults.Stage, string(domain.StageAdded))),
			BaseLeadTimeDays:  p.BaseLeadTimeDays,
			LeadTimeWeeks:     p.LeadTimeWeeks,
			FreightType:       domain.FreightType(domain.CoalesceStr(p.FreightType, defaults.FreightType, string(domain.FreightSea))),
			SeaFreightDays:    firstInt(p.SeaFreightDays, defaults.SeaFreightDays),
			AirFreightDays:    firstInt(p.AirFreightDays, defaults.AirFreightDays),
			PAForecast:        p.PAForecast,
			ScrapRate:         p.ScrapRate,
			MassProductionQty: p.MassProductionQty,
			OrderTogether:     p.OrderTogether,
			NewSupplier:       p.NewSupplier,
			ColorTouchpoint:   p.ColorTouchpoint,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if p.AirPremium != nil {
			d, err := decimal.NewFromString(*p.AirPremium)
			if err != nil {
				return nil, fmt.Errorf("part %q: parsing air_premium: %w", p.Code, err)
			}
			part.AirPremium = decimal.NewNullDecimal(d)
		}
		convertPhase(p.Sprint, &part.Sprint)
		convertPhase(p.Production, &part.Production)
		parts = append(parts, part)
	}

	return &GeneratedProgram{Program: program, Parts: parts}, nil
}

func convertPhase(in *PhaseImport, out *domain.PhaseData) {
	if in == nil {
		return
	}
	out.TargetDate = parseOptionalDate(in.TargetDate)
	out.PONumber = strings.TrimSpace(in.PONumber)
	out.PODate = parseOptionalDate(in.PODate)
	out.Received = in.Received
	out.ReceivedQty = in.ReceivedQty
	out.RequestedQty = in.RequestedQty
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	return domain.ParseOptionalDate(*s)
}

func firstInt(vals ...*int) *int {
	for _, v := range vals {
		if v != nil {
			n := *v
			return &n
		}
	}
	return nil
}
