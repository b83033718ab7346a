package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a program snapshot.
type ImportSchema struct {
	Program  ProgramImport   `json:"program"`
	Defaults *DefaultsImport `json:"defaults,omitempty"`
	Gates    []GateImport    `json:"gates,omitempty"`
	Parts    []PartImport    `json:"parts"`
}

type ProgramImport struct {
	ShortID string `json:"short_id"`
	Name    string `json:"name"`
}

// DefaultsImport holds program-wide values that cascade to parts which leave
// them unset.
type DefaultsImport struct {
	Stage          string `json:"stage,omitempty"`
	FreightType    string `json:"freight_type,omitempty"`
	SeaFreightDays *int   `json:"sea_freight_days,omitempty"`
	AirFreightDays *int   `json:"air_freight_days,omitempty"`
}

type GateImport struct {
	Key  string  `json:"key"`
	Date *string `json:"date,omitempty"`
}

// PhaseImport holds the order facts of one phase.
type PhaseImport struct {
	TargetDate   *string `json:"target_date,omitempty"`
	PONumber     string  `json:"po_number,omitempty"`
	PODate       *string `json:"po_date,omitempty"`
	Received     bool    `json:"received,omitempty"`
	ReceivedQty  *int    `json:"received_qty,omitempty"`
	RequestedQty *int    `json:"requested_qty,omitempty"`
}

type PartImport struct {
	Code              string       `json:"code"`
	FinalCode         string       `json:"final_code,omitempty"`
	Description       string       `json:"description,omitempty"`
	GroupCode         string       `json:"group_code,omitempty"`
	Stage             string       `json:"stage,omitempty"`
	Sprint            *PhaseImport `json:"sprint,omitempty"`
	Production        *PhaseImport `json:"production,omitempty"`
	BaseLeadTimeDays  *int         `json:"base_lead_time_days,omitempty"`
	LeadTimeWeeks     string       `json:"lead_time_weeks,omitempty"`
	FreightType       string       `json:"freight_type,omitempty"`
	SeaFreightDays    *int         `json:"sea_freight_days,omitempty"`
	AirFreightDays    *int         `json:"air_freight_days,omitempty"`
	AirPremium        *string      `json:"air_premium,omitempty"`
	PAForecast        *int         `json:"pa_forecast,omitempty"`
	ScrapRate         *float64     `json:"scrap_rate,omitempty"`
	MassProductionQty *int         `json:"mass_production_qty,omitempty"`
	OrderTogether     bool         `json:"order_together,omitempty"`
	NewSupplier       bool         `json:"new_supplier,omitempty"`
	ColorTouchpoint   bool         `json:"color_touchpoint,omitempty"`
}

// LoadImportSchema reads and parses a program import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
