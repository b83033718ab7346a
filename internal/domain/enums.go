package domain

import "fmt"

type PartStage string

const (
	StageAdded       PartStage = "added"
	StagePending     PartStage = "pending"
	StageDesign      PartStage = "design"
	StageEngineering PartStage = "engineering"
	StageProcurement PartStage = "procurement"
	StageComplete    PartStage = "complete"
	StageOnHold      PartStage = "on_hold"
	StageCancelled   PartStage = "cancelled"
)

// ValidPartStages is the canonical set of accepted workflow stage strings.
var ValidPartStages = map[string]bool{
	"added": true, "pending": true, "design": true, "engineering": true,
	"procurement": true, "complete": true, "on_hold": true, "cancelled": true,
}

type FreightType string

const (
	FreightSea FreightType = "sea"
	FreightAir FreightType = "air"
)

// ValidFreightTypes is the canonical set of accepted freight type strings.
var ValidFreightTypes = map[string]bool{"sea": true, "air": true}

// Phase identifies one of the two procurement cycles tracked per part.
type Phase string

const (
	PhaseSprint     Phase = "sprint"
	PhaseProduction Phase = "production"
)

// Phases lists every phase in evaluation order.
var Phases = []Phase{PhaseSprint, PhaseProduction}

// Validate reports whether p is one of the known phases.
func (p Phase) Validate() error {
	switch p {
	case PhaseSprint, PhaseProduction:
		return nil
	default:
		return fmt.Errorf("unknown phase %q (expected sprint or production)", string(p))
	}
}

type OrderStatus string

const (
	OrderNoTarget   OrderStatus = "no_target"
	OrderNotOrdered OrderStatus = "not_ordered"
	OrderOrdered    OrderStatus = "ordered"
	OrderReceived   OrderStatus = "received"
)

// ValidOrderStatuses is the canonical set of accepted order status strings.
var ValidOrderStatuses = map[string]bool{
	"no_target": true, "not_ordered": true, "ordered": true, "received": true,
}
