package domain

import (
	"fmt"
	"time"
)

// GateKey names one program milestone. The declaration order of
// ProgramGateKeys is the program sequence.
type GateKey string

const (
	GateBriefed                GateKey = "briefed"
	GateDesignIntent           GateKey = "design-intent"
	GateDesignApproval         GateKey = "design-approval"
	GateDesignTransfer         GateKey = "design-transfer"
	GateSprint                 GateKey = "sprint"
	GateDesignTransferLine     GateKey = "design-transfer-line"
	GateMassProduction         GateKey = "mass-production"
	GateDesignTransferComplete GateKey = "design-transfer-complete"
)

// ProgramGateKeys lists every gate in program order.
var ProgramGateKeys = []GateKey{
	GateBriefed,
	GateDesignIntent,
	GateDesignApproval,
	GateDesignTransfer,
	GateSprint,
	GateDesignTransferLine,
	GateMassProduction,
	GateDesignTransferComplete,
}

var gateLabels = map[GateKey]string{
	GateBriefed:                "Briefed",
	GateDesignIntent:           "Design Intent",
	GateDesignApproval:         "Design Approval",
	GateDesignTransfer:         "Design Transfer",
	GateSprint:                 "Sprint",
	GateDesignTransferLine:     "Design Transfer (Line)",
	GateMassProduction:         "Mass Production",
	GateDesignTransferComplete: "Design Transfer Complete",
}

// Rank returns the position of k in the program sequence, or -1 when unknown.
func (k GateKey) Rank() int {
	for i, key := range ProgramGateKeys {
		if key == k {
			return i
		}
	}
	return -1
}

// Label returns the display name of the gate.
func (k GateKey) Label() string {
	if l, ok := gateLabels[k]; ok {
		return l
	}
	return string(k)
}

// ParseGateKey validates s against the known gate keys.
func ParseGateKey(s string) (GateKey, error) {
	k := GateKey(s)
	if k.Rank() < 0 {
		return "", fmt.Errorf("unknown gate %q", s)
	}
	return k, nil
}

type Gate struct {
	Key  GateKey
	Date *time.Time
}

// GateSequence holds one entry per known gate, always in program order.
// A gate may be undated while later gates are dated.
type GateSequence []Gate

// NewGateSequence builds a full sequence from a sparse set of gates.
// Unknown keys are dropped; later duplicates win; missing keys are undated.
func NewGateSequence(gates ...Gate) GateSequence {
	byKey := make(map[GateKey]*time.Time, len(gates))
	for _, g := range gates {
		if g.Key.Rank() < 0 {
			continue
		}
		byKey[g.Key] = g.Date
	}
	seq := make(GateSequence, len(ProgramGateKeys))
	for i, k := range ProgramGateKeys {
		seq[i] = Gate{Key: k, Date: byKey[k]}
	}
	return seq
}

// Date returns the date recorded for k, or nil.
func (s GateSequence) Date(k GateKey) *time.Time {
	for _, g := range s {
		if g.Key == k {
			return g.Date
		}
	}
	return nil
}

// AnyDated reports whether at least one gate carries a date.
func (s GateSequence) AnyDated() bool {
	for _, g := range s {
		if g.Date != nil {
			return true
		}
	}
	return false
}

// With returns a copy of s with k set to date (nil clears it).
func (s GateSequence) With(k GateKey, date *time.Time) GateSequence {
	out := NewGateSequence(s...)
	for i := range out {
		if out[i].Key == k {
			out[i].Date = date
		}
	}
	return out
}
