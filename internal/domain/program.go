package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{2,6}[0-9]{2,4}$`)

// Program groups the parts of one product programme together with its gate
// sequence.
type Program struct {
	ID        string
	ShortID   string
	Name      string
	Gates     GateSequence
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 2-6 uppercase letters followed by 2-4 digits (e.g. AX100, HUB2026).
func (p *Program) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 2-6 uppercase letters followed by 2-4 digits (e.g. AX100)", p.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
func (p *Program) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
