package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/leadtime/internal/contract"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/spf13/pflag"
)

// dateFlag is a pflag.Value holding an optional calendar date.
type dateFlag struct {
	target **time.Time
}

var _ pflag.Value = (*dateFlag)(nil)

func newDateFlag(target **time.Time) *dateFlag {
	return &dateFlag{target: target}
}

func (f *dateFlag) String() string {
	if f.target == nil || *f.target == nil {
		return ""
	}
	return (*f.target).Format(domain.DateLayout)
}

func (f *dateFlag) Set(s string) error {
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	*f.target = &t
	return nil
}

func (f *dateFlag) Type() string { return "date" }

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return domain.DateOnly(t), nil
}

// scheduleFilters are the row filters shared by schedule and timeline.
type scheduleFilters struct {
	phases        []string
	statuses      []string
	stages        []string
	lateOnly      bool
	earlyOnly     bool
	excludeClosed bool
}

func (f *scheduleFilters) register(fs *pflag.FlagSet) {
	fs.StringSliceVar(&f.phases, "phase", nil, "Only these phases (sprint, production)")
	fs.StringSliceVar(&f.statuses, "status", nil, "Only these statuses (no_target, not_ordered, ordered, received)")
	fs.StringSliceVar(&f.stages, "stage", nil, "Only parts in these workflow stages")
	fs.BoolVar(&f.lateOnly, "late", false, "Only late phases")
	fs.BoolVar(&f.earlyOnly, "early", false, "Only phases that need an early order")
	fs.BoolVar(&f.excludeClosed, "open", false, "Skip complete and cancelled parts")
}

func (f *scheduleFilters) request(programID string, now *time.Time) contract.ScheduleRequest {
	req := contract.NewScheduleRequest(programID)
	req.Now = now
	for _, p := range f.phases {
		req.Phases = append(req.Phases, domain.Phase(strings.TrimSpace(p)))
	}
	for _, s := range f.statuses {
		req.Statuses = append(req.Statuses, domain.OrderStatus(strings.TrimSpace(s)))
	}
	for _, s := range f.stages {
		req.Stages = append(req.Stages, domain.PartStage(strings.TrimSpace(s)))
	}
	req.LateOnly = f.lateOnly
	req.EarlyOnly = f.earlyOnly
	req.IncludeClosed = !f.excludeClosed
	return req
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
