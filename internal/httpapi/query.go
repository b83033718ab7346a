package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/leadtime/internal/app"
	"github.com/alexanderramin/leadtime/internal/domain"
)

type queryError struct {
	code  app.ScheduleErrorCode
	param string
	msg   string
}

func (e *queryError) Error() string {
	return fmt.Sprintf("query parameter %q: %s", e.param, e.msg)
}

func badQuery(param, format string, args ...any) *queryError {
	return &queryError{code: app.ScheduleErrInvalidFilter, param: param, msg: fmt.Sprintf(format, args...)}
}

// parseNow reads ?now=YYYY-MM-DD; absent means the server clock.
func parseNow(r *http.Request) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("now"))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return nil, badQuery("now", "expected YYYY-MM-DD, got %q", raw)
	}
	return &t, nil
}

func parseScheduleQuery(r *http.Request, programID string, defaultPPD float64) (app.ScheduleRequest, error) {
	q := r.URL.Query()
	req := app.NewScheduleRequest(programID)

	now, err := parseNow(r)
	if err != nil {
		return req, err
	}
	req.Now = now

	for _, s := range splitList(q["phase"]) {
		req.Phases = append(req.Phases, domain.Phase(s))
	}
	for _, s := range splitList(q["status"]) {
		req.Statuses = append(req.Statuses, domain.OrderStatus(s))
	}
	for _, s := range splitList(q["stage"]) {
		req.Stages = append(req.Stages, domain.PartStage(s))
	}

	if req.LateOnly, err = parseBool(q.Get("late"), "late", false); err != nil {
		return req, err
	}
	if req.EarlyOnly, err = parseBool(q.Get("early"), "early", false); err != nil {
		return req, err
	}
	if req.IncludeClosed, err = parseBool(q.Get("include_closed"), "include_closed", true); err != nil {
		return req, err
	}

	req.PixelsPerDay = defaultPPD
	if raw := q.Get("ppd"); raw != "" {
		ppd, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, badQuery("ppd", "expected a number, got %q", raw)
		}
		req.PixelsPerDay = ppd
	}
	if raw := q.Get("pad"); raw != "" {
		pad, err := strconv.Atoi(raw)
		if err != nil {
			return req, badQuery("pad", "expected whole days, got %q", raw)
		}
		req.PadDays = pad
	}
	return req, nil
}

// splitList accepts repeated parameters and comma-separated values.
func splitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func parseBool(raw, param string, fallback bool) (bool, error) {
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, badQuery(param, "expected true or false, got %q", raw)
	}
	return b, nil
}
