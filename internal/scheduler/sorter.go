package scheduler

import (
	"sort"

	"github.com/alexanderramin/leadtime/internal/domain"
)

// ScheduleEntry is one evaluated part phase in a batch.
type ScheduleEntry struct {
	PartID     string
	PartCode   string
	Status     StatusResult
	EarlyOrder bool
}

// UrgencyPriority returns a sort priority (lower = more urgent).
func UrgencyPriority(e ScheduleEntry) int {
	switch {
	case e.Status.IsLate:
		return 0
	case e.EarlyOrder:
		return 1
	case e.Status.Status == domain.OrderNotOrdered:
		return 2
	case e.Status.Status == domain.OrderOrdered:
		return 3
	case e.Status.Status == domain.OrderReceived:
		return 4
	default:
		return 5
	}
}

// CanonicalSort sorts entries by the deterministic canonical rules:
// 1. Urgency: late > early-order > not ordered > ordered > received > no target
// 2. Order-by date: earliest first (nil last)
// 3. Part code: lexical ascending
// 4. Phase: sprint before production
// 5. Part ID: lexical ascending
func CanonicalSort(entries []ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if pa, pb := UrgencyPriority(a), UrgencyPriority(b); pa != pb {
			return pa < pb
		}

		obA, obB := a.Status.OrderByDate, b.Status.OrderByDate
		if (obA == nil) != (obB == nil) {
			return obA != nil
		}
		if obA != nil && obB != nil && !obA.Equal(*obB) {
			return obA.Before(*obB)
		}

		if a.PartCode != b.PartCode {
			return a.PartCode < b.PartCode
		}

		if a.Status.Phase != b.Status.Phase {
			return phaseRank(a.Status.Phase) < phaseRank(b.Status.Phase)
		}

		return a.PartID < b.PartID
	})
}

func phaseRank(p domain.Phase) int {
	for i, ph := range domain.Phases {
		if ph == p {
			return i
		}
	}
	return len(domain.Phases)
}
