// Package sla computes response and resolution deadlines for grievances.
//
// Budgets are expressed in effective hours: the deadline is found by stepping
// forward one hour at a time from the starting instant, and an hour only
// consumes budget when it does not land on the weekly rest day. The rest-day
// exclusion is therefore hour-granular, not a whole-day calendar skip, which
// matters for windows that cross midnight into or out of the rest day.
package sla

import (
	"time"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// RestDay is the weekly day whose hours never consume deadline budget.
const RestDay = time.Sunday

// Budget holds the effective-hour budgets for one urgency level.
type Budget struct {
	ResponseHours   int
	ResolutionHours int
}

var budgets = map[domain.Urgency]Budget{
	domain.UrgencyEmergency: {ResponseHours: 6, ResolutionHours: 24},
	domain.UrgencyHigh:      {ResponseHours: 36, ResolutionHours: 72},
	domain.UrgencyNormal:    {ResponseHours: 60, ResolutionHours: 120},
}

// BudgetFor returns the budget for an urgency, defaulting to Normal for
// unknown values.
func BudgetFor(urgency domain.Urgency) Budget {
	if b, ok := budgets[urgency]; ok {
		return b
	}
	return budgets[domain.UrgencyNormal]
}

// Deadlines computes both deadlines for the given urgency starting from now.
// Each deadline is stepped independently from now, not chained.
func Deadlines(urgency domain.Urgency, now time.Time) (response, resolution time.Time) {
	b := BudgetFor(urgency)
	return AddEffectiveHours(now, b.ResponseHours), AddEffectiveHours(now, b.ResolutionHours)
}

// DeadlinesForDays computes deadlines from a staff-supplied day count, as
// used by revert operations: the resolution budget is days*24 effective
// hours and the response budget is half of that.
func DeadlinesForDays(days int, now time.Time) (response, resolution time.Time) {
	resolutionHours := days * 24
	responseHours := resolutionHours / 2
	return AddEffectiveHours(now, responseHours), AddEffectiveHours(now, resolutionHours)
}

// AddEffectiveHours advances from start one hour at a time until the budget
// of non-rest-day hours is spent.
func AddEffectiveHours(start time.Time, hours int) time.Time {
	deadline := start
	remaining := hours
	for remaining > 0 {
		deadline = deadline.Add(time.Hour)
		if deadline.Weekday() != RestDay {
			remaining--
		}
	}
	return deadline
}
