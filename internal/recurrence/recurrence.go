// Package recurrence decides on which calendar days a recurring rule fires.
// Every function here is pure.
package recurrence

import (
	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/models"
)

// IsDue reports whether the rule's frequency selects the given day. It ignores
// the rule's activity window; see IsActive and ShouldFire.
func IsDue(rule models.RecurringTransaction, on date.Date) bool {
	switch rule.Frequency {
	case models.Daily:
		return true

	case models.Weekly:
		// anchored on start_date's weekday, not on a fixed weekday
		days := on.DaysSince(rule.StartDate)
		return days >= 0 && days%7 == 0

	case models.Monthly:
		target := rule.StartDate.Day()
		if rule.DayOfMonth != nil {
			target = *rule.DayOfMonth
		}
		// day 31 fires on the 30th, 29th or 28th in shorter months
		actual := min(target, on.DaysInMonth())
		return on.Day() == actual

	case models.Yearly:
		// exact month/day: a Feb 29 anchor skips non-leap years
		return on.Month() == rule.StartDate.Month() && on.Day() == rule.StartDate.Day()
	}
	return false
}

// IsActive reports whether on lies inside [start_date, end_date].
func IsActive(rule models.RecurringTransaction, on date.Date) bool {
	if on.Before(rule.StartDate) {
		return false
	}
	return rule.EndDate == nil || !on.After(*rule.EndDate)
}

// ShouldFire reports whether the scheduler must materialize the rule on that day.
func ShouldFire(rule models.RecurringTransaction, on date.Date) bool {
	return IsActive(rule, on) && IsDue(rule, on)
}

// Occurrences lists the days in [from, to] on which the rule fires.
func Occurrences(rule models.RecurringTransaction, from, to date.Date) []date.Date {
	var out []date.Date
	if rule.StartDate.After(from) {
		from = rule.StartDate
	}
	if rule.EndDate != nil && rule.EndDate.Before(to) {
		to = *rule.EndDate
	}
	for d := from; !d.After(to); d = d.Add(1) {
		if IsDue(rule, d) {
			out = append(out, d)
		}
	}
	return out
}
