package services

import (
	"time"
)

// Deliveries happen on Thursdays; order validity windows are aligned to
// the delivery day rather than to raw timestamps.

// SameOrNextThursday returns t itself when it falls on a Thursday, and
// the next Thursday otherwise. The clock time is preserved.
func SameOrNextThursday(t time.Time) time.Time {
	days := (int(time.Thursday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, days)
}

// SameOrPreviousThursday returns t itself when it falls on a Thursday,
// and the previous Thursday otherwise.
func SameOrPreviousThursday(t time.Time) time.Time {
	days := (int(t.Weekday()) - int(time.Thursday) + 7) % 7
	return t.AddDate(0, 0, -days)
}

// CountThursdaysBetween counts the delivery days in [start, end): a
// Thursday on the start date counts, one on the end date does not.
func CountThursdaysBetween(start, end time.Time) int {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)
	if !startDay.Before(endDay) {
		return 0
	}

	count := 0
	for day := SameOrNextThursday(startDay); day.Before(endDay); day = day.AddDate(0, 0, 7) {
		count++
	}
	return count
}

// CountCalendarMonths counts the distinct calendar months an interval
// touches: a range within one month counts one, December 31st to January
// 1st counts two. The order of the arguments does not matter.
func CountCalendarMonths(a, b time.Time) int {
	first := a.Year()*12 + int(a.Month())
	second := b.Year()*12 + int(b.Month())
	if first > second {
		first, second = second, first
	}
	return second - first + 1
}

// OrderValidMonths returns the number of season months an order starting
// at validFrom is valid for, capped at twelve. A zero validFrom means the
// order covers the whole season.
func OrderValidMonths(validFrom, seasonEnd time.Time) int {
	if validFrom.IsZero() {
		return 12
	}
	if !validFrom.Before(seasonEnd) {
		return 1
	}
	months := CountCalendarMonths(validFrom, seasonEnd)
	if months > 12 {
		months = 12
	}
	if months < 1 {
		months = 1
	}
	return months
}

// NewOrderValidFrom computes when an order modification decided during a
// bidding round takes effect: the Friday before the first Thursday of the
// month following endBiddingRound, at midnight.
func NewOrderValidFrom(endBiddingRound time.Time) time.Time {
	firstOfNextMonth := time.Date(endBiddingRound.Year(), endBiddingRound.Month(), 1,
		0, 0, 0, 0, endBiddingRound.Location()).AddDate(0, 1, 0)
	firstThursday := SameOrNextThursday(firstOfNextMonth)
	return firstThursday.AddDate(0, 0, -6)
}

// PreviousOrderValidTo returns the instant the predecessor order expires
// when a new chain link starts at newValidFrom: the last millisecond of
// the preceding day.
func PreviousOrderValidTo(newValidFrom time.Time) time.Time {
	return truncateToDay(newValidFrom).Add(-time.Millisecond)
}

// IsDateInRange reports whether t lies in [from, to); a nil boundary is
// unbounded.
func IsDateInRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
