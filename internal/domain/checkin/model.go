package checkin

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// DayEntry is one ledger row: the cumulative check-in state of a single
// calendar day. The tail entry is mutated in place until the date advances;
// older entries are immutable history.
type DayEntry struct {
	Date     string `json:"date"`
	DOTW     string `json:"dotw"`
	Counter  int    `json:"counter"`
	Delta    int    `json:"count_since_yesterday"`
	Time     string `json:"time"`
	PrevDate string `json:"last_date,omitempty"`
	PrevTime string `json:"last_time,omitempty"`
}

// Ledger is the ordered day-keyed history, oldest first. At most one entry
// exists per distinct date and counters never decrease across the sequence.
type Ledger []DayEntry

// Seed builds the single bootstrap entry used when no persisted ledger
// exists: today's date, counter 0, delta 0.
func Seed(now time.Time) DayEntry {
	return DayEntry{
		Date: now.Format(dateLayout),
		DOTW: now.Weekday().String(),
		Time: now.Format(timeLayout),
	}
}

// Stamp renders the entry's last visit as "15:04:05 - Monday, 2006-01-02".
func (e DayEntry) Stamp() string {
	return fmt.Sprintf("%s - %s, %s", e.Time, e.DOTW, e.Date)
}

func stampTime(now time.Time) string {
	return fmt.Sprintf("%s - %s, %s",
		now.Format(timeLayout), now.Weekday().String(), now.Format(dateLayout))
}

// VisitSummary is the payload for an accepted check-in.
type VisitSummary struct {
	Message  string `json:"message"`
	Time     string `json:"time"`
	LastTime string `json:"last_time"`
	Counter  int    `json:"counter"`
}

// Rejection is the read-only projection of the ledger tail returned when the
// cooldown gate denies a visit.
type Rejection struct {
	Message      string `json:"message"`
	CurrentCount int    `json:"current_count"`
	LastTime     string `json:"last_time"`
}
