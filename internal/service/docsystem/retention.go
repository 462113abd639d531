package docsystem

import "time"

// DaysRemaining reports how many whole-or-partial days a trashed document
// has left before it is purge-eligible. A partial day counts as a full day
// (ceiling); once the retention window has elapsed the result is 0, never
// negative.
func DaysRemaining(deletedAt time.Time, retentionDays int, now time.Time) int {
	deadline := deletedAt.AddDate(0, 0, retentionDays)
	if !now.Before(deadline) {
		return 0
	}

	remaining := deadline.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// IsPurgeEligible reports whether a document trashed at deletedAt has been
// in the trash for at least retentionDays.
func IsPurgeEligible(deletedAt time.Time, retentionDays int, now time.Time) bool {
	return DaysRemaining(deletedAt, retentionDays, now) == 0
}
