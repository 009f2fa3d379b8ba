package catalog

import "sort"

func showtimeKey(s Showtime) string {
	return s.Date + " " + s.Time
}

// MergeShowtimes unions two showtime lists keyed by (date, time). When both
// lists hold the same slot, base's copy survives; base is the
// higher-precedence (manual) side. The result is a fresh slice sorted
// ascending by date then time.
func MergeShowtimes(base, incoming []Showtime) []Showtime {
	seen := make(map[string]Showtime, len(base)+len(incoming))
	for _, s := range base {
		if _, ok := seen[showtimeKey(s)]; !ok {
			seen[showtimeKey(s)] = s
		}
	}
	for _, s := range incoming {
		if _, ok := seen[showtimeKey(s)]; !ok {
			seen[showtimeKey(s)] = s
		}
	}

	merged := make([]Showtime, 0, len(seen))
	for _, s := range seen {
		merged = append(merged, s)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Date != merged[j].Date {
			return merged[i].Date < merged[j].Date
		}
		return merged[i].Time < merged[j].Time
	})
	return merged
}

// FilterFuture keeps only showtimes on or after today. Both sides are
// ISO-8601 date strings, so the comparison is a plain string compare; a
// screening today still counts as future.
func FilterFuture(showtimes []Showtime, today string) []Showtime {
	future := make([]Showtime, 0, len(showtimes))
	for _, s := range showtimes {
		if s.Date >= today {
			future = append(future, s)
		}
	}
	return future
}

// HasFuture reports whether the movie still has at least one screening on or
// after today. Movies without one are expired and dropped from the catalog.
func (m Movie) HasFuture(today string) bool {
	for _, s := range m.Showtimes {
		if s.Date >= today {
			return true
		}
	}
	return false
}
