package models

import "time"

// History is the in-memory lift list, in the order the backend returned it.
type History []Lift

// Count returns the number of logged lifts.
func (h History) Count() int {
	return len(h)
}

// ThisMonth counts lifts dated in the same calendar month and year as now.
//
// Entries with unparsable dates are not counted.
func (h History) ThisMonth(now time.Time) int {
	count := 0
	for _, l := range h {
		day, err := l.Day()
		if err != nil {
			continue
		}
		if day.Year() == now.Year() && day.Month() == now.Month() {
			count++
		}
	}
	return count
}

// MaxWeight returns the heaviest weight across all lifts, or 0 when empty.
func (h History) MaxWeight() float64 {
	max := 0.0
	for _, l := range h {
		if l.Weight > max {
			max = l.Weight
		}
	}
	return max
}

// Best returns the heaviest lift of the given type.
func (h History) Best(t LiftType) (Lift, bool) {
	var best Lift
	found := false
	for _, l := range h {
		if l.LiftType != t {
			continue
		}
		if !found || l.Weight > best.Weight {
			best = l
			found = true
		}
	}
	return best, found
}

// Latest returns the lift with the most recent date.
func (h History) Latest() (Lift, bool) {
	var latest Lift
	var latestDay time.Time
	found := false
	for _, l := range h {
		day, err := l.Day()
		if err != nil {
			continue
		}
		if !found || day.After(latestDay) {
			latest, latestDay = l, day
			found = true
		}
	}
	return latest, found
}

// Summary holds the dashboard statistics.
type Summary struct {
	Count     int     `json:"count"`
	ThisMonth int     `json:"thisMonth"`
	MaxWeight float64 `json:"maxWeight"`
	Best      []Lift  `json:"best,omitempty"`
}

// Summarize computes the dashboard statistics at the given moment.
func (h History) Summarize(now time.Time) Summary {
	s := Summary{
		Count:     h.Count(),
		ThisMonth: h.ThisMonth(now),
		MaxWeight: h.MaxWeight(),
	}
	for _, t := range LiftTypes {
		if best, ok := h.Best(t); ok {
			s.Best = append(s.Best, best)
		}
	}
	return s
}
