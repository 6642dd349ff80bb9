package todo

import "time"

// Stats aggregates timeline data for the summary panel.
type Stats struct {
	Today     time.Duration
	Yesterday time.Duration
	Total     time.Duration
	Streak    int
	Done      int
	Items     int
}

// Stats walks every item's timeline and computes the daily figures.
func (s *Store) Stats() Stats {
	out := Stats{Items: len(s.items)}
	now := s.now()
	today := now.Format(dayLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dayLayout)

	days := make(map[string]bool)
	for _, it := range s.items {
		if it.Done {
			out.Done++
		}
		out.Total += it.Logged
		for _, ws := range it.Timeline {
			days[ws.Day] = true
			switch ws.Day {
			case today:
				out.Today += ws.Logged
			case yesterday:
				out.Yesterday += ws.Logged
			}
		}
	}

	for cursor := now; ; cursor = cursor.AddDate(0, 0, -1) {
		if !days[cursor.Format(dayLayout)] {
			break
		}
		out.Streak++
	}
	return out
}
