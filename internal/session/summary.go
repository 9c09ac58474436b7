package session

import "time"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID  string
	Tier       int
	Duration   time.Duration
	Rounds     int
	Corrects   int
	Skips      int
	Mistakes   int
	BestStreak int
	Accuracy   float64
}

// buildSummary derives a Summary from the session counters.
// Accuracy is corrects over closed rounds.
func buildSummary(s *Session) Summary {
	var accuracy float64
	if s.rounds > 0 {
		accuracy = float64(s.corrects) / float64(s.rounds)
	}

	var d time.Duration
	if !s.startedAt.IsZero() {
		end := s.endedAt
		if end.IsZero() {
			end = s.now()
		}
		d = end.Sub(s.startedAt)
	}

	return Summary{
		SessionID:  s.ID,
		Tier:       int(s.Tier),
		Duration:   d,
		Rounds:     s.rounds,
		Corrects:   s.corrects,
		Skips:      s.skips,
		Mistakes:   s.mistakes,
		BestStreak: s.bestStreak,
		Accuracy:   accuracy,
	}
}
