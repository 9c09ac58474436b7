package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// RoundEventData captures one resolved answer within a drill round.
// Incorrect attempts and the terminal outcome are each recorded.
type RoundEventData struct {
	SessionID   string
	CardID      int
	Kana        string
	CardType    string
	Tier        int
	Outcome     string
	Answer      string
	ElapsedMs   int64
	WeightAfter float64
	StreakAfter int
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID    string
	Action       string // "start" or "end"
	Tier         int
	Rounds       int
	Corrects     int
	Skips        int
	Mistakes     int
	BestStreak   int
	DurationSecs int
}

// SessionSummaryRecord is a finished session as read back for history views.
type SessionSummaryRecord struct {
	Sequence     int64     `db:"sequence"`
	Timestamp    time.Time `db:"-"`
	TimestampMs  int64     `db:"timestamp_ms"`
	SessionID    string    `db:"session_id"`
	Tier         int       `db:"tier"`
	Rounds       int       `db:"rounds"`
	Corrects     int       `db:"corrects"`
	Skips        int       `db:"skips"`
	Mistakes     int       `db:"mistakes"`
	BestStreak   int       `db:"best_streak"`
	DurationSecs int       `db:"duration_secs"`
}

// CardStatRecord aggregates the event log for one card.
type CardStatRecord struct {
	CardID       int     `db:"card_id"`
	Kana         string  `db:"kana"`
	Attempts     int     `db:"attempts"`
	Corrects     int     `db:"corrects"`
	Skips        int     `db:"skips"`
	Mistakes     int     `db:"mistakes"`
	AvgElapsedMs float64 `db:"avg_elapsed_ms"`
}

// TypeAccuracyRecord aggregates the event log for one card type.
type TypeAccuracyRecord struct {
	CardType string `db:"card_type"`
	Attempts int    `db:"attempts"`
	Corrects int    `db:"corrects"`
}

// Accuracy returns corrects / attempts, or 0 with no attempts.
func (r TypeAccuracyRecord) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Corrects) / float64(r.Attempts)
}

// EventRepo provides append and query access to drill events.
type EventRepo interface {
	// AppendRound records an answer event.
	AppendRound(ctx context.Context, data RoundEventData) error

	// AppendSession records a session start or end event.
	AppendSession(ctx context.Context, data SessionEventData) error

	// RecentSessions returns finished sessions, newest first.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// CardStats aggregates answer events per card, ordered by card ID.
	CardStats(ctx context.Context) ([]CardStatRecord, error)

	// TypeAccuracy aggregates answer events per card type.
	TypeAccuracy(ctx context.Context) ([]TypeAccuracyRecord, error)
}
