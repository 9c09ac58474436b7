package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, timestamp_ms, session_id, action, tier, rounds, corrects, skips, mistakes, best_streak, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.now().UnixMilli(), data.SessionID, data.Action, data.Tier, data.Rounds,
		data.Corrects, data.Skips, data.Mistakes, data.BestStreak, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	where := []string{"action = 'end'"}
	var args []any
	if !opts.From.IsZero() {
		where = append(where, "timestamp_ms >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp_ms <= ?")
		args = append(args, opts.To.UnixMilli())
	}

	query := `SELECT sequence, timestamp_ms, session_id, tier, rounds, corrects, skips, mistakes, best_streak, duration_secs
		FROM session_events WHERE ` + strings.Join(where, " AND ") + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	var recs []SessionSummaryRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	for i := range recs {
		recs[i].Timestamp = time.UnixMilli(recs[i].TimestampMs)
	}
	return recs, nil
}
