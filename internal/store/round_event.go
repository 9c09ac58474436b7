package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// eventRepo implements EventRepo on SQLite.
type eventRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) AppendRound(ctx context.Context, data RoundEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO round_events
		(sequence, timestamp_ms, session_id, card_id, kana, card_type, tier, outcome, answer, elapsed_ms, weight_after, streak_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.now().UnixMilli(), data.SessionID, data.CardID, data.Kana, data.CardType,
		data.Tier, data.Outcome, data.Answer, data.ElapsedMs, data.WeightAfter, data.StreakAfter,
	)
	if err != nil {
		return fmt.Errorf("save round event: %w", err)
	}
	return nil
}

func (r *eventRepo) CardStats(ctx context.Context) ([]CardStatRecord, error) {
	var stats []CardStatRecord
	err := r.db.SelectContext(ctx, &stats, `SELECT
			card_id,
			MAX(kana) AS kana,
			COUNT(*) AS attempts,
			SUM(outcome = 'correct') AS corrects,
			SUM(outcome = 'skipped') AS skips,
			SUM(outcome = 'incorrect') AS mistakes,
			COALESCE(AVG(CASE WHEN outcome != 'incorrect' THEN elapsed_ms END), 0) AS avg_elapsed_ms
		FROM round_events
		GROUP BY card_id
		ORDER BY card_id`)
	if err != nil {
		return nil, fmt.Errorf("query card stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) TypeAccuracy(ctx context.Context) ([]TypeAccuracyRecord, error) {
	var recs []TypeAccuracyRecord
	err := r.db.SelectContext(ctx, &recs, `SELECT
			card_type,
			COUNT(*) AS attempts,
			SUM(outcome = 'correct') AS corrects
		FROM round_events
		GROUP BY card_type
		ORDER BY card_type`)
	if err != nil {
		return nil, fmt.Errorf("query type accuracy: %w", err)
	}
	return recs, nil
}
