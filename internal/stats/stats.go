// Package stats assembles the per-card and per-type views shown by the
// stats screen and the stats command.
package stats

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/progress"
	"github.com/abhisek/kanaz/internal/store"
)

// CardRow is one line of the card table.
type CardRow struct {
	ID        int
	Kana      string
	Roumaji   string
	Type      corpus.Type
	Weight    float64
	Practiced int
	Mistakes  int
	Corrects  int
}

// TypeRow is the accuracy for one card type.
type TypeRow struct {
	Type     corpus.Type
	Attempts int
	Corrects int
}

// Accuracy returns corrects / attempts, or 0 with no attempts.
func (r TypeRow) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Corrects) / float64(r.Attempts)
}

// Report bundles everything the stats views render.
type Report struct {
	Cards    []CardRow
	Types    []TypeRow
	Sessions []store.SessionSummaryRecord
}

// CardRows lists every card with its record, heaviest first. Ties keep
// corpus order.
func CardRows(cards []corpus.Card, recs progress.Records) []CardRow {
	rows := make([]CardRow, 0, len(cards))
	for _, c := range cards {
		row := CardRow{ID: c.ID, Kana: c.Kana, Roumaji: c.Roumaji, Type: c.Type}
		if r := recs[c.ID]; r != nil {
			row.Weight = r.Weight
			row.Practiced = r.TimesPracticed
			row.Mistakes = r.Mistakes
			row.Corrects = r.Corrects
		}
		rows = append(rows, row)
	}
	slices.SortStableFunc(rows, func(a, b CardRow) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return rows
}

// TypeRowsFromRecords derives per-type accuracy from the progress counters,
// counting every correct and every mistake as an attempt.
func TypeRowsFromRecords(cards []corpus.Card, recs progress.Records) []TypeRow {
	byType := make(map[corpus.Type]*TypeRow, len(corpus.AllTypes))
	for _, t := range corpus.AllTypes {
		byType[t] = &TypeRow{Type: t}
	}
	for _, c := range cards {
		r := recs[c.ID]
		row := byType[c.Type]
		if r == nil || row == nil {
			continue
		}
		row.Attempts += r.Corrects + r.Mistakes
		row.Corrects += r.Corrects
	}

	rows := make([]TypeRow, 0, len(byType))
	for _, t := range corpus.AllTypes {
		rows = append(rows, *byType[t])
	}
	return rows
}

// Build assembles a report. Type accuracy and session history come from
// the event log when events is non-nil; otherwise accuracy falls back to
// the progress counters and history is empty.
func Build(ctx context.Context, cards []corpus.Card, recs progress.Records, events store.EventRepo, sessionLimit int) (Report, error) {
	rep := Report{Cards: CardRows(cards, recs)}

	if events == nil {
		rep.Types = TypeRowsFromRecords(cards, recs)
		return rep, nil
	}

	accs, err := events.TypeAccuracy(ctx)
	if err != nil {
		return rep, fmt.Errorf("type accuracy: %w", err)
	}
	found := make(map[corpus.Type]store.TypeAccuracyRecord, len(accs))
	for _, a := range accs {
		found[corpus.Type(a.CardType)] = a
	}
	for _, t := range corpus.AllTypes {
		a := found[t]
		rep.Types = append(rep.Types, TypeRow{Type: t, Attempts: a.Attempts, Corrects: a.Corrects})
	}

	rep.Sessions, err = events.RecentSessions(ctx, store.QueryOpts{Limit: sessionLimit})
	if err != nil {
		return rep, fmt.Errorf("recent sessions: %w", err)
	}
	return rep, nil
}
