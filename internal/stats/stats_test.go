package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/progress"
	"github.com/abhisek/kanaz/internal/store"
)

type fakeEvents struct {
	accs     []store.TypeAccuracyRecord
	sessions []store.SessionSummaryRecord
	err      error
	limit    int
}

func (f *fakeEvents) AppendRound(context.Context, store.RoundEventData) error     { return nil }
func (f *fakeEvents) AppendSession(context.Context, store.SessionEventData) error { return nil }
func (f *fakeEvents) CardStats(context.Context) ([]store.CardStatRecord, error)  { return nil, nil }

func (f *fakeEvents) TypeAccuracy(context.Context) ([]store.TypeAccuracyRecord, error) {
	return f.accs, f.err
}

func (f *fakeEvents) RecentSessions(_ context.Context, opts store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	f.limit = opts.Limit
	return f.sessions, nil
}

var cards = []corpus.Card{
	{ID: 0, Kana: "あ", Roumaji: "a", Type: corpus.TypeGojuuon},
	{ID: 1, Kana: "い", Roumaji: "i", Type: corpus.TypeGojuuon},
	{ID: 2, Kana: "が", Roumaji: "ga", Type: corpus.TypeDakuon},
	{ID: 3, Kana: "きゃ", Roumaji: "kya", Type: corpus.TypeYouon},
}

func testRecords() progress.Records {
	recs := progress.Defaults(cards, time.Unix(0, 0))
	recs[1].Weight = 2.5
	recs[1].Mistakes = 4
	recs[1].Corrects = 1
	recs[2].Weight = 2.5
	recs[2].Corrects = 3
	recs[3].Weight = 0.5
	return recs
}

func TestCardRowsSortedByWeight(t *testing.T) {
	rows := CardRows(cards, testRecords())
	require.Len(t, rows, 4)

	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	// Ties on 2.5 keep corpus order.
	assert.Equal(t, []int{1, 2, 0, 3}, ids)
	assert.Equal(t, "い", rows[0].Kana)
	assert.Equal(t, 4, rows[0].Mistakes)
}

func TestTypeRowsFromRecords(t *testing.T) {
	rows := TypeRowsFromRecords(cards, testRecords())
	require.Len(t, rows, 3)

	assert.Equal(t, corpus.TypeGojuuon, rows[0].Type)
	assert.Equal(t, 5, rows[0].Attempts)
	assert.InDelta(t, 0.2, rows[0].Accuracy(), 1e-9)
	assert.Equal(t, 3, rows[1].Attempts)
	assert.InDelta(t, 1.0, rows[1].Accuracy(), 1e-9)
	assert.Zero(t, rows[2].Accuracy())
}

func TestBuildWithoutEvents(t *testing.T) {
	rep, err := Build(context.Background(), cards, testRecords(), nil, 5)
	require.NoError(t, err)
	assert.Len(t, rep.Cards, 4)
	assert.Len(t, rep.Types, 3)
	assert.Empty(t, rep.Sessions)
}

func TestBuildWithEvents(t *testing.T) {
	ev := &fakeEvents{
		accs: []store.TypeAccuracyRecord{
			{CardType: "dakuon", Attempts: 4, Corrects: 3},
		},
		sessions: []store.SessionSummaryRecord{{SessionID: "s1", Rounds: 10}},
	}

	rep, err := Build(context.Background(), cards, testRecords(), ev, 7)
	require.NoError(t, err)

	require.Len(t, rep.Types, 3)
	assert.Equal(t, TypeRow{Type: corpus.TypeGojuuon}, rep.Types[0], "types without events are zero")
	assert.Equal(t, TypeRow{Type: corpus.TypeDakuon, Attempts: 4, Corrects: 3}, rep.Types[1])
	assert.Equal(t, 7, ev.limit)
	require.Len(t, rep.Sessions, 1)
	assert.Equal(t, "s1", rep.Sessions[0].SessionID)
}

func TestBuildEventError(t *testing.T) {
	ev := &fakeEvents{err: errors.New("db closed")}
	rep, err := Build(context.Background(), cards, testRecords(), ev, 5)
	assert.Error(t, err)
	assert.Len(t, rep.Cards, 4, "card rows are still returned")
}
