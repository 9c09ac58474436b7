package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/corpus"
)

// FileName is the progress file name inside the data directory.
const FileName = "userdata.json"

// counter mirrors the {"alltime": n} objects of the progress file.
type counter struct {
	AllTime int `json:"alltime"`
}

type fileRecord struct {
	Weight         float64 `json:"weight"`
	Type           string  `json:"type"`
	LastPractice   float64 `json:"lastPractice"`
	TimesPracticed int     `json:"timesPracticed"`
	Mistakes       counter `json:"mistakes"`
	Corrects       counter `json:"corrects"`
}

type progressFile struct {
	Data map[string]fileRecord `json:"data"`
}

// Store loads and saves the learner's records as a single JSON snapshot.
// Saves overwrite the whole file and are not atomic.
type Store struct {
	path   string
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp default records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store for the progress file at path.
func NewStore(path string, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{path: path, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the progress file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns one record per card. A missing file is initialized with
// defaults. A corrupted file is logged and replaced with defaults; its
// contents are lost.
func (s *Store) Load(cards []corpus.Card) (Records, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("progress file missing, initializing defaults", zap.String("path", s.path))
			return s.Reset(cards)
		}
		return nil, fmt.Errorf("read progress %s: %w", s.path, err)
	}

	recs, err := decode(raw)
	if err != nil {
		s.logger.Warn("progress file corrupted, re-initializing defaults",
			zap.String("path", s.path), zap.Error(err))
		return s.Reset(cards)
	}

	return s.reconcile(recs, cards), nil
}

// Save writes the full record set to disk.
func (s *Store) Save(recs Records) error {
	raw, err := encode(recs)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write progress %s: %w", s.path, err)
	}
	return nil
}

// Reset overwrites the progress file with default records for cards.
func (s *Store) Reset(cards []corpus.Card) (Records, error) {
	recs := Defaults(cards, s.now())
	if err := s.Save(recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// reconcile drops records without a card and adds defaults for new cards.
func (s *Store) reconcile(recs Records, cards []corpus.Card) Records {
	known := make(map[int]bool, len(cards))
	for _, c := range cards {
		known[c.ID] = true
		rec, ok := recs[c.ID]
		if !ok {
			recs[c.ID] = NewDefaultRecord(c, s.now())
			continue
		}
		if rec.Type != c.Type {
			s.logger.Debug("correcting record type",
				zap.Int("card_id", c.ID), zap.String("was", string(rec.Type)), zap.String("now", string(c.Type)))
			rec.Type = c.Type
		}
	}
	for id := range recs {
		if !known[id] {
			s.logger.Debug("dropping progress for unknown card", zap.Int("card_id", id))
			delete(recs, id)
		}
	}
	return recs
}

func decode(raw []byte) (Records, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var f progressFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}

	recs := make(Records, len(f.Data))
	for key, fr := range f.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("record key %q: %w", key, err)
		}
		t, err := corpus.ParseType(fr.Type)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", id, err)
		}
		recs[id] = &Record{
			Weight:         fr.Weight,
			Type:           t,
			LastPractice:   fromEpoch(fr.LastPractice),
			TimesPracticed: fr.TimesPracticed,
			Mistakes:       fr.Mistakes.AllTime,
			Corrects:       fr.Corrects.AllTime,
		}
	}
	return recs, nil
}

func encode(recs Records) ([]byte, error) {
	f := progressFile{Data: make(map[string]fileRecord, len(recs))}
	for id, r := range recs {
		f.Data[strconv.Itoa(id)] = fileRecord{
			Weight:         r.Weight,
			Type:           string(r.Type),
			LastPractice:   toEpoch(r.LastPractice),
			TimesPracticed: r.TimesPracticed,
			Mistakes:       counter{AllTime: r.Mistakes},
			Corrects:       counter{AllTime: r.Corrects},
		}
	}
	return json.MarshalIndent(f, "", "    ")
}

func toEpoch(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

func fromEpoch(sec float64) time.Time {
	return time.UnixMilli(int64(math.Round(sec * 1000))).UTC()
}
