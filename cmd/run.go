package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/app"
	"github.com/abhisek/kanaz/internal/config"
	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/difficulty"
	"github.com/abhisek/kanaz/internal/drill"
	"github.com/abhisek/kanaz/internal/logger"
	"github.com/abhisek/kanaz/internal/progress"
	"github.com/abhisek/kanaz/internal/session"
	"github.com/abhisek/kanaz/internal/store"
)

// env is what every command needs: settings, a logger, the corpus and the
// learner's progress.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	cards    []corpus.Card
	progress *progress.Store
	records  progress.Records
}

func (e *env) close() {
	_ = e.logger.Sync()
}

// bootstrap loads config, sets up logging and reads corpus and progress.
// With console set, --debug logs go to the command's stderr instead of
// the log file; the TUI owns the terminal, so it never sets console.
func bootstrap(ctx context.Context, cmd *cobra.Command, console bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Debug:   cfg.Debug,
		Path:    cfg.LogPath(),
		Console: console && cfg.Debug,
		Writer:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	log.Debug("config loaded",
		zap.String("data_dir", cfg.DataDir),
		zap.Int("tier", cfg.Tier),
		zap.Bool("save", cfg.Save))

	cards, err := corpus.NewLoader(cfg.CorpusPath(), cfg.CorpusURL,
		corpus.WithTimeout(cfg.CorpusTimeout),
		corpus.WithLogger(log),
	).Load(ctx)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	ps := progress.NewStore(cfg.ProgressPath(), log)
	recs, err := ps.Load(cards)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("load progress: %w", err)
	}

	return &env{cfg: cfg, logger: log, cards: cards, progress: ps, records: recs}, nil
}

// openStore opens the event database under the data directory.
func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath()
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// runApp builds the scheduler and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := bootstrap(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer e.close()

	sched, err := drill.NewScheduler(e.cards, e.records, drill.WithParams(e.cfg.Params()))
	if err != nil {
		return fmt.Errorf("build scheduler: %w", err)
	}

	// The event log is optional; a broken database must not block drilling.
	var events store.EventRepo
	st, err := openStore(e.cfg)
	if err != nil {
		e.logger.Warn("event log unavailable", zap.Error(err))
	} else {
		defer st.Close()
		events = st.EventRepo()
	}

	newSession := func(tier difficulty.Tier) (*session.Session, error) {
		return session.New(session.Options{
			Tier:      tier,
			Scheduler: sched,
			Progress:  e.progress,
			Save:      e.cfg.Save,
			Events:    events,
			Logger:    e.logger,
		})
	}

	e.logger.Info("starting", zap.Int("cards", len(e.cards)), zap.Bool("events", events != nil))
	return app.Run(ctx, app.Options{
		Scheduler:   sched,
		Events:      events,
		DefaultTier: e.cfg.DrillTier(),
		NewSession:  newSession,
		Logger:      e.logger,
	})
}
