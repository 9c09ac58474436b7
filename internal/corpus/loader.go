package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// DefaultURL is the remote copy of the hiragana corpus.
const DefaultURL = "https://raw.githubusercontent.com/wired32/flashcards/refs/heads/main/data/hiragana.json"

// FileName is the local corpus file name inside the data directory.
const FileName = "hiragana.json"

// DefaultTimeout bounds the remote fetch.
const DefaultTimeout = 30 * time.Second

// ErrFetch wraps every failure of the remote fallback. It is fatal to corpus loading.
var ErrFetch = errors.New("fetch corpus")

// Loader reads the card corpus from disk, bootstrapping it from a remote
// source when the local copy is missing or unusable.
type Loader struct {
	path   string
	url    string
	client *http.Client
	logger *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient overrides the HTTP client used for the remote fetch.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.client = &http.Client{Timeout: d} }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader for the corpus file at path with url as the remote fallback.
func NewLoader(path, url string, opts ...Option) *Loader {
	l := &Loader{
		path:   path,
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the local corpus file path.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the corpus. A missing or unparsable local file is replaced by
// the remote copy; if that fetch fails the error wraps ErrFetch.
func (l *Loader) Load(ctx context.Context) ([]Card, error) {
	raw, err := os.ReadFile(l.path)
	switch {
	case err == nil:
		cards, perr := Parse(raw)
		if perr == nil {
			return cards, nil
		}
		l.logger.Warn("local corpus unusable, fetching remote copy",
			zap.String("path", l.path), zap.Error(perr))
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Info("local corpus missing, fetching remote copy", zap.String("path", l.path))
	default:
		return nil, fmt.Errorf("read corpus %s: %w", l.path, err)
	}

	return l.fetch(ctx)
}

func (l *Loader) fetch(ctx context.Context) ([]Card, error) {
	raw, err := l.download(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	cards, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("create corpus dir: %w", err)
	}
	if err := os.WriteFile(l.path, raw, 0o644); err != nil {
		return nil, fmt.Errorf("write corpus %s: %w", l.path, err)
	}

	l.logger.Info("fetched corpus", zap.String("url", l.url), zap.Int("cards", len(cards)))
	return cards, nil
}

func (l *Loader) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, l.url)
	}

	return io.ReadAll(resp.Body)
}
