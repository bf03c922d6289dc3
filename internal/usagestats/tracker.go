package usagestats

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config controls where and how often the counter state is persisted.
type Config struct {
	Path           string
	BackupInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = "history.json"
	}
	if c.BackupInterval <= 0 {
		c.BackupInterval = 5 * time.Minute
	}
	return c
}

type Params struct {
	fx.In

	Log    *zap.Logger
	Config Config
}

// Tracker tallies per-operation daily call counts and snapshots them to disk,
// debounced by the backup interval. One mutex serializes every access,
// including the possible disk write; the debounce keeps writes rare.
type Tracker struct {
	mu    sync.Mutex
	log   *zap.Logger
	path  string
	now   func() time.Time
	state Snapshot
}

// New builds a Tracker, loading a previously persisted snapshot when one is
// present and readable. A corrupted snapshot is discarded, never fatal.
func New(p Params) *Tracker {
	cfg := p.Config.withDefaults()
	t := &Tracker{
		log:  p.Log.Named("usagestats"),
		path: cfg.Path,
		now:  time.Now,
	}
	t.state.BackupInterval = cfg.BackupInterval
	t.load(cfg.BackupInterval)
	return t
}

func (t *Tracker) load(interval time.Duration) {
	raw, err := os.ReadFile(t.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.log.Warn("impossible to read the usage history file, starting fresh",
				zap.String("path", t.path), zap.Error(err))
		}
		return
	}

	var state Snapshot
	if err := json.Unmarshal(raw, &state); err != nil {
		t.log.Warn("usage history file is corrupted, starting fresh",
			zap.String("path", t.path), zap.Error(err))
		return
	}

	if state.BackupInterval <= 0 {
		state.BackupInterval = interval
	}
	t.state = state
}

// Increment counts one call of the given operation and opportunistically
// persists the whole state when the backup interval has elapsed.
func (t *Tracker) Increment(op Operation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.state.history(op)
	if h == nil {
		t.log.Warn("unknown usage operation", zap.String("operation", string(op)))
		return
	}
	h.Increment(t.now())
	t.maybeSave()
}

func (t *Tracker) maybeSave() {
	now := t.now()
	if !now.After(t.state.LastSaved.Add(t.state.BackupInterval)) {
		return
	}
	t.state.LastSaved = now
	if err := t.write(); err != nil {
		t.log.Warn("impossible to persist the usage history",
			zap.String("path", t.path), zap.Error(err))
	}
}

// Snapshot returns a deep copy of the counter state for external reporting.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.clone()
}

// Flush persists the state unconditionally. Used at shutdown so counts
// accumulated since the last debounced save are not lost.
func (t *Tracker) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.LastSaved = t.now()
	return t.write()
}

func (t *Tracker) write() error {
	raw, err := json.Marshal(t.state)
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, raw, 0o644)
}
