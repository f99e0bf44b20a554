package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"devevent/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

// connectTimeout bounds a single connection attempt, including migrations.
const connectTimeout = 10 * time.Second

// State is the lifecycle of the managed connection. A failed attempt returns
// the manager to Unconnected; Connected lasts for the life of the process.
type State int

const (
	StateUnconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unconnected"
	}
}

// Opener establishes a ready-to-use handle. Injectable for tests.
type Opener func(ctx context.Context) (*sql.DB, error)

// attempt is a single in-flight connection attempt. db and err are set
// before done is closed; every caller overlapping the attempt reads the
// same outcome.
type attempt struct {
	done chan struct{}
	db   *sql.DB
	err  error
}

// Manager hands out one shared *sql.DB for the whole process. The first
// caller starts a connection attempt; callers arriving before it finishes
// join it instead of opening their own, so at most one attempt is
// outstanding at any time.
type Manager struct {
	logger *slog.Logger
	open   Opener

	mu      sync.Mutex
	db      *sql.DB
	pending *attempt
}

// NewManager returns a Manager that connects to Postgres at dsn and runs
// embedded migrations on first successful connect.
func NewManager(dsn string, logger *slog.Logger) *Manager {
	return &Manager{logger: logger, open: defaultOpener(dsn)}
}

// NewManagerWithOpener returns a Manager using a custom Opener. Used by tests.
func NewManagerWithOpener(open Opener, logger *slog.Logger) *Manager {
	return &Manager{logger: logger, open: open}
}

func defaultOpener(dsn string) Opener {
	return func(ctx context.Context) (*sql.DB, error) {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping db: %w", err)
		}
		if err := runMigrations(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return db, nil
	}
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Get returns the shared handle. A cached handle is returned without I/O.
// Otherwise the caller joins the in-flight attempt, starting one if none
// exists. On failure every waiter gets the error wrapped in
// domain.ErrUnavailable and the next Get starts a fresh attempt. Cancelling
// ctx detaches this caller only; the attempt itself keeps running.
func (m *Manager) Get(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	if m.db != nil {
		db := m.db
		m.mu.Unlock()
		return db, nil
	}
	if m.pending == nil {
		a := &attempt{done: make(chan struct{})}
		m.pending = a
		go m.connect(a)
	}
	a := m.pending
	m.mu.Unlock()

	select {
	case <-a.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if a.err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, a.err)
	}
	return a.db, nil
}

func (m *Manager) connect(a *attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	db, err := m.open(ctx)

	m.mu.Lock()
	m.pending = nil
	if err != nil {
		m.logger.Error("database connection failed", "err", err)
	} else {
		m.db = db
		m.logger.Info("database connected")
	}
	m.mu.Unlock()

	a.db, a.err = db, err
	close(a.done)
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.db != nil:
		return StateConnected
	case m.pending != nil:
		return StateConnecting
	default:
		return StateUnconnected
	}
}

// Close closes the cached handle if one exists.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
