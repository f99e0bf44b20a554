package database

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newHandle(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestManagerGet_CachesHandle(t *testing.T) {
	handle := newHandle(t)
	var calls int32
	m := NewManagerWithOpener(func(ctx context.Context) (*sql.DB, error) {
		atomic.AddInt32(&calls, 1)
		return handle, nil
	}, testLogger())

	require.Equal(t, StateUnconnected, m.State())

	got, err := m.Get(context.Background())
	require.NoError(t, err)
	require.Same(t, handle, got)
	require.Equal(t, StateConnected, m.State())

	// Second call must not open again.
	got, err = m.Get(context.Background())
	require.NoError(t, err)
	require.Same(t, handle, got)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestManagerGet_ConcurrentCallersShareOneAttempt(t *testing.T) {
	handle := newHandle(t)
	var calls int32
	release := make(chan struct{})
	m := NewManagerWithOpener(func(ctx context.Context) (*sql.DB, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return handle, nil
	}, testLogger())

	type result struct {
		db  *sql.DB
		err error
	}
	const n = 20
	results := make(chan result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db, err := m.Get(context.Background())
			results <- result{db, err}
		}()
	}

	// Give every caller a chance to join the attempt before it resolves.
	require.Eventually(t, func() bool {
		return m.State() == StateConnecting
	}, time.Second, time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for r := range results {
		require.NoError(t, r.err)
		require.Same(t, handle, r.db)
	}
}

func TestManagerGet_FailureIsRetryable(t *testing.T) {
	handle := newHandle(t)
	var calls int32
	m := NewManagerWithOpener(func(ctx context.Context) (*sql.DB, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("connection refused")
		}
		return handle, nil
	}, testLogger())

	_, err := m.Get(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrUnavailable))
	require.Equal(t, StateUnconnected, m.State())

	// The failed attempt must not have been memoized.
	got, err := m.Get(context.Background())
	require.NoError(t, err)
	require.Same(t, handle, got)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
	require.Equal(t, StateConnected, m.State())
}

func TestManagerGet_FailurePropagatesToAllWaiters(t *testing.T) {
	release := make(chan struct{})
	m := NewManagerWithOpener(func(ctx context.Context) (*sql.DB, error) {
		<-release
		return nil, errors.New("auth failed")
	}, testLogger())

	const n = 5
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Get(context.Background())
			errs <- err
		}()
	}
	require.Eventually(t, func() bool {
		return m.State() == StateConnecting
	}, time.Second, time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.True(t, errors.Is(err, domain.ErrUnavailable))
	}
}

func TestManagerGet_ContextCancelDetachesCaller(t *testing.T) {
	handle := newHandle(t)
	release := make(chan struct{})
	m := NewManagerWithOpener(func(ctx context.Context) (*sql.DB, error) {
		<-release
		return handle, nil
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := m.Get(ctx)
		errCh <- err
	}()

	require.Eventually(t, func() bool {
		return m.State() == StateConnecting
	}, time.Second, time.Millisecond)
	cancel()
	require.True(t, errors.Is(<-errCh, context.Canceled))

	// The attempt keeps running; once it resolves, the handle is shared.
	close(release)
	got, err := m.Get(context.Background())
	require.NoError(t, err)
	require.Same(t, handle, got)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "unconnected", StateUnconnected.String())
	require.Equal(t, "connecting", StateConnecting.String())
	require.Equal(t, "connected", StateConnected.String())
}
