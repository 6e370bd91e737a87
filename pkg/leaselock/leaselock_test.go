package leaselock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB answers acquire/renew/release SQL from an in-memory lock table
// keyed by lock key.
type fakeDB struct {
	mu      sync.Mutex
	holders map[string]string
	execs   int
}

func newFakeDB() *fakeDB {
	return &fakeDB{holders: map[string]string{}}
}

type fakeRow struct {
	key string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.key
	return nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := args[0].(string)
	holder := args[1].(string)

	switch {
	case strings.Contains(sql, "INSERT INTO analysis_locks"):
		cur, held := f.holders[key]
		if held && cur != holder {
			return fakeRow{err: pgx.ErrNoRows}
		}
		f.holders[key] = holder
		return fakeRow{key: key}
	case strings.Contains(sql, "UPDATE analysis_locks"):
		if f.holders[key] != holder {
			return fakeRow{err: pgx.ErrNoRows}
		}
		return fakeRow{key: key}
	default:
		return fakeRow{err: errors.New("unexpected query")}
	}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.execs++
	key := args[0].(string)
	holder := args[1].(string)
	if f.holders[key] == holder {
		delete(f.holders, key)
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) holderOf(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holders[key]
}

func TestAcquireAndRelease(t *testing.T) {
	db := newFakeDB()
	c := &Client{db: db}

	lease, err := c.Acquire(context.Background(), "team_analysis:t1", Options{TTL: time.Minute})
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if db.holderOf("team_analysis:t1") != lease.Holder {
		t.Fatalf("lock not recorded for holder %q", lease.Holder)
	}

	if err := lease.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if db.holderOf("team_analysis:t1") != "" {
		t.Error("lock still held after release")
	}
	if lease.Context.Err() == nil {
		t.Error("lease context still live after release")
	}
}

func TestAcquireBusyWithoutWait(t *testing.T) {
	db := newFakeDB()
	db.holders["team_analysis:t1"] = "someone_else"
	c := &Client{db: db}

	_, err := c.Acquire(context.Background(), "team_analysis:t1", Options{TTL: time.Minute})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
}

func TestAcquireEmptyKey(t *testing.T) {
	c := &Client{db: newFakeDB()}
	if _, err := c.Acquire(context.Background(), "", Options{}); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestWithLeaseReleasesAfterFn(t *testing.T) {
	db := newFakeDB()
	c := &Client{db: db}

	ran := false
	err := c.WithLease(context.Background(), "team_analysis:t1", Options{TTL: time.Minute, HolderPrefix: "worker_"}, func(ctx context.Context) error {
		ran = true
		if h := db.holderOf("team_analysis:t1"); !strings.HasPrefix(h, "worker_") {
			t.Errorf("holder = %q, want worker_ prefix", h)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithLease: %v", err)
	}
	if !ran {
		t.Fatal("fn never ran")
	}
	if db.holderOf("team_analysis:t1") != "" {
		t.Error("lock still held after WithLease returned")
	}
}

func TestWithLeasePropagatesFnError(t *testing.T) {
	c := &Client{db: newFakeDB()}

	want := errors.New("analysis failed")
	err := c.WithLease(context.Background(), "team_analysis:t1", Options{TTL: time.Minute}, func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestRenewLostCancelsLeaseContext(t *testing.T) {
	db := newFakeDB()
	c := &Client{db: db}

	lease, err := c.Acquire(context.Background(), "team_analysis:t1", Options{
		TTL:        40 * time.Millisecond,
		RenewEvery: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer lease.Release(context.Background())

	// Steal the lock out from under the lease; the next renew must fail
	// and cancel the lease context.
	db.mu.Lock()
	db.holders["team_analysis:t1"] = "usurper"
	db.mu.Unlock()

	select {
	case <-lease.Context.Done():
		if cause := context.Cause(lease.Context); !errors.Is(cause, ErrLost) {
			t.Errorf("cancel cause = %v, want ErrLost", cause)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("lease context never cancelled after losing the lock")
	}
}
