package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/poiesic/harvest/core"
	"github.com/stretchr/testify/mock"
)

// mockSource is a testify mock of Paginator.
type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchPage(ctx context.Context, cursor core.Cursor) (*core.Page, error) {
	args := m.Called(ctx, cursor)
	page, _ := args.Get(0).(*core.Page)
	return page, args.Error(1)
}

// recordingCursors is an in-memory CursorStore that keeps every save.
type recordingCursors struct {
	initial core.Cursor
	saves   []core.Cursor
	saveErr error
}

func (r *recordingCursors) Load(ctx context.Context) core.Cursor {
	return r.initial
}

func (r *recordingCursors) Save(ctx context.Context, cursor core.Cursor) error {
	r.saves = append(r.saves, cursor)
	return r.saveErr
}

// recordingStore is a VectorStore that keeps every batch it receives.
type recordingStore struct {
	mu      sync.Mutex
	batches []*core.Batch
	err     error
}

func (s *recordingStore) Upsert(ctx context.Context, batch *core.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, batch)
	return nil
}

func (s *recordingStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += b.Len()
	}
	return n, nil
}

func (s *recordingStore) Query(ctx context.Context, embedding []float32, n int) ([]core.Hit, error) {
	return nil, nil
}

func (s *recordingStore) Close() error {
	return nil
}

func (s *recordingStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

// noPause is a Pacer that never sleeps.
type noPause struct{}

func (noPause) AfterRequest(ctx context.Context) error { return nil }
func (noPause) AfterPage(ctx context.Context) error    { return nil }

// sleepLog records the durations passed to a SleepFunc.
type sleepLog struct {
	events *[]string
	slept  []time.Duration
}

func (l *sleepLog) sleep(ctx context.Context, d time.Duration) error {
	l.slept = append(l.slept, d)
	if l.events != nil {
		*l.events = append(*l.events, "sleep "+d.String())
	}
	return ctx.Err()
}

func item(name, title string) core.RawItem {
	return core.RawItem{Name: name, Title: title, Subreddit: "CryptoCurrency", Ups: 10}
}
