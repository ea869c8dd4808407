package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/core/ports"
)

type captureAuditService struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (s *captureAuditService) Process(_ context.Context, entry ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *captureAuditService) snapshot() []ports.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDispatcher_PreservesPerSubjectOrder(t *testing.T) {
	svc := &captureAuditService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 50
	for i := 0; i < n; i++ {
		d.Record(ports.AuditEntry{
			Subject: "alice@example.com",
			Action:  ports.AuditLoginFailed,
			Detail:  fmt.Sprintf("attempt-%d", i),
		})
	}

	waitFor(t, func() bool { return len(svc.snapshot()) == n })

	for i, entry := range svc.snapshot() {
		if want := fmt.Sprintf("attempt-%d", i); entry.Detail != want {
			t.Fatalf("entry %d out of order: got %q, want %q", i, entry.Detail, want)
		}
	}
}

func TestDispatcher_SameSubjectSameWorker(t *testing.T) {
	d := NewDispatcher(8, &captureAuditService{}, zerolog.Nop())

	first := d.shardIndex("bob@example.com")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("bob@example.com"); got != first {
			t.Fatalf("shard index not stable: got %d, want %d", got, first)
		}
	}
}

func TestDispatcher_RecordNeverBlocks(t *testing.T) {
	// Workers are never started, so the single channel fills up. Record
	// must drop the overflow instead of stalling the caller.
	d := NewDispatcher(1, &captureAuditService{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			d.Record(ports.AuditEntry{Subject: "carol@example.com", Action: ports.AuditAccessDenied})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}
}
