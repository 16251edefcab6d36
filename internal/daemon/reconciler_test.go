package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type fakeScanner struct {
	calls   int
	adopted int
	pruned  int
	err     error
	panics  bool
}

func (f *fakeScanner) Reconcile() (int, int, error) {
	f.calls++
	if f.panics {
		panic("scan exploded")
	}
	return f.adopted, f.pruned, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconcileNowRunsScanner(t *testing.T) {
	scanner := &fakeScanner{adopted: 2, pruned: 1}
	r := NewReconciler(Config{Logger: discardLogger()}, scanner)

	r.ReconcileNow()
	r.ReconcileNow()

	if scanner.calls != 2 {
		t.Fatalf("scanner calls = %d, want 2", scanner.calls)
	}
}

func TestReconcileSurvivesScannerError(t *testing.T) {
	scanner := &fakeScanner{err: errors.New("display gone")}
	r := NewReconciler(Config{Logger: discardLogger()}, scanner)

	r.ReconcileNow()
	if scanner.calls != 1 {
		t.Fatalf("scanner calls = %d, want 1", scanner.calls)
	}
}

func TestReconcileRecoversFromPanic(t *testing.T) {
	scanner := &fakeScanner{panics: true}
	r := NewReconciler(Config{Logger: discardLogger()}, scanner)

	// Must not propagate the panic.
	r.ReconcileNow()
	if scanner.calls != 1 {
		t.Fatalf("scanner calls = %d, want 1", scanner.calls)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	scanner := &fakeScanner{}
	r := NewReconciler(Config{Interval: time.Millisecond, Logger: discardLogger()}, scanner)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	if scanner.calls == 0 {
		t.Fatal("scanner never ran")
	}
}
