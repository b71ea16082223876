package analysis

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bennypn/ai-kop-indosat/model"
	"golang.org/x/sync/semaphore"
)

// RunGuard prevents one document from being scheduled twice concurrently.
// It is a liveness optimization only; correctness of resumed analysis comes
// from the idempotent repository operations. Implementations backed by a
// leased claim in the store can replace the in-memory one without touching
// the scheduler.
type RunGuard interface {
	TryAcquire(pdfID uint) bool
	Release(pdfID uint)
}

type memoryRunGuard struct {
	mu      sync.Mutex
	running map[uint]struct{}
}

// NewMemoryRunGuard returns a process-local guard. It does not survive
// restarts and does not coordinate across service instances.
func NewMemoryRunGuard() RunGuard {
	return &memoryRunGuard{running: make(map[uint]struct{})}
}

func (g *memoryRunGuard) TryAcquire(pdfID uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.running[pdfID]; ok {
		return false
	}
	g.running[pdfID] = struct{}{}
	return true
}

func (g *memoryRunGuard) Release(pdfID uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, pdfID)
}

// Scheduler bounds how many documents are analyzed concurrently with a
// fixed-size slot pool. Scheduling returns immediately; the background task
// blocks on slot acquisition.
type Scheduler struct {
	analyzer *Analyzer
	guard    RunGuard
	slots    *semaphore.Weighted
}

func NewScheduler(analyzer *Analyzer, guard RunGuard, maxWorkers int) *Scheduler {
	return &Scheduler{
		analyzer: analyzer,
		guard:    guard,
		slots:    semaphore.NewWeighted(int64(maxWorkers)),
	}
}

// Schedule starts background analysis of the document. It reports false when
// an analysis task for the same document is already running in this process.
func (s *Scheduler) Schedule(pdf model.PDF, data []byte) bool {
	if !s.guard.TryAcquire(pdf.ID) {
		slog.Info("Analysis already running, not scheduling again", "pdf_id", pdf.ID)
		return false
	}

	go func() {
		defer s.guard.Release(pdf.ID)

		ctx := context.Background()
		if err := s.slots.Acquire(ctx, 1); err != nil {
			return
		}
		defer s.slots.Release(1)

		if err := s.analyzer.AnalyzePDF(ctx, pdf, data); err != nil {
			slog.Error("Background analysis failed", "pdf_id", pdf.ID, "err", err)
		}
	}()
	return true
}
