package deferred

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guiguan/caster"
	"github.com/npillmayer/textbuf"
	"github.com/npillmayer/textbuf/linetree"
)

// Reader is the read-only view of a document snapshot handed to analyzers.
// *textbuf.Snapshot implements it.
type Reader interface {
	Version() int
	Len() int
	LineCount() int
	Text(start, end int) (string, error)
	LineInfo(line int) (linetree.LineInfo, error)
	ChangeRangeSinceVersion(older int) (textbuf.ChangeRange, error)
}

var _ Reader = (*textbuf.Snapshot)(nil)

// Analyzer is an external analysis engine. Analyze should poll tok and return
// ErrCancelled as soon as cancellation is requested.
type Analyzer interface {
	Analyze(r Reader, tok *Token) error
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(r Reader, tok *Token) error

// Analyze calls f(r, tok).
func (f AnalyzerFunc) Analyze(r Reader, tok *Token) error {
	return f(r, tok)
}

// Default delays of a Watcher.
const (
	DefaultDelay         = 200 * time.Millisecond
	DefaultFollowUpDelay = 50 * time.Millisecond
)

const checkID = "check"

// Watcher schedules analysis of snapshots. Every new request replaces a
// request still waiting, and cancels an analysis already running.
type Watcher struct {
	// Delay is the time between a request and the first analysis.
	Delay time.Duration
	// FollowUpDelay is the time between two analyses of a batch.
	FollowUpDelay time.Duration
	// OnDone is called after every analysis. May be nil.
	OnDone func(r Reader, err error)

	analyzer  Analyzer
	throttle  *Throttle
	canceller Canceller
	mu        sync.Mutex
	stopped   bool
	running   sync.WaitGroup
}

// NewWatcher creates a watcher with default delays.
func NewWatcher(a Analyzer) *Watcher {
	return &Watcher{
		Delay:         DefaultDelay,
		FollowUpDelay: DefaultFollowUpDelay,
		analyzer:      a,
		throttle:      NewThrottle(),
	}
}

// Check schedules the analysis of r after Delay.
func (w *Watcher) Check(r Reader) {
	w.CheckBatch([]Reader{r})
}

// CheckBatch schedules the analysis of several snapshots, e.g. of a set of
// related documents. The first one is analyzed after Delay, every following
// one FollowUpDelay after its predecessor has finished. Cancelling the batch
// skips the rest of it.
func (w *Watcher) CheckBatch(readers []Reader) {
	if len(readers) == 0 {
		return
	}
	tok := w.canceller.Next()
	w.schedule(readers, 0, w.Delay, tok)
}

func (w *Watcher) schedule(readers []Reader, i int, delay time.Duration, tok *Token) {
	w.throttle.Schedule(checkID, delay, func() {
		w.mu.Lock()
		if w.stopped || tok.IsCancellationRequested() {
			w.mu.Unlock()
			return
		}
		w.running.Add(1)
		w.mu.Unlock()
		defer w.running.Done()
		err := w.analyzer.Analyze(readers[i], tok)
		if err != nil && !errors.Is(err, ErrCancelled) {
			tracer().Errorf("analysis of version %d failed: %v", readers[i].Version(), err)
		}
		if w.OnDone != nil {
			w.OnDone(readers[i], err)
		}
		if i+1 < len(readers) && !tok.IsCancellationRequested() {
			w.schedule(readers, i+1, w.FollowUpDelay, tok)
		}
	})
}

// Watch subscribes to a snapshot broadcast and checks every snapshot
// received. It returns when ctx is done or the broadcaster is closed.
func (w *Watcher) Watch(ctx context.Context, cast *caster.Caster) error {
	ch, ok := cast.Sub(ctx, 16)
	if !ok {
		return errors.New("deferred: snapshot broadcaster is closed")
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r, isReader := msg.(Reader)
			if !isReader {
				tracer().Debugf("watcher: ignoring broadcast message %T", msg)
				continue
			}
			tracer().Debugf("watcher: scheduling check of version %d", r.Version())
			w.Check(r)
		}
	}
}

// Stop cancels all waiting and running analyses. It waits until running
// analyses have returned.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
	w.canceller.Cancel()
	w.throttle.Stop()
	w.running.Wait()
}
