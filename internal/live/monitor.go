package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/pkg/metrics"
)

const (
	DefaultPollInterval = 2 * time.Second
	defaultFetchTimeout = 10 * time.Second
)

var ErrMonitorRunning = errors.New("monitor is already running")

// Source fetches scans newest first.
type Source interface {
	Fetch(ctx context.Context, q Query) ([]attendance.LiveRecord, error)
}

type Options struct {
	Clock        Clock
	PollInterval time.Duration
	FlashFor     time.Duration
	FadeFor      time.Duration
	FetchTimeout time.Duration
	// Limit lowers the per-poll record limit below MaxRecords.
	Limit  int
	Logger *slog.Logger
	// OnUpdate receives a View after every change. It runs on the monitor's
	// loop and must not block for long.
	OnUpdate func(View)
}

// Monitor runs the live attendance poll loop. All feed and highlight state is
// touched only by the loop goroutine started in Run; fetches and timers post
// their results back to it.
type Monitor struct {
	source Source
	opts   Options

	mu      sync.Mutex
	running bool
}

func NewMonitor(source Source, opts Options) *Monitor {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.FlashFor <= 0 {
		opts.FlashFor = DefaultFlashFor
	}
	if opts.FadeFor <= 0 {
		opts.FadeFor = DefaultFadeFor
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.OnUpdate == nil {
		opts.OnUpdate = func(View) {}
	}
	return &Monitor{source: source, opts: opts}
}

// loop is the state owned by one Run call.
type loop struct {
	m      *Monitor
	feed   *Feed
	events chan func()
	done   chan struct{}
	ctx    context.Context
	wg     sync.WaitGroup

	// At most one fetch is outstanding. A tick that lands while one is
	// sets pending and the poll runs once the outstanding result is applied.
	inFlight bool
	pending  bool
	// authFailing suppresses repeated credential errors until a poll succeeds.
	authFailing bool
}

// Run polls in full once, then incrementally every PollInterval, until ctx
// is done. Polls never overlap: ticks during a fetch coalesce into one poll
// issued after it completes. Fetch errors are logged and the cycle skipped. On return the
// ticker and highlight timers are stopped, in-flight fetches are cancelled
// and any result that still arrives is discarded.
func (m *Monitor) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrMonitorRunning
	}
	m.running = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	fetchCtx, cancelFetches := context.WithCancel(ctx)
	l := &loop{
		m:      m,
		events: make(chan func(), 16),
		done:   make(chan struct{}),
		ctx:    fetchCtx,
	}
	flash := NewFlash(m.opts.Clock, m.opts.FlashFor, m.opts.FadeFor, l.post, l.publish)
	l.feed = NewFeed(flash)

	l.poll(Full)
	ticker := m.opts.Clock.NewTicker(m.opts.PollInterval)

	defer func() {
		ticker.Stop()
		flash.Stop()
		close(l.done)
		cancelFetches()
		l.wg.Wait()
		m.opts.Logger.Info("Live monitor stopped")
	}()

	m.opts.Logger.Info("Live monitor started", "interval", m.opts.PollInterval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.events:
			fn()
		case <-ticker.C():
			l.poll(Incremental)
		}
	}
}

// post hands fn to the loop. After teardown fn is dropped.
func (l *loop) post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.events <- fn:
	case <-l.done:
	}
}

func (l *loop) publish() {
	l.m.opts.OnUpdate(l.feed.View())
}

func (l *loop) poll(mode Mode) {
	if l.inFlight {
		l.pending = true
		return
	}
	l.inFlight = true

	q, mode := l.feed.Query(mode)
	if limit := l.m.opts.Limit; limit > 0 && limit < q.Limit {
		q.Limit = limit
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ctx, cancel := context.WithTimeout(l.ctx, l.m.opts.FetchTimeout)
		records, err := l.m.source.Fetch(ctx, q)
		cancel()

		select {
		case <-l.done:
			metrics.MonitorPolls.WithLabelValues("discarded").Inc()
			return
		default:
		}

		l.post(func() {
			l.inFlight = false
			l.apply(mode, q, records, err)
			if l.pending {
				l.pending = false
				l.poll(Incremental)
			}
		})
	}()
}

func (l *loop) apply(mode Mode, q Query, records []attendance.LiveRecord, err error) {
	logger := l.m.opts.Logger

	switch {
	case errors.Is(err, ErrUnauthorized):
		metrics.MonitorPolls.WithLabelValues("unauthorized").Inc()
		if !l.authFailing {
			l.authFailing = true
			logger.Error("Live attendance feed rejected the monitor credentials", "error", err)
		}
		return
	case err != nil:
		metrics.MonitorPolls.WithLabelValues("error").Inc()
		logger.Warn("Live attendance poll failed", "mode", mode.String(), "since", q.Since, "error", err)
		return
	}

	if l.authFailing {
		l.authFailing = false
		logger.Info("Live attendance feed accepted the monitor credentials again")
	}
	if len(records) == 0 {
		metrics.MonitorPolls.WithLabelValues("empty").Inc()
		return
	}
	metrics.MonitorPolls.WithLabelValues("ok").Inc()

	out := l.feed.Apply(mode, records)
	if out.Flashed {
		metrics.MonitorFlashes.Inc()
		// Trigger already published the view
		return
	}
	l.publish()
}
