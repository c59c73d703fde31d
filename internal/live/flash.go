package live

import (
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
)

// Phase is the state of the flash highlight.
type Phase int

const (
	Idle Phase = iota
	Flashing
	FadingOut
)

func (p Phase) String() string {
	switch p {
	case Flashing:
		return "flashing"
	case FadingOut:
		return "fading_out"
	default:
		return "idle"
	}
}

const (
	DefaultFlashFor = 2 * time.Second
	DefaultFadeFor  = 300 * time.Millisecond
)

// Flash highlights the most recent scan: Idle -> Flashing on Trigger,
// Flashing -> FadingOut after flashFor, FadingOut -> Idle after fadeFor.
//
// Flash is not safe for concurrent use. Timer callbacks are handed to post,
// which must run them on the goroutine that owns the Flash. Each Trigger
// starts a new generation and stops the previous timer; a callback from an
// older generation that still gets through is ignored.
type Flash struct {
	clock    Clock
	flashFor time.Duration
	fadeFor  time.Duration
	post     func(func())
	onChange func()

	phase  Phase
	record *attendance.LiveRecord
	timer  Timer
	gen    uint64
}

func NewFlash(clock Clock, flashFor, fadeFor time.Duration, post func(func()), onChange func()) *Flash {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	if onChange == nil {
		onChange = func() {}
	}
	return &Flash{
		clock:    clock,
		flashFor: flashFor,
		fadeFor:  fadeFor,
		post:     post,
		onChange: onChange,
	}
}

func (f *Flash) Phase() Phase { return f.phase }

// Record is the highlighted scan, nil when Idle.
func (f *Flash) Record() *attendance.LiveRecord { return f.record }

// Trigger highlights rec, replacing any current highlight and restarting the timer.
func (f *Flash) Trigger(rec attendance.LiveRecord) {
	gen := f.restart()
	f.phase = Flashing
	f.record = &rec
	f.timer = f.clock.AfterFunc(f.flashFor, func() {
		f.post(func() { f.fadeOut(gen) })
	})
	f.onChange()
}

// Stop cancels pending transitions and leaves the state as is.
func (f *Flash) Stop() {
	f.restart()
}

func (f *Flash) restart() uint64 {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.gen++
	return f.gen
}

func (f *Flash) fadeOut(gen uint64) {
	if gen != f.gen || f.phase != Flashing {
		return
	}
	f.phase = FadingOut
	f.timer = f.clock.AfterFunc(f.fadeFor, func() {
		f.post(func() { f.clear(gen) })
	})
	f.onChange()
}

func (f *Flash) clear(gen uint64) {
	if gen != f.gen || f.phase != FadingOut {
		return
	}
	f.phase = Idle
	f.record = nil
	f.timer = nil
	f.onChange()
}
