package live

import (
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
)

// Mode selects between reloading the feed and fetching only newer scans.
type Mode int

const (
	Full Mode = iota
	Incremental
)

func (m Mode) String() string {
	if m == Incremental {
		return "incremental"
	}
	return "full"
}

// Query is what a poll asks the record source for.
type Query struct {
	Limit int
	// Since is an exclusive lower bound on scan time; nil fetches the newest records.
	Since *time.Time
}

// View is a snapshot of what the monitor should display.
type View struct {
	Records []attendance.LiveRecord
	// Flash is the highlighted scan, nil when nothing is highlighted.
	Flash *attendance.LiveRecord
	// Emphasized is true only while the highlight is in its Flashing phase.
	Emphasized bool
	Phase      Phase
	Cursor     *time.Time
}

// Outcome describes what applying a poll result changed.
type Outcome struct {
	Mode    Mode
	Added   int
	Flashed bool
}

// Feed is the displayed list, the scan-time cursor and the highlight.
// It is not safe for concurrent use; Monitor owns one on its event loop.
type Feed struct {
	records []attendance.LiveRecord
	cursor  *time.Time
	flash   *Flash
}

func NewFeed(flash *Flash) *Feed {
	return &Feed{flash: flash}
}

// Query returns the request for a poll in mode and the mode actually used:
// an incremental poll without a cursor is a full poll.
func (f *Feed) Query(mode Mode) (Query, Mode) {
	if mode == Incremental && f.cursor != nil {
		since := *f.cursor
		return Query{Limit: MaxRecords, Since: &since}, Incremental
	}
	return Query{Limit: MaxRecords}, Full
}

// Apply folds a successful poll result into the feed and highlights the
// newest added record, if any. Full and incremental results are both merged,
// so a full reload that completes late cannot drop newer rows or flash a
// record already on screen. The cursor follows the first record of a
// non-empty result but never moves backwards.
func (f *Feed) Apply(mode Mode, incoming []attendance.LiveRecord) Outcome {
	out := Outcome{Mode: mode}
	if len(incoming) == 0 {
		return out
	}

	f.advance(incoming[0].ScanTime)

	f.records, out.Added = Merge(f.records, incoming)

	if out.Added > 0 {
		f.flash.Trigger(f.records[0])
		out.Flashed = true
	}
	return out
}

func (f *Feed) advance(t time.Time) {
	if f.cursor == nil || t.After(*f.cursor) {
		f.cursor = &t
	}
}

// Cursor is the newest scan time seen, nil before the first non-empty poll.
func (f *Feed) Cursor() *time.Time {
	if f.cursor == nil {
		return nil
	}
	c := *f.cursor
	return &c
}

func (f *Feed) Records() []attendance.LiveRecord {
	return append([]attendance.LiveRecord(nil), f.records...)
}

func (f *Feed) View() View {
	v := View{
		Records: f.Records(),
		Phase:   f.flash.Phase(),
		Cursor:  f.Cursor(),
	}
	if rec := f.flash.Record(); rec != nil {
		r := *rec
		v.Flash = &r
	}
	v.Emphasized = v.Phase == Flashing
	return v
}
