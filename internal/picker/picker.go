// Package picker implements the two-click date-range selection protocol of
// the booking calendar: pick a check-in, then a check-out, with hover
// preview and booked/past dates blocked. It is free of UI framework types
// so the terminal client and tests drive it directly.
package picker

import (
	"time"

	"stieregg/internal/domain/availability"
	"stieregg/internal/domain/daterange"
)

// Mode says which click the picker expects next.
type Mode int

const (
	AwaitingCheckIn Mode = iota
	AwaitingCheckOut
)

// NavigableMonths is how far ahead of the current month the view may go.
const NavigableMonths = 24

// Selection is the current (possibly partial) stay selection. Zero times
// mean "not chosen yet".
type Selection struct {
	CheckIn  time.Time
	CheckOut time.Time
	Mode     Mode
}

// Complete reports whether both dates are committed.
func (s Selection) Complete() bool {
	return !s.CheckIn.IsZero() && !s.CheckOut.IsZero()
}

// Picker holds the selection state for one booking-search session.
type Picker struct {
	sel       Selection
	hover     time.Time
	booked    []daterange.BookedRange
	viewMonth time.Time
	now       func() time.Time
}

// Option configures a Picker.
type Option func(*Picker)

// WithClock fixes the picker's notion of "today" for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Picker) { p.now = now }
}

// New builds a picker over the apartment's booked ranges, viewing the
// current month.
func New(booked []daterange.BookedRange, opts ...Option) *Picker {
	p := &Picker{booked: booked, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	p.viewMonth = monthOf(p.today())
	return p
}

func (p *Picker) today() time.Time {
	return daterange.Normalize(p.now())
}

// Selection returns the current selection state.
func (p *Picker) Selection() Selection { return p.sel }

// Selectable reports whether a date may be clicked: booked dates and dates
// before today are blocked.
func (p *Picker) Selectable(date time.Time) bool {
	d := daterange.Normalize(date)
	if d.Before(p.today()) {
		return false
	}
	for _, r := range p.booked {
		if r.ContainsDate(d) {
			return false
		}
	}
	return true
}

// Click feeds one date-cell click into the state machine and reports
// whether the click completed a full selection. Clicks on unselectable
// dates are ignored. While awaiting the check-out, a click on or before the
// current check-in restarts the selection from that date instead of
// erroring.
func (p *Picker) Click(date time.Time) bool {
	d := daterange.Normalize(date)
	if !p.Selectable(d) {
		return false
	}

	switch p.sel.Mode {
	case AwaitingCheckIn:
		p.sel = Selection{CheckIn: d, Mode: AwaitingCheckOut}
	case AwaitingCheckOut:
		if !d.After(p.sel.CheckIn) {
			p.sel = Selection{CheckIn: d, Mode: AwaitingCheckOut}
			return false
		}
		p.sel.CheckOut = d
		p.sel.Mode = AwaitingCheckIn
		p.hover = time.Time{}
		return true
	}
	return false
}

// Hover records the date under the cursor for span preview.
func (p *Picker) Hover(date time.Time) {
	p.hover = daterange.Normalize(date)
}

// PreviewSpan returns the hover-preview span while a check-out is pending:
// from the smaller to the larger of check-in and the hovered date,
// regardless of hover direction. ok is false when nothing should be
// previewed.
func (p *Picker) PreviewSpan() (from, to time.Time, ok bool) {
	if p.sel.Mode != AwaitingCheckOut || p.sel.CheckIn.IsZero() || p.hover.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	if p.hover.Before(p.sel.CheckIn) {
		return p.hover, p.sel.CheckIn, true
	}
	return p.sel.CheckIn, p.hover, true
}

// InSelectedSpan reports whether a date lies inside the committed stay.
func (p *Picker) InSelectedSpan(date time.Time) bool {
	if !p.sel.Complete() {
		return false
	}
	d := daterange.Normalize(date)
	return !d.Before(p.sel.CheckIn) && !d.After(p.sel.CheckOut)
}

// Close dismisses the picker. A half-open selection (check-in without
// check-out) is discarded; a completed selection survives.
func (p *Picker) Close() {
	if !p.sel.CheckIn.IsZero() && p.sel.CheckOut.IsZero() {
		p.sel = Selection{}
	}
	p.hover = time.Time{}
}

// Restore installs an externally supplied stay, e.g. from a shareable link.
// When the pair turns out to be unavailable against the booked ranges, the
// view resets to the current month instead of focusing the conflicting
// stay's month.
func (p *Picker) Restore(checkIn, checkOut time.Time) {
	in := daterange.Normalize(checkIn)
	out := daterange.Normalize(checkOut)
	p.sel = Selection{CheckIn: in, CheckOut: out, Mode: AwaitingCheckIn}
	if availability.IsAvailable(p.booked, in, out) {
		p.viewMonth = p.clampMonth(monthOf(in))
		return
	}
	p.viewMonth = monthOf(p.today())
}

// ViewMonth is the first day of the currently displayed month.
func (p *Picker) ViewMonth() time.Time { return p.viewMonth }

// CanPrevMonth reports whether navigating back stays inside the window.
func (p *Picker) CanPrevMonth() bool {
	return p.viewMonth.After(monthOf(p.today()))
}

// CanNextMonth reports whether navigating forward stays inside the window.
func (p *Picker) CanNextMonth() bool {
	return p.viewMonth.Before(p.maxMonth())
}

// PrevMonth navigates one month back; a move outside the navigable window
// is a no-op.
func (p *Picker) PrevMonth() bool {
	if !p.CanPrevMonth() {
		return false
	}
	p.viewMonth = p.viewMonth.AddDate(0, -1, 0)
	return true
}

// NextMonth navigates one month forward; a move outside the navigable
// window is a no-op.
func (p *Picker) NextMonth() bool {
	if !p.CanNextMonth() {
		return false
	}
	p.viewMonth = p.viewMonth.AddDate(0, 1, 0)
	return true
}

func (p *Picker) maxMonth() time.Time {
	return monthOf(p.today()).AddDate(0, NavigableMonths, 0)
}

func (p *Picker) clampMonth(m time.Time) time.Time {
	min := monthOf(p.today())
	if m.Before(min) {
		return min
	}
	if max := p.maxMonth(); m.After(max) {
		return max
	}
	return m
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
