// Package debounce coalesces bursts of triggers into one deferred action
// using Bubble Tea ticks.
package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Default delays
const (
	FilterDelay = 200 * time.Millisecond
	ResizeDelay = 100 * time.Millisecond
)

// FiredMsg is delivered when a scheduled tick elapses
type FiredMsg struct {
	Owner string
	Seq   uint64
}

// Debouncer keeps at most one pending tick per owner. Scheduling a new tick
// makes every earlier one stale.
type Debouncer struct {
	owner   string
	delay   time.Duration
	seq     uint64
	pending bool
}

// New creates a debouncer. owner must be unique among live debouncers.
func New(owner string, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = FilterDelay
	}
	return &Debouncer{owner: owner, delay: delay}
}

// Owner returns the owner tag carried by this debouncer's ticks
func (d *Debouncer) Owner() string {
	return d.owner
}

// Delay returns the debounce delay
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule cancels the pending tick, if any, and starts a new one
func (d *Debouncer) Schedule() tea.Cmd {
	d.seq++
	d.pending = true
	owner, seq := d.owner, d.seq
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return FiredMsg{Owner: owner, Seq: seq}
	})
}

// Cancel drops the pending tick
func (d *Debouncer) Cancel() {
	d.seq++
	d.pending = false
}

// Pending reports whether a scheduled tick has not fired yet
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Fired reports whether msg is the latest tick of this debouncer. It is
// true at most once per Schedule.
func (d *Debouncer) Fired(msg tea.Msg) bool {
	f, ok := msg.(FiredMsg)
	if !ok || f.Owner != d.owner || f.Seq != d.seq || !d.pending {
		return false
	}
	d.pending = false
	return true
}

// IsNavigationKey reports whether a key only moves focus, confirms or
// navigates. Such keys never trigger a filter pass.
func IsNavigationKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyEnter,
		tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight,
		tea.KeyShiftUp, tea.KeyShiftDown, tea.KeyShiftLeft, tea.KeyShiftRight,
		tea.KeyCtrlUp, tea.KeyCtrlDown, tea.KeyCtrlLeft, tea.KeyCtrlRight,
		tea.KeyCtrlShiftUp, tea.KeyCtrlShiftDown, tea.KeyCtrlShiftLeft, tea.KeyCtrlShiftRight,
		tea.KeyHome, tea.KeyEnd, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyShiftHome, tea.KeyShiftEnd, tea.KeyCtrlHome, tea.KeyCtrlEnd,
		tea.KeyCtrlPgUp, tea.KeyCtrlPgDown:
		return true
	case tea.KeyRunes:
		// alt with no text is a bare modifier
		return len(msg.Runes) == 0
	}
	return false
}

// IsEscape reports whether the key is escape
func IsEscape(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEsc
}
