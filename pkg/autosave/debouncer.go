// Package autosave delays note commits until the user stops typing.
package autosave

import (
	"sync"
	"time"
)

// Commit persists the draft of note id.
type Commit func(id int64)

// Debouncer keeps at most one pending commit. Each Schedule replaces the
// previous one and restarts the delay.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending Commit
	id      int64
	seq     uint64
}

// New returns a debouncer firing delay after the last Schedule.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// SetDelay changes the delay of future schedules.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	d.delay = delay
	d.mu.Unlock()
}

// Delay returns the current delay.
func (d *Debouncer) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// Schedule cancels any pending commit and arranges for commit(id) to run
// after the delay. The id is bound now, so a selection change before the
// timer fires cannot redirect the commit to another note.
func (d *Debouncer) Schedule(id int64, commit Commit) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.id = id
	d.pending = commit
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.seq != seq || d.pending == nil {
			d.mu.Unlock()
			return
		}
		fn, target := d.take()
		d.mu.Unlock()
		fn(target)
	})
}

// Pending reports whether a commit is waiting, and for which note.
func (d *Debouncer) Pending() (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id, d.pending != nil
}

// Flush runs the pending commit now, on the calling goroutine. It reports
// whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.pending == nil {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	fn, target := d.take()
	d.mu.Unlock()

	fn(target)
	return true
}

// Stop drops the pending commit without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	d.pending = nil
}

func (d *Debouncer) take() (Commit, int64) {
	fn, target := d.pending, d.id
	d.pending = nil
	d.timer = nil
	d.seq++
	return fn, target
}
