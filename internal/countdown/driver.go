package countdown

import (
	"sync"
	"time"
)

const tickInterval = time.Second

// Scheduler schedules a single callback after a delay. The returned
// function cancels the callback if it has not fired yet. Tests inject a
// fake to advance time deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Driver republishes a Remaining snapshot for one target every second.
// It publishes immediately on Start, stops ticking for good once the
// target expires, and guarantees no publication after Stop. A Driver is
// scoped to whatever is displaying the countdown; the displayer must
// call Stop when it lets go.
type Driver struct {
	mu      sync.Mutex
	target  time.Time
	sched   Scheduler
	now     func() time.Time
	ch      chan Remaining
	cancel  func()
	stopped bool
}

func NewDriver(target time.Time) *Driver {
	return newDriver(target, systemScheduler{}, time.Now)
}

func newDriver(target time.Time, sched Scheduler, now func() time.Time) *Driver {
	return &Driver{
		target: target,
		sched:  sched,
		now:    now,
		ch:     make(chan Remaining, 1),
	}
}

// C delivers snapshots. Only the freshest snapshot is retained: a slow
// consumer never reads one older than the tick interval. The channel is
// closed by Stop.
func (d *Driver) C() <-chan Remaining { return d.ch }

// Start publishes an immediate snapshot and begins ticking.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.tickLocked()
}

// Retarget points the driver at a new instant: any pending tick is
// discarded, a snapshot for the new target is published immediately and
// ticking resumes, even if the previous target had expired.
func (d *Driver) Retarget(target time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.target = target
	if d.stopped {
		return
	}
	d.tickLocked()
}

// Stop cancels any scheduled tick and closes the snapshot channel. No
// snapshot is published afterwards; a stopped driver stays stopped.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	close(d.ch)
}

func (d *Driver) tick() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.tickLocked()
}

func (d *Driver) tickLocked() {
	r := Until(d.target, d.now())
	d.publish(r)
	if r.Expired {
		// Terminal: no further recomputation for this target.
		d.cancel = nil
		return
	}
	d.cancel = d.sched.AfterFunc(tickInterval, d.tick)
}

func (d *Driver) publish(r Remaining) {
	for {
		select {
		case d.ch <- r:
			return
		default:
		}
		// Drop the stale snapshot and retry.
		select {
		case <-d.ch:
		default:
		}
	}
}
