package countdown

import (
	"testing"
	"time"
)

// ============================================================
// Until
// ============================================================

func TestUntilFuture(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		diff time.Duration
		want Remaining
	}{
		{"one second", time.Second, Remaining{Seconds: 1}},
		{"one minute", time.Minute, Remaining{Minutes: 1}},
		{"one hour", time.Hour, Remaining{Hours: 1}},
		{"one day", 24 * time.Hour, Remaining{Days: 1}},
		{"mixed", 49*time.Hour + 30*time.Minute + 15*time.Second, Remaining{Days: 2, Hours: 1, Minutes: 30, Seconds: 15}},
		{"just under a day", 24*time.Hour - time.Second, Remaining{Hours: 23, Minutes: 59, Seconds: 59}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Until(now.Add(tt.diff), now)
			if got != tt.want {
				t.Fatalf("Until(+%v) = %+v, want %+v", tt.diff, got, tt.want)
			}
		})
	}
}

func TestUntilRoundTripSeconds(t *testing.T) {
	// The breakdown must flatten back to the whole-second difference.
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	for _, secs := range []int64{1, 59, 60, 3599, 3600, 86399, 86400, 86401, 123456789} {
		r := Until(now.Add(time.Duration(secs)*time.Second), now)
		if r.Expired {
			t.Fatalf("%d seconds out should not be expired", secs)
		}
		if r.TotalSeconds() != secs {
			t.Fatalf("breakdown of %ds flattens to %ds", secs, r.TotalSeconds())
		}
	}
}

func TestUntilTruncatesSubSecond(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Until(now.Add(time.Second+900*time.Millisecond), now)
	if r.TotalSeconds() != 1 {
		t.Fatalf("expected 1.9s to truncate to 1s, got %d", r.TotalSeconds())
	}
}

func TestUntilExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	terminal := Remaining{Expired: true}

	for _, diff := range []time.Duration{0, -time.Second, -time.Hour, -365 * 24 * time.Hour, 500 * time.Millisecond} {
		got := Until(now.Add(diff), now)
		if got != terminal {
			t.Fatalf("Until(%v) = %+v, want terminal snapshot", diff, got)
		}
	}
}

func TestUntilOneHourScenario(t *testing.T) {
	now := time.Now()
	r := Until(now.Add(time.Hour), now)
	if r.Expired {
		t.Fatal("one hour out should not be expired")
	}
	if r.Days != 0 || r.Minutes != 0 {
		t.Fatalf("unexpected breakdown: %+v", r)
	}
	// Exactly on the boundary this is 1h; a hair later 59:59.xx.
	if r.Hours == 1 && r.Seconds != 0 {
		t.Fatalf("unexpected breakdown: %+v", r)
	}
	if r.Hours == 0 && (r.Minutes != 59 || r.Seconds != 59) {
		t.Fatalf("unexpected breakdown: %+v", r)
	}
}

// ============================================================
// Date parsing
// ============================================================

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2030-01-01T00:00", time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local)},
		{"2030-01-01T12:34:56", time.Date(2030, 1, 1, 12, 34, 56, 0, time.Local)},
		{"2030-01-01 12:34", time.Date(2030, 1, 1, 12, 34, 0, 0, time.Local)},
		{"2030-06-15", time.Date(2030, 6, 15, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "01/02/2030", "2030-13-45T00:00"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("ParseDate(%q) should fail", in)
		}
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	orig := time.Date(2030, 12, 31, 23, 59, 0, 0, time.Local)
	parsed, err := ParseDate(FormatDate(orig))
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Equal(orig) {
		t.Fatalf("round trip: got %v, want %v", parsed, orig)
	}
}

// ============================================================
// Driver
// ============================================================

// fakeScheduler collects scheduled callbacks and fires them manually.
type fakeScheduler struct {
	pending  []func()
	canceled int
}

func (f *fakeScheduler) AfterFunc(_ time.Duration, fn func()) func() {
	f.pending = append(f.pending, fn)
	i := len(f.pending) - 1
	return func() {
		if f.pending[i] != nil {
			f.pending[i] = nil
			f.canceled++
		}
	}
}

// fire runs every still-pending callback once.
func (f *fakeScheduler) fire() {
	pending := f.pending
	f.pending = nil
	for _, fn := range pending {
		if fn != nil {
			fn()
		}
	}
}

func (f *fakeScheduler) pendingCount() int {
	n := 0
	for _, fn := range f.pending {
		if fn != nil {
			n++
		}
	}
	return n
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestDriver(t *testing.T, target time.Time, clock *fakeClock) (*Driver, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	return newDriver(target, sched, clock.Now), sched
}

func readSnapshot(t *testing.T, d *Driver) Remaining {
	t.Helper()
	select {
	case r := <-d.C():
		return r
	default:
		t.Fatal("no snapshot available")
		return Remaining{}
	}
}

func TestDriverPublishesImmediately(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d, sched := newTestDriver(t, clock.now.Add(10*time.Second), clock)

	d.Start()
	r := readSnapshot(t, d)
	if r.Seconds != 10 || r.Expired {
		t.Fatalf("unexpected first snapshot: %+v", r)
	}
	if sched.pendingCount() != 1 {
		t.Fatalf("expected one scheduled tick, got %d", sched.pendingCount())
	}
}

func TestDriverTicks(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d, sched := newTestDriver(t, clock.now.Add(3*time.Second), clock)

	d.Start()
	readSnapshot(t, d)

	clock.advance(time.Second)
	sched.fire()
	r := readSnapshot(t, d)
	if r.Seconds != 2 {
		t.Fatalf("expected 2s remaining, got %+v", r)
	}
}

func TestDriverStopsAtExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d, sched := newTestDriver(t, clock.now.Add(time.Second), clock)

	d.Start()
	readSnapshot(t, d)

	clock.advance(time.Second)
	sched.fire()
	r := readSnapshot(t, d)
	if !r.Expired {
		t.Fatalf("expected terminal snapshot, got %+v", r)
	}
	if sched.pendingCount() != 0 {
		t.Fatal("expired driver must not reschedule")
	}
}

func TestDriverKeepsFreshestSnapshot(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d, sched := newTestDriver(t, clock.now.Add(10*time.Second), clock)

	d.Start()
	// Nobody reads; two more ticks pass.
	clock.advance(time.Second)
	sched.fire()
	clock.advance(time.Second)
	sched.fire()

	r := readSnapshot(t, d)
	if r.Seconds != 8 {
		t.Fatalf("expected only the freshest snapshot (8s), got %+v", r)
	}
	select {
	case r := <-d.C():
		t.Fatalf("stale snapshot retained: %+v", r)
	default:
	}
}

func TestDriverRetarget(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d, sched := newTestDriver(t, clock.now.Add(10*time.Second), clock)

	d.Start()

	d.Retarget(clock.now.Add(time.Minute))
	if sched.canceled != 1 {
		t.Fatalf("retarget should cancel the pending tick, canceled=%d", sched.canceled)
	}

	// The unread 10s snapshot has been replaced by the new target's.
	r := readSnapshot(t, d)
	if r.Minutes != 1 || r.Seconds != 0 {
		t.Fatalf("expected snapshot for new target, got %+v", r)
	}

	clock.advance(time.Second)
	sched.fire()
	r = readSnapshot(t, d)
	if r.Seconds != 59 {
		t.Fatalf("expected ticking to resume, got %+v", r)
	}
}

func TestDriverRetargetRevivesExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d, sched := newTestDriver(t, clock.now.Add(-time.Hour), clock)

	d.Start()
	r := readSnapshot(t, d)
	if !r.Expired {
		t.Fatalf("expected expired snapshot, got %+v", r)
	}
	if sched.pendingCount() != 0 {
		t.Fatal("expired driver must not tick")
	}

	d.Retarget(clock.now.Add(5 * time.Second))
	r = readSnapshot(t, d)
	if r.Expired || r.Seconds != 5 {
		t.Fatalf("expected live snapshot after retarget, got %+v", r)
	}
	if sched.pendingCount() != 1 {
		t.Fatal("retargeted driver should tick again")
	}
}

func TestDriverStop(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d, sched := newTestDriver(t, clock.now.Add(10*time.Second), clock)

	d.Start()
	readSnapshot(t, d)

	d.Stop()
	if sched.canceled != 1 {
		t.Fatalf("stop should cancel the pending tick, canceled=%d", sched.canceled)
	}

	// A tick that already fired before Stop got to cancel it must not
	// publish either, and stopped drivers stay stopped.
	clock.advance(time.Second)
	sched.fire()
	d.Start()
	d.Retarget(clock.now.Add(time.Hour))

	if r, ok := <-d.C(); ok {
		t.Fatalf("snapshot published after Stop: %+v", r)
	}
}

func TestDriverStopClosesChannel(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d, _ := newTestDriver(t, clock.now.Add(10*time.Second), clock)

	d.Start()
	d.Stop()
	d.Stop() // repeated Stop is a no-op

	// The unread start snapshot drains, then the channel reports closed.
	if _, ok := <-d.C(); !ok {
		t.Fatal("start snapshot should still drain")
	}
	if _, ok := <-d.C(); ok {
		t.Fatal("channel should be closed after Stop")
	}
}
