package service

import (
	"errors"
	"testing"
	"time"

	"femtoamp/internal/femto"
	"femtoamp/internal/models"
)

// fakeExchanger scripts replies per command and records every exchange.
type fakeExchanger struct {
	replies map[string]string
	err     error
	calls   []string
}

func (f *fakeExchanger) Exchange(cmd string) (string, error) {
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return "", f.err
	}
	return f.replies[cmd], nil
}

func (f *fakeExchanger) count(cmd string) int {
	n := 0
	for _, c := range f.calls {
		if c == cmd {
			n++
		}
	}
	return n
}

// fakeClock drives the cache's throttle windows deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(fx *fakeExchanger) (*StateCache, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewStateCache(fx)
	cache.now = clk.now
	return cache, clk
}

func TestStateCache_StatusThrottledWithinWindow(t *testing.T) {
	fx := &fakeExchanger{replies: map[string]string{"STATUS?": "001011"}}
	cache, clk := newTestCache(fx)

	first, err := cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if first.Gain != 4 || !first.Overload {
		t.Fatalf("unexpected snapshot: %+v", first)
	}

	// Second read inside the 0.5 s window must not hit the device.
	clk.advance(400 * time.Millisecond)
	fx.replies["STATUS?"] = "000000" // device changed; cache must not see it yet
	second, err := cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if fx.count("STATUS?") != 1 {
		t.Fatalf("STATUS? exchanges = %d, want 1", fx.count("STATUS?"))
	}
	if second != first {
		t.Fatalf("snapshot changed within throttle window: %+v vs %+v", second, first)
	}

	// Past the window a new exchange happens.
	clk.advance(200 * time.Millisecond)
	third, err := cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if fx.count("STATUS?") != 2 {
		t.Fatalf("STATUS? exchanges = %d, want 2", fx.count("STATUS?"))
	}
	if third.Gain != 0 || third.Overload {
		t.Fatalf("snapshot not refreshed past window: %+v", third)
	}
}

func TestStateCache_ClimateThrottledTenSeconds(t *testing.T) {
	fx := &fakeExchanger{replies: map[string]string{"TEMP?": "T=23.5;H=45.2"}}
	cache, clk := newTestCache(fx)

	first, err := cache.Climate()
	if err != nil {
		t.Fatalf("Climate: %v", err)
	}
	if first.TemperatureC != 23.5 || first.HumidityPct != 45.2 {
		t.Fatalf("unexpected snapshot: %+v", first)
	}

	clk.advance(9 * time.Second)
	if _, err := cache.Climate(); err != nil {
		t.Fatalf("Climate: %v", err)
	}
	if fx.count("TEMP?") != 1 {
		t.Fatalf("TEMP? exchanges = %d, want 1", fx.count("TEMP?"))
	}

	clk.advance(2 * time.Second)
	fx.replies["TEMP?"] = "T=24.0;H=44.0"
	second, err := cache.Climate()
	if err != nil {
		t.Fatalf("Climate: %v", err)
	}
	if fx.count("TEMP?") != 2 {
		t.Fatalf("TEMP? exchanges = %d, want 2", fx.count("TEMP?"))
	}
	if second.TemperatureC != 24.0 {
		t.Fatalf("snapshot not refreshed past window: %+v", second)
	}
}

func TestStateCache_FailedRefreshKeepsSnapshotAndRetriesPromptly(t *testing.T) {
	fx := &fakeExchanger{replies: map[string]string{"STATUS?": "001011"}}
	cache, clk := newTestCache(fx)

	good, err := cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	// Past the window the device times out: the caller gets the error
	// together with the last-known-good snapshot.
	clk.advance(time.Second)
	fx.err = femto.ErrTimeout
	snap, err := cache.Status()
	if !errors.Is(err, femto.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if snap != good {
		t.Fatalf("failed refresh altered the snapshot: %+v vs %+v", snap, good)
	}

	// The failure must not stamp the clock: the very next read retries
	// without waiting out the throttle window.
	fx.err = nil
	fx.replies["STATUS?"] = "111000"
	snap, err = cache.Status()
	if err != nil {
		t.Fatalf("Status after recovery: %v", err)
	}
	if fx.count("STATUS?") != 3 {
		t.Fatalf("STATUS? exchanges = %d, want 3 (prompt retry)", fx.count("STATUS?"))
	}
	if snap.Gain != 7 {
		t.Fatalf("recovered snapshot: %+v", snap)
	}
}

func TestStateCache_MalformedStatusReplyIsHardError(t *testing.T) {
	fx := &fakeExchanger{replies: map[string]string{"STATUS?": "001011"}}
	cache, clk := newTestCache(fx)

	good, err := cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	clk.advance(time.Second)
	fx.replies["STATUS?"] = "0a1011"
	snap, err := cache.Status()
	if !errors.Is(err, femto.ErrBadReply) {
		t.Fatalf("err = %v, want ErrBadReply", err)
	}
	if snap != good {
		t.Fatalf("malformed reply altered the snapshot: %+v", snap)
	}
}

func TestStateCache_EmptyStatusReplyIsHardError(t *testing.T) {
	fx := &fakeExchanger{replies: map[string]string{"STATUS?": ""}}
	cache, _ := newTestCache(fx)

	if _, err := cache.Status(); !errors.Is(err, femto.ErrBadReply) {
		t.Fatalf("err = %v, want ErrBadReply for empty reply", err)
	}
}

func TestStateCache_MalformedClimateReplyIsHardError(t *testing.T) {
	fx := &fakeExchanger{replies: map[string]string{"TEMP?": "sensor offline"}}
	cache, _ := newTestCache(fx)

	if _, err := cache.Climate(); !errors.Is(err, femto.ErrBadReply) {
		t.Fatalf("err = %v, want ErrBadReply", err)
	}
}

func TestStateCache_AmplificationFromFreshStatus(t *testing.T) {
	// gain=0, speed=High → 10^3
	fx := &fakeExchanger{replies: map[string]string{"STATUS?": "000000"}}
	cache, clk := newTestCache(fx)
	amp, err := cache.Amplification()
	if err != nil {
		t.Fatalf("Amplification: %v", err)
	}
	if amp != 1e3 {
		t.Fatalf("amplification = %v, want 1e3", amp)
	}

	// gain=2, speed=Low → 10^7
	clk.advance(time.Second)
	fx.replies["STATUS?"] = "010010"
	amp, err = cache.Amplification()
	if err != nil {
		t.Fatalf("Amplification: %v", err)
	}
	if amp != 1e7 {
		t.Fatalf("amplification = %v, want 1e7", amp)
	}
}

func TestStatusSnapshot_AmplificationIsPure(t *testing.T) {
	cases := []struct {
		gain  int
		speed models.SpeedMode
		want  float64
	}{
		{0, models.SpeedHigh, 1e3},
		{2, models.SpeedLow, 1e7},
		{7, models.SpeedHigh, 1e10},
		{7, models.SpeedLow, 1e12},
	}
	for _, c := range cases {
		snap := models.StatusSnapshot{Gain: c.gain, Speed: c.speed}
		if got := snap.Amplification(); got != c.want {
			t.Fatalf("amplification(gain=%d, speed=%v) = %v, want %v", c.gain, c.speed, got, c.want)
		}
		if again := snap.Amplification(); again != c.want {
			t.Fatalf("amplification not deterministic for gain=%d", c.gain)
		}
	}
}

func TestStateCache_HealthAndLifecycleDerivation(t *testing.T) {
	fx := &fakeExchanger{replies: map[string]string{"STATUS?": "000001"}}
	cache, clk := newTestCache(fx)

	if got := cache.Lifecycle(); got != models.StateInitializing {
		t.Fatalf("lifecycle before first contact = %v, want INITIALIZING", got)
	}
	cache.MarkConnected()
	if got := cache.Lifecycle(); got != models.StateOperational {
		t.Fatalf("lifecycle after handshake = %v, want OPERATIONAL", got)
	}

	snap, err := cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if snap.Health() != models.HealthOverload {
		t.Fatalf("health = %v, want OVERLOAD", snap.Health())
	}
	if got := cache.Lifecycle(); got != models.StateFaulted {
		t.Fatalf("lifecycle with overload = %v, want FAULTED", got)
	}

	// Overload is not latched: once the bit clears, so does the fault.
	clk.advance(time.Second)
	fx.replies["STATUS?"] = "000000"
	snap, err = cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if snap.Health() != models.HealthNormal {
		t.Fatalf("health = %v, want NORMAL", snap.Health())
	}
	if got := cache.Lifecycle(); got != models.StateOperational {
		t.Fatalf("lifecycle after clear = %v, want OPERATIONAL", got)
	}
}

func TestStateCache_WritesDoNotTouchTheCache(t *testing.T) {
	fx := &fakeExchanger{replies: map[string]string{"STATUS?": "001011"}}
	cache, clk := newTestCache(fx)

	before, err := cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	if err := cache.SetGain(1); err != nil {
		t.Fatalf("SetGain: %v", err)
	}
	if err := cache.SetCoupling(models.CouplingDC); err != nil {
		t.Fatalf("SetCoupling: %v", err)
	}
	if err := cache.SetSpeed(models.SpeedLow); err != nil {
		t.Fatalf("SetSpeed: %v", err)
	}

	wantCalls := []string{"STATUS?", "GAIN=1", "ACDC=1", "SPEED=1"}
	if len(fx.calls) != len(wantCalls) {
		t.Fatalf("calls = %v, want %v", fx.calls, wantCalls)
	}
	for i, c := range wantCalls {
		if fx.calls[i] != c {
			t.Fatalf("call %d = %q, want %q", i, fx.calls[i], c)
		}
	}

	// Within the throttle window the cached snapshot still shows the
	// pre-write values; ground truth returns with the next refresh.
	after, err := cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if after != before {
		t.Fatalf("write optimistically updated the cache: %+v", after)
	}

	clk.advance(time.Second)
	fx.replies["STATUS?"] = "100110"
	refetched, err := cache.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if refetched.Gain != 1 || refetched.Coupling != models.CouplingDC || refetched.Speed != models.SpeedLow {
		t.Fatalf("refreshed snapshot does not reflect device truth: %+v", refetched)
	}
}

func TestStateCache_SetGainRejectsOutOfRange(t *testing.T) {
	fx := &fakeExchanger{}
	cache, _ := newTestCache(fx)

	for _, v := range []int{-1, 8, 42} {
		if err := cache.SetGain(v); err == nil {
			t.Fatalf("SetGain(%d) accepted, want range error", v)
		}
	}
	if len(fx.calls) != 0 {
		t.Fatalf("out-of-range writes reached the device: %v", fx.calls)
	}
}
