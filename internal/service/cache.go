package service

import (
	"fmt"
	"sync"
	"time"

	"femtoamp/internal/femto"
	"femtoamp/internal/models"
)

// Exchanger executes one command/reply round trip against the device.
// Implemented by *femto.Session.
type Exchanger interface {
	Exchange(cmd string) (string, error)
}

// The embedded controller is slow and single-threaded; status and
// climate are each re-read no faster than these intervals. Climate is
// the slower of the two because the sensor read itself takes a while.
const (
	statusMinInterval  = 500 * time.Millisecond
	climateMinInterval = 10 * time.Second
)

const maxGain = 7

// StateCache is the sole owner of the cached device state. Reads are
// lazy: each accessor refreshes its snapshot group from the session
// only when the group's throttle window has elapsed. Writes go straight
// to the device and deliberately do not touch the cache; the next
// throttled status read restores ground truth. One mutex serializes all
// access per device instance, which also keeps session exchanges
// strictly one-at-a-time.
type StateCache struct {
	mu      sync.Mutex
	session Exchanger
	now     func() time.Time

	status  models.StatusSnapshot
	climate models.ClimateSnapshot
	state   models.LifecycleState
}

func NewStateCache(session Exchanger) *StateCache {
	return &StateCache{
		session: session,
		now:     time.Now,
		state:   models.StateInitializing,
	}
}

// MarkConnected moves the lifecycle out of INITIALIZING after the
// startup handshake succeeds.
func (c *StateCache) MarkConnected() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == models.StateInitializing {
		c.state = models.StateOperational
	}
}

// Lifecycle returns the current externally visible device state.
func (c *StateCache) Lifecycle() models.LifecycleState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns the status snapshot, refreshing it first if the status
// throttle window has elapsed. On a failed refresh the previous
// snapshot is returned alongside the error so callers keep last-known-
// good values; its timestamp is not advanced, so the next call retries
// immediately instead of honoring the window against a failed attempt.
func (c *StateCache) Status() (models.StatusSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.refreshStatusLocked()
	return c.status, err
}

// Climate returns the temperature/humidity snapshot under the same
// contract as Status, with the 10 s window.
func (c *StateCache) Climate() (models.ClimateSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.refreshClimateLocked()
	return c.climate, err
}

// Amplification computes the transimpedance from the freshest status
// snapshot, gating a throttled refresh first. It is never cached on its
// own, so it cannot go stale relative to gain and speed.
func (c *StateCache) Amplification() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refreshStatusLocked(); err != nil {
		return 0, err
	}
	return c.status.Amplification(), nil
}

// SetGain writes a new gain step (0..7). The cached snapshot is left
// untouched: the next status read past the throttle window re-reads
// what the device actually applied.
func (c *StateCache) SetGain(value int) error {
	if value < 0 || value > maxGain {
		return fmt.Errorf("gain %d out of range 0..%d", value, maxGain)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.session.Exchange(femto.GainCommand(value)); err != nil {
		return fmt.Errorf("set gain: %w", err)
	}
	return nil
}

// SetCoupling writes the input coupling mode.
func (c *StateCache) SetCoupling(mode models.CouplingMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.session.Exchange(femto.CouplingCommand(int(mode))); err != nil {
		return fmt.Errorf("set coupling: %w", err)
	}
	return nil
}

// SetSpeed writes the speed mode.
func (c *StateCache) SetSpeed(mode models.SpeedMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.session.Exchange(femto.SpeedCommand(int(mode))); err != nil {
		return fmt.Errorf("set speed: %w", err)
	}
	return nil
}

// refreshStatusLocked re-reads STATUS? unless the last successful read
// is younger than the throttle window. All four fields and the
// timestamp are swapped in together, or not at all.
func (c *StateCache) refreshStatusLocked() error {
	if c.now().Sub(c.status.RefreshedAt) < statusMinInterval {
		return nil
	}
	reply, err := c.session.Exchange(femto.CmdStatus)
	if err != nil {
		return fmt.Errorf("refresh status: %w", err)
	}
	if reply == "" {
		return fmt.Errorf("refresh status: %w: empty reply", femto.ErrBadReply)
	}
	snap, err := femto.ParseStatus(reply)
	if err != nil {
		return fmt.Errorf("refresh status: %w", err)
	}
	snap.RefreshedAt = c.now()
	c.status = snap
	if snap.Overload {
		c.state = models.StateFaulted
	} else {
		c.state = models.StateOperational
	}
	return nil
}

// refreshClimateLocked re-reads TEMP? unless the last successful read
// is younger than the throttle window.
func (c *StateCache) refreshClimateLocked() error {
	if c.now().Sub(c.climate.RefreshedAt) < climateMinInterval {
		return nil
	}
	reply, err := c.session.Exchange(femto.CmdClimate)
	if err != nil {
		return fmt.Errorf("refresh climate: %w", err)
	}
	if reply == "" {
		return fmt.Errorf("refresh climate: %w: empty reply", femto.ErrBadReply)
	}
	snap, err := femto.ParseClimate(reply)
	if err != nil {
		return fmt.Errorf("refresh climate: %w", err)
	}
	snap.RefreshedAt = c.now()
	c.climate = snap
	return nil
}
