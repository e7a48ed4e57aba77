package game

import (
	"encoding/json"
	"time"
)

// Clock is a monotonic elapsed-time accumulator. It is embedded in Config
// rather than exposed as a separate public type because every mutation
// that touches it must happen under the Config's write hold; the type is
// still factored out so its four operations (RunTime, Start, Stop,
// resetScores's clock half) stay easy to reason about in isolation.
type Clock struct {
	lastStart time.Time
	elapsed   time.Duration
	active    bool
}

// RunTime returns the total elapsed game time: the accumulated elapsed
// duration, plus time since lastStart if the clock is currently running.
func (c *Clock) RunTime() time.Duration {
	if !c.active {
		return c.elapsed
	}
	return c.elapsed + time.Since(c.lastStart)
}

// Start begins the clock if it is not already running. A no-op when
// already active.
func (c *Clock) Start() {
	if c.active {
		return
	}
	c.active = true
	c.lastStart = time.Now()
}

// Stop pauses the clock, folding the time since lastStart into elapsed. A
// no-op when already inactive.
func (c *Clock) Stop() {
	if !c.active {
		return
	}
	c.elapsed += time.Since(c.lastStart)
	c.active = false
}

// Active reports whether the clock is currently running.
func (c *Clock) Active() bool {
	return c.active
}

// reset stops the clock and zeroes the accumulated elapsed time.
func (c *Clock) reset() {
	c.active = false
	c.elapsed = 0
}

// RunMinutes returns RunTime truncated to whole minutes, the unit inject
// activation windows are expressed in.
func (c *Clock) RunMinutes() uint32 {
	return uint32(c.RunTime() / time.Minute)
}

// clockWire is the JSON wire representation of a Clock. lastStart is never
// persisted: a restored clock always comes back paused, resumed only by an
// explicit Start.
type clockWire struct {
	ElapsedMS int64 `json:"elapsed_ms"`
	Active    bool  `json:"active"`
}

// MarshalJSON implements json.Marshaler, persisting the accumulated game
// time in milliseconds.
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(clockWire{
		ElapsedMS: c.RunTime().Milliseconds(),
		Active:    c.active,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The restored clock is always
// inactive regardless of the persisted active flag.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var wire clockWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	c.elapsed = time.Duration(wire.ElapsedMS) * time.Millisecond
	c.active = false
	c.lastStart = time.Time{}
	return nil
}
