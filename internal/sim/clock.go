package sim

// Clock is simulation time in seconds, advanced only by Tick.
type Clock struct {
	now float64
}

func (c *Clock) Now() float64 { return c.now }

func (c *Clock) Advance(dt float64) { c.now += dt }
