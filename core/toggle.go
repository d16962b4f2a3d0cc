package core

// ControllerConfig describes the output the controller drives.
type ControllerConfig struct {
	Pin GPIOPin
	// ActiveLow marks an LED wired to light when the pin is low. Assert
	// still means "LED on".
	ActiveLow bool
}

// Controller is the toggle controller: a tick handler that flips the desired
// level and a foreground loop that applies it to the pin.
type Controller struct {
	level *DesiredLevel
	gpio  GPIODriver
	trace *Trace
	cfg   ControllerConfig
}

// NewController wires the shared level, the pin driver and the trace queue.
// The pin must already be configured as an output.
func NewController(level *DesiredLevel, gpio GPIODriver, trace *Trace, cfg ControllerConfig) *Controller {
	if trace == nil {
		trace = NewTrace(nil)
	}
	return &Controller{
		level: level,
		gpio:  gpio,
		trace: trace,
		cfg:   cfg,
	}
}

// Level returns the shared desired level.
func (c *Controller) Level() *DesiredLevel { return c.level }

// OnTick is the timer handler. It runs in interrupt context: flip the level,
// queue one trace line, return. It never touches the pin.
func (c *Controller) OnTick() {
	c.level.Toggle()
	c.trace.Post(TraceTick)
}

// Drive performs one foreground iteration: read the level and write the pin.
// The write is issued every time, even when the level is unchanged, and its
// error is ignored.
//
// Drive only sees the latest level. If ticks ever arrive faster than the
// loop polls, intermediate levels are skipped; at a 500ms period against an
// unthrottled loop that does not happen.
func (c *Controller) Drive() {
	on := bool(c.level.Load())
	_ = c.gpio.SetPin(c.cfg.Pin, on != c.cfg.ActiveLow)
}

// Run drives the pin forever, draining the trace queue between writes.
func (c *Controller) Run() {
	for {
		c.Drive()
		c.trace.Flush()
	}
}

// StepLoopDriven is one iteration of the single-context variant: drive the
// pin, wait out the period, then flip the level from the loop itself.
func (c *Controller) StepLoopDriven(wait func()) {
	c.Drive()
	wait()
	c.OnTick()
	c.trace.Flush()
}

// RunLoopDriven blinks without a timer interrupt, using wait as the delay.
func (c *Controller) RunLoopDriven(wait func()) {
	for {
		c.StepLoopDriven(wait)
	}
}
