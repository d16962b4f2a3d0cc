//go:build !tinygo

package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// softTimerMaxReload matches the 24-bit SysTick counter so configurations
// validated on the host also fit on hardware.
const softTimerMaxReload = 1<<24 - 1

// SoftTimer is a TimerDriver for hosted builds. A single goroutine plays the
// interrupt context: expiries are delivered one at a time and never nest.
type SoftTimer struct {
	refHz  uint32
	procHz uint32

	handler func()
	period  time.Duration

	irq      atomic.Bool
	expiries atomic.Uint32

	mu      sync.Mutex
	ticker  *time.Ticker
	stop    chan struct{}
	done    chan struct{}
	stopped bool
}

// NewSoftTimer creates a soft timer whose reference feed runs at refHz and
// whose processor feed runs at procHz. A zero rate means that feed is not
// running.
func NewSoftTimer(refHz, procHz uint32) *SoftTimer {
	return &SoftTimer{
		refHz:  refHz,
		procHz: procHz,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (s *SoftTimer) Supports(source ClockSource) bool {
	return source == ClockProcessor || source == ClockReference
}

func (s *SoftTimer) MaxReload() uint32 { return softTimerMaxReload }

func (s *SoftTimer) SetHandler(handler func()) { s.handler = handler }

func (s *SoftTimer) Configure(source ClockSource, reload uint32) error {
	var hz uint32
	switch source {
	case ClockReference:
		hz = s.refHz
	case ClockProcessor:
		hz = s.procHz
	default:
		return ErrUnsupportedClock
	}
	if hz == 0 {
		return ErrClockNotRunning
	}
	period := time.Duration(uint64(reload) * uint64(time.Second) / uint64(hz))
	if period <= 0 {
		period = time.Nanosecond
	}
	s.period = period
	return nil
}

// ClearCount restarts the current period.
func (s *SoftTimer) ClearCount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker != nil {
		s.ticker.Reset(s.period)
	}
}

func (s *SoftTimer) EnableCounting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker != nil || s.stopped {
		return
	}
	s.ticker = time.NewTicker(s.period)
	go s.run(s.ticker)
}

func (s *SoftTimer) EnableInterrupt() { s.irq.Store(true) }

// Period returns the configured expiry interval.
func (s *SoftTimer) Period() time.Duration { return s.period }

// Expiries returns how many times the counter has expired since counting
// started, whether or not the interrupt was enabled.
func (s *SoftTimer) Expiries() uint32 { return s.expiries.Load() }

// Stop halts the counter and waits for an in-flight handler to return.
// Hardware timers have no equivalent; it exists for tests and clean exits.
func (s *SoftTimer) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.ticker != nil
	close(s.stop)
	s.mu.Unlock()

	if started {
		<-s.done
	}
}

func (s *SoftTimer) run(t *time.Ticker) {
	defer close(s.done)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.expiries.Add(1)
			if s.irq.Load() && s.handler != nil {
				s.handler()
			}
		}
	}
}
