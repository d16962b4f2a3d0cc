package core

import "sync"

// MockGPIODriver is a test implementation of GPIODriver that records every
// write and every observable transition.
type MockGPIODriver struct {
	mu          sync.Mutex
	pins        map[GPIOPin]bool
	configured  map[GPIOPin]bool
	writes      int
	transitions []bool
	failWrites  bool
}

func NewMockGPIODriver() *MockGPIODriver {
	return &MockGPIODriver{
		pins:       make(map[GPIOPin]bool),
		configured: make(map[GPIOPin]bool),
	}
}

func (m *MockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configured[pin] = true
	m.pins[pin] = false
	return nil
}

func (m *MockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.failWrites {
		return ErrPinUnavailable
	}
	if prev, ok := m.pins[pin]; !ok || prev != value {
		m.transitions = append(m.transitions, value)
	}
	m.pins[pin] = value
	return nil
}

func (m *MockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pins[pin], nil
}

func (m *MockGPIODriver) level(pin GPIOPin) bool {
	v, _ := m.GetPin(pin)
	return v
}

func (m *MockGPIODriver) counts() (writes, transitions int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes, len(m.transitions)
}

// MockTimerDriver records the order in which Arm sequences it.
type MockTimerDriver struct {
	calls   []string
	handler func()
	source  ClockSource
	reload  uint32
	max     uint32
	sources map[ClockSource]bool
	cfgErr  error
}

func NewMockTimerDriver() *MockTimerDriver {
	return &MockTimerDriver{
		max:     1<<24 - 1,
		sources: map[ClockSource]bool{ClockProcessor: true, ClockReference: true},
	}
}

func (m *MockTimerDriver) Supports(source ClockSource) bool { return m.sources[source] }
func (m *MockTimerDriver) MaxReload() uint32                { return m.max }

func (m *MockTimerDriver) SetHandler(handler func()) {
	m.calls = append(m.calls, "handler")
	m.handler = handler
}

func (m *MockTimerDriver) Configure(source ClockSource, reload uint32) error {
	m.calls = append(m.calls, "configure")
	m.source = source
	m.reload = reload
	return m.cfgErr
}

func (m *MockTimerDriver) ClearCount()      { m.calls = append(m.calls, "clear") }
func (m *MockTimerDriver) EnableCounting()  { m.calls = append(m.calls, "count") }
func (m *MockTimerDriver) EnableInterrupt() { m.calls = append(m.calls, "irq") }

// fire simulates one expiry.
func (m *MockTimerDriver) fire() {
	if m.handler != nil {
		m.handler()
	}
}
