// Package boards holds the table of known board profiles: where the LED is,
// which timer feed blinks it and where trace lines go. It is used by the
// hosted builds and the host monitor; firmware bakes its profile in at
// compile time.
package boards

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"picoblink/core"
)

//go:embed boards.yaml
var rawBoards []byte

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidBoard  = errors.New("invalid board profile")
)

type Boards []Board

type Board struct {
	Name  string `yaml:"name"`
	Chip  string `yaml:"chip"`
	LED   LED    `yaml:"led"`
	Timer Timer  `yaml:"timer"`
	Trace Trace  `yaml:"trace"`
}

type LED struct {
	Pin       int    `yaml:"pin"`
	Kind      string `yaml:"kind"`     // gpio or ws2812
	GPIOName  string `yaml:"gpioName"` // name in the host GPIO registry
	ActiveLow bool   `yaml:"activeLow"`
}

type Timer struct {
	Source  string        `yaml:"source"` // processor, reference or pio
	ClockHz uint32        `yaml:"clockHz"`
	Period  time.Duration `yaml:"period"`
}

type Trace struct {
	Sink   string `yaml:"sink"`   // usb, uart or stdout
	Format string `yaml:"format"` // text or framed
	Baud   int    `yaml:"baud"`
}

var builtin Boards

// All returns the built-in board table.
func All() Boards {
	return builtin
}

// Parse decodes and validates a board table in the same format as the
// built-in one.
func Parse(data []byte) (Boards, error) {
	var t struct {
		Elements Boards `yaml:"boards"`
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse boards: %w", err)
	}
	for i := range t.Elements {
		t.Elements[i].applyDefaults()
		if err := t.Elements[i].Validate(); err != nil {
			return nil, err
		}
	}
	return t.Elements, nil
}

// Find looks a board up by name, case-insensitively.
func (b Boards) Find(name string) (Board, error) {
	for _, board := range b {
		if strings.EqualFold(board.Name, name) {
			return board, nil
		}
	}
	return Board{}, fmt.Errorf("%w: %s", ErrBoardNotFound, name)
}

// Names lists the board names in table order.
func (b Boards) Names() []string {
	names := make([]string, len(b))
	for i, board := range b {
		names[i] = board.Name
	}
	return names
}

func (b *Board) applyDefaults() {
	if b.LED.Kind == "" {
		b.LED.Kind = "gpio"
	}
	if b.LED.GPIOName == "" {
		b.LED.GPIOName = fmt.Sprintf("GPIO%d", b.LED.Pin)
	}
	if b.Timer.Source == "" {
		b.Timer.Source = "reference"
	}
	if b.Timer.Period == 0 {
		b.Timer.Period = 500 * time.Millisecond
	}
	if b.Trace.Format == "" {
		b.Trace.Format = "text"
	}
	if b.Trace.Baud == 0 {
		b.Trace.Baud = 115200
	}
}

// Validate checks a profile for values the firmware cannot honour.
func (b Board) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidBoard)
	}
	if b.LED.Pin < 0 {
		return fmt.Errorf("%w: %s: negative LED pin", ErrInvalidBoard, b.Name)
	}
	switch b.LED.Kind {
	case "gpio", "ws2812":
	default:
		return fmt.Errorf("%w: %s: unknown LED kind %q", ErrInvalidBoard, b.Name, b.LED.Kind)
	}
	if _, err := b.ClockSource(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidBoard, b.Name, err)
	}
	if b.Timer.ClockHz == 0 {
		return fmt.Errorf("%w: %s: clockHz not set", ErrInvalidBoard, b.Name)
	}
	if b.Timer.Period <= 0 {
		return fmt.Errorf("%w: %s: period must be positive", ErrInvalidBoard, b.Name)
	}
	switch b.Trace.Format {
	case "text", "framed":
	default:
		return fmt.Errorf("%w: %s: unknown trace format %q", ErrInvalidBoard, b.Name, b.Trace.Format)
	}
	return nil
}

// ClockSource maps the profile's timer source onto the core feed.
func (b Board) ClockSource() (core.ClockSource, error) {
	switch b.Timer.Source {
	case "processor":
		return core.ClockProcessor, nil
	case "reference":
		return core.ClockReference, nil
	case "pio":
		return core.ClockPIO, nil
	default:
		return 0, fmt.Errorf("unknown timer source %q", b.Timer.Source)
	}
}

// TimerConfig returns the core timer configuration for one blink period.
func (b Board) TimerConfig() (core.TimerConfig, error) {
	src, err := b.ClockSource()
	if err != nil {
		return core.TimerConfig{}, err
	}
	return core.TimerConfig{
		Source: src,
		Reload: core.ReloadFor(b.Timer.Period, b.Timer.ClockHz),
	}, nil
}

// ControllerConfig returns the toggle controller configuration.
func (b Board) ControllerConfig() core.ControllerConfig {
	return core.ControllerConfig{
		Pin:       core.GPIOPin(b.LED.Pin),
		ActiveLow: b.LED.ActiveLow,
	}
}

func init() {
	t, err := Parse(rawBoards)
	if err != nil {
		panic(err)
	}
	builtin = t
}
