//go:build !tinygo

// Command linux blinks an LED on a Linux single-board computer with the same
// toggle controller the firmware uses. The soft timer stands in for SysTick.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"picoblink/boards"
	"picoblink/core"
)

func main() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		<-stop
		close(done)
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, done))
}

type options struct {
	board      string
	boardsFile string
	period     time.Duration
	duration   time.Duration
	loopDriven bool
	dryRun     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("picoblink", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.board, "board", "rpi", "Board profile name")
	fs.StringVar(&o.boardsFile, "boards", "", "Board table YAML file (default: built-in table)")
	fs.DurationVar(&o.period, "period", 0, "Blink period override")
	fs.DurationVar(&o.duration, "for", 0, "Stop after this long (0 = run until interrupted)")
	fs.BoolVar(&o.loopDriven, "loop", false, "Blink from the main loop with a sleep instead of a timer")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Print LED changes instead of driving GPIO")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func loadBoard(o options) (boards.Board, error) {
	table := boards.All()
	if o.boardsFile != "" {
		data, err := os.ReadFile(o.boardsFile)
		if err != nil {
			return boards.Board{}, fmt.Errorf("read board table: %w", err)
		}
		if table, err = boards.Parse(data); err != nil {
			return boards.Board{}, err
		}
	}
	b, err := table.Find(o.board)
	if err != nil {
		return b, err
	}
	if o.period != 0 {
		b.Timer.Period = o.period
		if err := b.Validate(); err != nil {
			return b, err
		}
	}
	return b, nil
}

// run wires the board and blinks until done is closed or the -for duration
// elapses. It returns the process exit code.
func run(args []string, stdout, stderr io.Writer, done <-chan struct{}) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	board, err := loadBoard(o)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	trace := core.NewTrace(func(line string) { fmt.Fprintln(stdout, line) })
	trace.Println(core.TraceHello.String())

	var gpio core.GPIODriver
	if o.dryRun {
		gpio = newConsoleDriver(stdout)
	} else {
		gpio, err = newHardwareDriver(board)
	}
	if err == nil {
		err = gpio.ConfigureOutput(core.GPIOPin(board.LED.Pin))
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: led %s: %v\n", board.LED.GPIOName, err)
		return 1
	}

	controller := core.NewController(core.NewDesiredLevel(core.High), gpio, trace, board.ControllerConfig())

	var deadline <-chan time.Time
	if o.duration > 0 {
		deadline = time.After(o.duration)
	}
	stopped := func() bool {
		select {
		case <-done:
			return true
		case <-deadline:
			return true
		default:
			return false
		}
	}

	if o.loopDriven {
		for !stopped() {
			controller.StepLoopDriven(func() { time.Sleep(board.Timer.Period) })
		}
		return 0
	}

	cfg, err := board.TimerConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	timer := newSoftTimer(board, cfg.Source)
	defer timer.Stop()

	trace.Println(core.Utoa(board.Timer.ClockHz/100) + " ticks per 10ms (times 50 modifier applied)")
	if err := core.Arm(timer, cfg, controller.OnTick); err != nil {
		fmt.Fprintf(stderr, "Error: arm %s timer: %v\n", cfg.Source, err)
		return 1
	}

	for !stopped() {
		controller.Drive()
		trace.Flush()
		runtime.Gosched()
	}
	trace.Flush()
	fmt.Fprintf(stderr, "%d ticks, %d trace lines dropped\n", timer.Expiries(), trace.Dropped())
	return 0
}

// newSoftTimer feeds the board's clock rate into whichever input the
// profile selects.
func newSoftTimer(board boards.Board, source core.ClockSource) *core.SoftTimer {
	if source == core.ClockProcessor {
		return core.NewSoftTimer(0, board.Timer.ClockHz)
	}
	return core.NewSoftTimer(board.Timer.ClockHz, 0)
}
