package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"picoblink/boards"
	"picoblink/host/monitor"
	"picoblink/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	board   = flag.String("board", "pico", "Board profile (sets format and baud)")
	baud    = flag.Int("baud", 0, "Baud rate override (ignored for USB CDC)")
	format  = flag.String("format", "", "Trace format override: text or framed")
	verbose = flag.Bool("verbose", false, "Print tick intervals and frame sequence numbers")
	list    = flag.Bool("list", false, "List known boards and exit")
)

func main() {
	flag.Parse()

	if *list {
		for _, b := range boards.All() {
			fmt.Printf("%-16s led=%s:%d timer=%s/%v trace=%s\n",
				b.Name, b.LED.Kind, b.LED.Pin, b.Timer.Source, b.Timer.Period, b.Trace.Format)
		}
		return
	}

	profile, err := boards.All().Find(*board)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (known: %v)\n", err, boards.All().Names())
		os.Exit(1)
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = profile.Trace.Baud
	if *baud != 0 {
		cfg.Baud = *baud
	}
	// tarm/serial reports a read timeout as EOF, which would end the monitor.
	cfg.ReadTimeout = 0

	traceFormat := profile.Trace.Format
	if *format != "" {
		traceFormat = *format
	}

	fmt.Printf("Monitoring %s (%s, %s trace, expecting a tick every %v)\n",
		*device, profile.Name, traceFormat, profile.Timer.Period)

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	if err := port.Flush(); err != nil && *verbose {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	var lastTick time.Time
	mon, err := monitor.New(port, traceFormat, func(l monitor.Line) {
		now := time.Now()
		stamp := now.Format("15:04:05.000")

		if l.Lost != 0 {
			fmt.Printf("%s  !! %d trace frame(s) lost\n", stamp, l.Lost)
		}

		if !*verbose {
			fmt.Printf("%s  %s\n", stamp, l.Text)
			return
		}

		extra := ""
		if traceFormat == monitor.FormatFramed {
			extra = fmt.Sprintf(" [seq %d]", l.Seq)
		}
		if l.Text == "Tick!" {
			if !lastTick.IsZero() {
				extra += fmt.Sprintf(" (+%v)", now.Sub(lastTick).Round(time.Millisecond))
			}
			lastTick = now
		}
		fmt.Printf("%s  %s%s\n", stamp, l.Text, extra)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := mon.Run()
	stats := mon.Stats()
	fmt.Printf("\n%d lines, %d ticks, %d lost, %d resyncs\n",
		stats.Lines, stats.Ticks, stats.Lost, stats.Resyncs)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
