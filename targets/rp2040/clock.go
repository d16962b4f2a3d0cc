//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"

	"picoblink/core"
)

// Cortex-M0+ SysTick, part of the private peripheral bus
const (
	sysTickBase  = 0xE000E010
	sysTickCSR   = sysTickBase + 0x00 // control and status
	sysTickRVR   = sysTickBase + 0x04 // reload value
	sysTickCVR   = sysTickBase + 0x08 // current value
	sysTickCALIB = sysTickBase + 0x0C // calibration

	csrEnable    = 1 << 0
	csrTickInt   = 1 << 1
	csrClkSource = 1 << 2 // 1 = processor clock, 0 = reference

	calibNoRef = 1 << 31

	sysTickMaxReload = 0x00FFFFFF
)

var (
	systCSR   = (*volatile.Register32)(unsafe.Pointer(uintptr(sysTickCSR)))
	systRVR   = (*volatile.Register32)(unsafe.Pointer(uintptr(sysTickRVR)))
	systCVR   = (*volatile.Register32)(unsafe.Pointer(uintptr(sysTickCVR)))
	systCALIB = (*volatile.Register32)(unsafe.Pointer(uintptr(sysTickCALIB)))
)

var sysTickHandler func()

// sysTickDriver programs SysTick as a free-running periodic interrupt.
type sysTickDriver struct{}

func (sysTickDriver) Supports(source core.ClockSource) bool {
	return source == core.ClockProcessor || source == core.ClockReference
}

func (sysTickDriver) MaxReload() uint32 { return sysTickMaxReload }

func (sysTickDriver) SetHandler(handler func()) { sysTickHandler = handler }

// Configure selects the feed and loads the period. SysTick counts RVR down
// to zero inclusive, so one period is RVR+1 ticks.
func (sysTickDriver) Configure(source core.ClockSource, reload uint32) error {
	csr := uint32(0)
	if source == core.ClockProcessor {
		csr |= csrClkSource
	}
	systCSR.Set(csr)
	systRVR.Set(reload - 1)
	return nil
}

// ClearCount writes CVR; any write zeroes it and clears COUNTFLAG.
func (sysTickDriver) ClearCount() { systCVR.Set(0) }

func (sysTickDriver) EnableCounting() { systCSR.SetBits(csrEnable) }

func (sysTickDriver) EnableInterrupt() { systCSR.SetBits(csrTickInt) }

// sysTickCalibration reads CALIB. tenms is reference ticks per 10ms, zero
// when unknown. noref reports that no reference feed is implemented.
func sysTickCalibration() (tenms uint32, noref bool) {
	calib := systCALIB.Get()
	return calib & sysTickMaxReload, calib&calibNoRef != 0
}

//export SysTick_Handler
func handleSysTick() {
	if sysTickHandler != nil {
		sysTickHandler()
	}
}
