package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// GPIODriver is the abstract output-pin interface the toggle loop drives.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output.
	// Returns ErrPinUnavailable if the pin does not exist or is claimed.
	ConfigureOutput(pin GPIOPin) error

	// SetPin drives the pin high (true) or low (false). Writing the level
	// the pin already has must not produce a visible transition.
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads back the level last driven
	GetPin(pin GPIOPin) (bool, error)
}
