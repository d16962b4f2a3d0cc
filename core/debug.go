package core

// DebugWriter is a function type for writing one line of debug output.
// Implementations must not block for long and must not fail observably;
// there is nowhere to report a lost line.
type DebugWriter func(string)

// Discard is a DebugWriter that drops every line.
func Discard(string) {}
