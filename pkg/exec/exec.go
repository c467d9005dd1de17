package exec

import (
	"os/exec"
	"runtime"
)

// Commander provides an interface for command execution that can be mocked in tests.
// This enables dependency injection and makes code more testable.
type Commander interface {
	Command(name string, args ...string) *exec.Cmd
}

// DefaultCommander implements Commander using the standard exec.Command.
type DefaultCommander struct{}

// Command creates a new exec.Cmd using the standard library exec.Command.
func (DefaultCommander) Command(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

// Global instance that can be overridden in tests
var Default Commander = DefaultCommander{}

// Command is a convenience function that delegates to the global Commander instance.
// Tests can override Default to provide mock implementations.
func Command(name string, args ...string) *exec.Cmd {
	return Default.Command(name, args...)
}

// Executable returns the platform-appropriate name for a tool. npm and
// friends ship as .cmd batch wrappers on Windows, so LookPath and process
// spawning need the suffix there.
func Executable(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".cmd"
	}
	return name
}

// LookPath reports whether name resolves to an executable on PATH.
// Overridable in tests.
var LookPath = func(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
