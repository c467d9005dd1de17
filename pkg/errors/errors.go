// Package errors provides enhanced error types with context and diagnostic
// metadata for bookingctl. These errors carry suggestions, a context map,
// lightweight stack traces, and the process exit status to report.
package errors

import (
	"runtime"
	"strings"
)

// ErrorCode categorizes errors for handling
type ErrorCode string

const (
	// Toolchain errors
	ErrNodeNotFound           ErrorCode = "NODE_NOT_FOUND"
	ErrPackageManagerNotFound ErrorCode = "PACKAGE_MANAGER_NOT_FOUND"

	// Subprocess errors
	ErrInstallFailed ErrorCode = "INSTALL_FAILED"
	ErrServiceFailed ErrorCode = "SERVICE_FAILED"
	ErrSpawnFailed   ErrorCode = "SPAWN_FAILED"

	// Environment errors
	ErrPortInUse        ErrorCode = "PORT_IN_USE"
	ErrStampCorrupted   ErrorCode = "STAMP_CORRUPTED"
	ErrFileNotFound     ErrorCode = "FILE_NOT_FOUND"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"

	// Configuration errors
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Unknown errors
	ErrUnknown ErrorCode = "UNKNOWN"
)

// StackFrame represents a single stack frame
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// LaunchError is the base error type with rich context
type LaunchError struct {
	Code        ErrorCode         `json:"code"`
	Message     string            `json:"message"`
	Details     string            `json:"details,omitempty"`
	Suggestion  string            `json:"suggestion,omitempty"`
	Cause       error             `json:"-"`
	Context     map[string]string `json:"context,omitempty"`
	Recoverable bool              `json:"recoverable"`
	ExitCode    int               `json:"exit_code"`
	Stack       []StackFrame      `json:"stack,omitempty"`
}

// Error implements the error interface
func (e *LaunchError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}
	if e.Cause != nil {
		sb.WriteString("\nCaused by: ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the cause to errors.Is/As
func (e *LaunchError) Unwrap() error { return e.Cause }

// WithSuggestion adds a suggestion for fixing the error
func (e *LaunchError) WithSuggestion(suggestion string) *LaunchError {
	e.Suggestion = suggestion
	return e
}

// WithContext adds contextual information
func (e *LaunchError) WithContext(key, value string) *LaunchError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps another error
func (e *LaunchError) WithCause(cause error) *LaunchError {
	e.Cause = cause
	return e
}

// WithDetails adds detailed information
func (e *LaunchError) WithDetails(details string) *LaunchError {
	e.Details = details
	return e
}

// WithExitCode sets the process exit status to report for this error.
// The install and service steps propagate child exit codes verbatim.
func (e *LaunchError) WithExitCode(code int) *LaunchError {
	e.ExitCode = code
	return e
}

// New creates a new LaunchError
func New(code ErrorCode, message string) *LaunchError {
	err := &LaunchError{
		Code:        code,
		Message:     message,
		Recoverable: isRecoverable(code),
		ExitCode:    1,
		Context:     make(map[string]string),
	}
	err.captureStack()
	err.Suggestion = getDefaultSuggestion(code)
	return err
}

// Wrap wraps a standard error with LaunchError
func Wrap(err error, code ErrorCode, message string) *LaunchError {
	if err == nil {
		return nil
	}
	if launchErr, ok := err.(*LaunchError); ok {
		// Prepend message context
		if message != "" {
			launchErr.Message = message + ": " + launchErr.Message
		}
		return launchErr
	}
	return New(code, message).WithCause(err)
}

// captureStack captures the current stack trace
func (e *LaunchError) captureStack() {
	const maxFrames = 10
	pc := make([]uintptr, maxFrames)
	n := runtime.Callers(3, pc) // Skip runtime.Callers, captureStack, New/Wrap
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") || strings.Contains(frame.File, "testing/") {
			if !more {
				break
			}
			continue
		}
		e.Stack = append(e.Stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
}

// isRecoverable determines if an error can be automatically recovered.
// Launch failures are deliberately fatal: nothing is retried, the child's
// exit status is the whole story. Only local state cleanup qualifies.
func isRecoverable(code ErrorCode) bool {
	return code == ErrStampCorrupted
}

// getDefaultSuggestion provides default fix suggestions
func getDefaultSuggestion(code ErrorCode) string {
	suggestions := map[ErrorCode]string{
		ErrNodeNotFound:           "Install Node.js 18+ from https://nodejs.org and make sure it is on PATH",
		ErrPackageManagerNotFound: "Install npm (ships with Node.js) or set BOOKING_PM to an installed manager",
		ErrInstallFailed:          "Inspect the installer output above, then retry with: bookingctl install",
		ErrServiceFailed:          "Check the service logs above and run: bookingctl doctor",
		ErrSpawnFailed:            "Verify the package manager works: npm --version",
		ErrPortInUse:              "Pick another port: bookingctl up --port <n>",
		ErrStampCorrupted:         "Remove node_modules/.bookingctl-stamp and reinstall",
		ErrFileNotFound:           "Run bookingctl from the Booking service root (next to package.json)",
		ErrPermissionDenied:       "Check file permissions in the project directory",
		ErrInvalidConfig:          "Fix or delete ~/.bookingctl.json",
	}
	if s, ok := suggestions[code]; ok {
		return s
	}
	return "Run 'bookingctl doctor' for diagnostics"
}
