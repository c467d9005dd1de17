// Package cli: Central error handling for the CLI
// Provides consistent error presentation, recovery attempts, and suggestions
package cli

import (
	"fmt"
	"os"
	"strings"

	e "github.com/FriptuLudmila/booking-service/pkg/errors"
	"github.com/FriptuLudmila/booking-service/pkg/terminal"
)

// ErrorHandler handles errors consistently across the CLI
type ErrorHandler struct {
	verbose   bool
	debug     bool
	recoverer *e.Recoverer
}

// NewErrorHandler creates an error handler
func NewErrorHandler(verbose, debug bool) *ErrorHandler {
	return &ErrorHandler{
		verbose:   verbose,
		debug:     debug,
		recoverer: e.NewRecoverer(verbose),
	}
}

// Handle processes an error, displays it, and exits with the status the
// error carries. Install and service failures report the child's own exit
// code; everything else reports 1.
func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}

	exitCode := 1
	if launchErr, ok := err.(*e.LaunchError); ok {
		if launchErr.Recoverable {
			if recErr := h.recoverer.Recover(launchErr); recErr == nil {
				// Recovered; treat as success
				return
			}
		}
		h.displayLaunchError(launchErr)
		exitCode = launchErr.ExitCode
	} else {
		h.displayLaunchError(e.Wrap(err, e.ErrUnknown, "An unexpected error occurred"))
	}
	os.Exit(exitCode)
}

func (h *ErrorHandler) displayLaunchError(err *e.LaunchError) {
	fmt.Fprintln(os.Stderr)
	icon := h.getErrorIcon(err.Code)
	fmt.Fprintf(os.Stderr, "%s %s%s%s\n", icon, terminal.Bold, err.Message, terminal.Reset)

	if err.Details != "" && h.verbose {
		fmt.Fprintf(os.Stderr, "\n%s%s%s\n", terminal.Dim, err.Details, terminal.Reset)
	}

	if len(err.Context) > 0 && h.verbose {
		fmt.Fprintln(os.Stderr, "\nContext:")
		for k, v := range err.Context {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", k, v)
		}
	}

	if err.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "\n💡 %s%s%s\n", terminal.Yellow, err.Suggestion, terminal.Reset)
	}

	if err.Cause != nil && h.verbose {
		fmt.Fprintf(os.Stderr, "\n%sCaused by:%s\n", terminal.Dim, terminal.Reset)
		h.displayCauseChain(err.Cause, 1)
	}

	if h.debug && len(err.Stack) > 0 {
		fmt.Fprintf(os.Stderr, "\n%sStack trace:%s\n", terminal.Dim, terminal.Reset)
		for _, f := range err.Stack {
			fmt.Fprintf(os.Stderr, "  %s\n", h.formatStackFrame(f))
		}
	}

	fmt.Fprintln(os.Stderr)
	if !h.verbose {
		fmt.Fprintf(os.Stderr, "%sRun with --verbose for more details%s\n", terminal.Dim, terminal.Reset)
	}
}

func (h *ErrorHandler) displayCauseChain(err error, depth int) {
	indent := strings.Repeat("  ", depth)
	if launchErr, ok := err.(*e.LaunchError); ok {
		fmt.Fprintf(os.Stderr, "%s• %s\n", indent, launchErr.Message)
		if launchErr.Cause != nil {
			h.displayCauseChain(launchErr.Cause, depth+1)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "%s• %s\n", indent, err.Error())
}

func (h *ErrorHandler) formatStackFrame(frame e.StackFrame) string {
	file := frame.File
	if idx := strings.LastIndex(file, "/booking-service/"); idx >= 0 {
		file = "..." + file[idx:]
	}
	fn := frame.Function
	if idx := strings.LastIndex(fn, "."); idx >= 0 {
		fn = fn[idx+1:]
	}
	return fmt.Sprintf("%s:%d %s()", file, frame.Line, fn)
}

func (h *ErrorHandler) getErrorIcon(code e.ErrorCode) string {
	icons := map[e.ErrorCode]string{
		e.ErrNodeNotFound:           "🔍",
		e.ErrPackageManagerNotFound: "🔍",
		e.ErrInstallFailed:          "📦",
		e.ErrServiceFailed:          "❌",
		e.ErrSpawnFailed:            "❌",
		e.ErrPortInUse:              "🔌",
		e.ErrStampCorrupted:         "💔",
		e.ErrFileNotFound:           "🔍",
		e.ErrPermissionDenied:       "🚫",
		e.ErrInvalidConfig:          "⚙️",
		e.ErrUnknown:                "❓",
	}
	if ic, ok := icons[code]; ok {
		return ic
	}
	return "❌"
}
