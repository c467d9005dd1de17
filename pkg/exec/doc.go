// Package exec provides command execution utilities for bookingctl.
// It centralizes subprocess creation behind a test-friendly interface
// and handles platform differences in executable naming.
package exec
