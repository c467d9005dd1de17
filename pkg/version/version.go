// Package version holds the bookingctl version string. It is overridden
// at release time via -ldflags "-X ...pkg/version.Version=v1.2.3".
package version

// Version is the current bookingctl version.
var Version = "dev"
