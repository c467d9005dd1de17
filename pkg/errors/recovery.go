package errors

import (
	"fmt"
	"os"
	"path/filepath"
)

// RecoveryStrategy defines how to recover from an error
type RecoveryStrategy interface {
	CanRecover(err *LaunchError) bool
	Attempt(err *LaunchError) error
	Description() string
}

// Recoverer attempts to recover from errors. Failed installs and service
// exits are never retried; the only strategies here clean up local state
// that bookingctl itself owns.
type Recoverer struct {
	strategies []RecoveryStrategy
	verbose    bool
}

// NewRecoverer creates a new error recoverer
func NewRecoverer(verbose bool) *Recoverer {
	return &Recoverer{
		strategies: []RecoveryStrategy{
			&StampClearStrategy{},
		},
		verbose: verbose,
	}
}

// Recover attempts to recover from an error
func (r *Recoverer) Recover(err *LaunchError) error {
	if !err.Recoverable {
		return err
	}
	for _, strategy := range r.strategies {
		if strategy.CanRecover(err) {
			if r.verbose {
				fmt.Printf("🔧 Attempting recovery: %s\n", strategy.Description())
			}
			if recErr := strategy.Attempt(err); recErr == nil {
				fmt.Println("✅ Recovery successful!")
				return nil
			} else if r.verbose {
				fmt.Printf("⚠️  Recovery failed: %v\n", recErr)
			}
		}
	}
	return err
}

// StampClearStrategy removes a corrupted install stamp so the next install
// can rewrite it cleanly.
type StampClearStrategy struct{}

func (s *StampClearStrategy) CanRecover(err *LaunchError) bool {
	return err.Code == ErrStampCorrupted
}

func (s *StampClearStrategy) Attempt(err *LaunchError) error {
	stamp := err.Context["stamp"]
	if stamp == "" {
		stamp = filepath.Join("node_modules", ".bookingctl-stamp")
	}
	fmt.Println("🧹 Removing corrupted install stamp...")
	if rmErr := os.Remove(stamp); rmErr != nil && !os.IsNotExist(rmErr) {
		return fmt.Errorf("failed to remove stamp: %w", rmErr)
	}
	return nil
}

func (s *StampClearStrategy) Description() string { return "Removing corrupted install stamp" }
