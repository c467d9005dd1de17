package commands

import (
	"os"
	"testing"

	"github.com/FriptuLudmila/booking-service/internal/toolchain"
	e "github.com/FriptuLudmila/booking-service/pkg/errors"
	bexec "github.com/FriptuLudmila/booking-service/pkg/exec"
)

func withEnv(t *testing.T, key, val string, fn func()) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, val)
	defer func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	}()
	fn()
}

func withProjectRoot(t *testing.T, root string, fn func()) {
	t.Helper()
	old := projectRoot
	projectRoot = root
	defer func() { projectRoot = old }()
	fn()
}

func TestUp_InvalidFlag(t *testing.T) {
	err := Up([]string{"--bogus"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	le, ok := err.(*e.LaunchError)
	if !ok {
		t.Fatalf("expected *LaunchError, got %T", err)
	}
	if le.Code != e.ErrInvalidConfig {
		t.Errorf("code = %v, want ErrInvalidConfig", le.Code)
	}
	if le.ExitCode != 2 {
		t.Errorf("exit code = %d, want 2", le.ExitCode)
	}
}

func TestUp_NodeMissing(t *testing.T) {
	oldLook := bexec.LookPath
	bexec.LookPath = func(string) bool { return false }
	defer func() { bexec.LookPath = oldLook }()

	withProjectRoot(t, t.TempDir(), func() {
		err := Up(nil)
		if err == nil {
			t.Fatal("expected error when node is absent")
		}
		le, ok := err.(*e.LaunchError)
		if !ok {
			t.Fatalf("expected *LaunchError, got %T", err)
		}
		if le.Code != e.ErrNodeNotFound {
			t.Errorf("code = %v, want ErrNodeNotFound", le.Code)
		}
	})
}

func TestUp_BadEnvPort(t *testing.T) {
	withEnv(t, "BOOKING_PORT", "not-a-port", func() {
		_, _, err := loadConfig()
		if err == nil {
			t.Fatal("expected error for malformed BOOKING_PORT")
		}
		le, ok := err.(*e.LaunchError)
		if !ok {
			t.Fatalf("expected *LaunchError, got %T", err)
		}
		if le.Code != e.ErrInvalidConfig {
			t.Errorf("code = %v, want ErrInvalidConfig", le.Code)
		}
	})
}

func TestResolveManager_EnvOverride(t *testing.T) {
	withProjectRoot(t, t.TempDir(), func() {
		withEnv(t, "BOOKING_PM", "yarn", func() {
			cfg, envCfg, err := loadConfig()
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if pm := resolveManager(cfg, envCfg); pm != toolchain.Yarn {
				t.Errorf("manager = %v, want yarn", pm)
			}
		})
	})
}

func TestResolveManager_DetectsFromLockfile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/pnpm-lock.yaml", []byte("lockfileVersion: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	withProjectRoot(t, dir, func() {
		withEnv(t, "BOOKING_PM", "", func() {
			cfg, envCfg, err := loadConfig()
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if pm := resolveManager(cfg, envCfg); pm != toolchain.Pnpm {
				t.Errorf("manager = %v, want pnpm", pm)
			}
		})
	})
}
