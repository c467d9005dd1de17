package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/FriptuLudmila/booking-service/internal/config"
	"github.com/FriptuLudmila/booking-service/pkg/version"
)

// mockCommand is a test command implementation
type mockCommand struct {
	name        string
	description string
	runFunc     func(args []string) error
	runArgs     []string
	called      bool
}

func (m *mockCommand) Name() string {
	return m.name
}

func (m *mockCommand) Description() string {
	return m.description
}

func (m *mockCommand) Run(args []string) error {
	m.called = true
	m.runArgs = args
	if m.runFunc != nil {
		return m.runFunc(args)
	}
	return nil
}

// captureOutput captures stdout during test execution
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *config.Config
	}{
		{
			name:   "with nil config",
			config: nil,
		},
		{
			name: "with valid config",
			config: &config.Config{
				DefaultPort:    8080,
				PackageManager: "pnpm",
			},
		},
		{
			name:   "with empty config",
			config: &config.Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := New(tt.config)

			if cli == nil {
				t.Fatal("New() returned nil")
			}

			if cli.config != tt.config {
				t.Errorf("New() config = %v, want %v", cli.config, tt.config)
			}

			if cli.commands == nil {
				t.Error("New() commands map is nil")
			}

			expectedCommands := []string{"up", "install", "doctor", "completion"}
			for _, cmdName := range expectedCommands {
				if _, exists := cli.commands[cmdName]; !exists {
					t.Errorf("Expected command %q not registered", cmdName)
				}
			}
		})
	}
}

func TestCLI_registerCommands(t *testing.T) {
	cli := &CLI{
		config:   &config.Config{},
		commands: make(map[string]Command),
	}

	cli.registerCommands()

	expectedCommands := map[string]string{
		"up":         "Start the Booking service (default command)",
		"install":    "Install service dependencies",
		"doctor":     "Launch readiness check",
		"completion": "Generate shell completion scripts",
	}

	for name, expectedDesc := range expectedCommands {
		cmd, exists := cli.commands[name]
		if !exists {
			t.Errorf("Expected command %q not found", name)
			continue
		}

		if cmd.Description() != expectedDesc {
			t.Errorf("Command %q description = %q, want %q", name, cmd.Description(), expectedDesc)
		}
	}
}

func TestCLI_Run(t *testing.T) {
	originalVersion := version.Version
	defer func() { version.Version = originalVersion }()

	tests := []struct {
		name           string
		args           []string
		expectError    bool
		errorContains  string
		outputContains []string
		setupFunc      func() (*CLI, *mockCommand)
	}{
		{
			name:        "no arguments runs up",
			args:        []string{"bookingctl"},
			expectError: false,
			setupFunc: func() (*CLI, *mockCommand) {
				cli := New(&config.Config{})
				up := &mockCommand{name: "up"}
				cli.register(up)
				return cli, up
			},
		},
		{
			name:        "flags only run up with those flags",
			args:        []string{"bookingctl", "--dev", "--port", "8080"},
			expectError: false,
			setupFunc: func() (*CLI, *mockCommand) {
				cli := New(&config.Config{})
				up := &mockCommand{name: "up"}
				cli.register(up)
				return cli, up
			},
		},
		{
			name:        "help command",
			args:        []string{"bookingctl", "help"},
			expectError: false,
			outputContains: []string{
				"Usage: bookingctl [command] [args]",
				"Commands:",
			},
			setupFunc: func() (*CLI, *mockCommand) {
				return New(&config.Config{}), nil
			},
		},
		{
			name:        "help flag --help",
			args:        []string{"bookingctl", "--help"},
			expectError: false,
			outputContains: []string{
				"Usage: bookingctl [command] [args]",
			},
			setupFunc: func() (*CLI, *mockCommand) {
				return New(&config.Config{}), nil
			},
		},
		{
			name:        "version command",
			args:        []string{"bookingctl", "version"},
			expectError: false,
			outputContains: []string{
				"bookingctl test-version",
			},
			setupFunc: func() (*CLI, *mockCommand) {
				version.Version = "test-version"
				return New(&config.Config{}), nil
			},
		},
		{
			name:        "version flag --version",
			args:        []string{"bookingctl", "--version"},
			expectError: false,
			outputContains: []string{
				"bookingctl dev",
			},
			setupFunc: func() (*CLI, *mockCommand) {
				version.Version = "dev"
				return New(&config.Config{}), nil
			},
		},
		{
			name:          "unknown command",
			args:          []string{"bookingctl", "unknown"},
			expectError:   true,
			errorContains: "unknown command: unknown",
			outputContains: []string{
				"Usage: bookingctl [command] [args]",
			},
			setupFunc: func() (*CLI, *mockCommand) {
				return New(&config.Config{}), nil
			},
		},
		{
			name:          "command with error",
			args:          []string{"bookingctl", "fail"},
			expectError:   true,
			errorContains: "command failed",
			setupFunc: func() (*CLI, *mockCommand) {
				cli := New(&config.Config{})
				cli.register(&mockCommand{
					name:    "fail",
					runFunc: func([]string) error { return errors.New("command failed") },
				})
				return cli, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, up := tt.setupFunc()

			var err error
			output := captureOutput(func() {
				err = cli.Run(tt.args)
			})

			if tt.expectError {
				if err == nil {
					t.Fatal("Run() expected error, got nil")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Run() error = %q, want containing %q", err, tt.errorContains)
				}
			} else if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}

			for _, want := range tt.outputContains {
				if !strings.Contains(output, want) {
					t.Errorf("Run() output missing %q:\n%s", want, output)
				}
			}

			if up != nil && !up.called {
				t.Error("Run() did not dispatch to the up command")
			}
		})
	}
}

func TestCLI_Run_FlagsForwardedToUp(t *testing.T) {
	cli := New(&config.Config{})
	up := &mockCommand{name: "up"}
	cli.register(up)

	if err := cli.Run([]string{"bookingctl", "--dev", "--port", "9090"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"--dev", "--port", "9090"}
	if fmt.Sprint(up.runArgs) != fmt.Sprint(want) {
		t.Errorf("up args = %v, want %v", up.runArgs, want)
	}
}

func TestCLI_Run_SubcommandArgsForwarded(t *testing.T) {
	cli := New(&config.Config{})
	mock := &mockCommand{name: "doctor"}
	cli.register(mock)

	if err := cli.Run([]string{"bookingctl", "doctor", "--fix"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(mock.runArgs) != 1 || mock.runArgs[0] != "--fix" {
		t.Errorf("doctor args = %v, want [--fix]", mock.runArgs)
	}
}
