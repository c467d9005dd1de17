// Package cli provides the command-line interface for bookingctl.
// It implements a modular command system with support for subcommands,
// help text, and version information. The CLI uses a registry pattern
// to register available commands and route execution based on user input.
//
// Invoking bookingctl with no subcommand, or with flags only
// (e.g. `bookingctl --dev --port 8080`), launches the Booking service as
// if `bookingctl up` had been typed. That keeps the one-command workflow
// the launcher replaces.
package cli

import (
	"fmt"
	"strings"

	"github.com/FriptuLudmila/booking-service/internal/config"
	"github.com/FriptuLudmila/booking-service/pkg/version"
)

// Command represents a CLI command
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// CLI represents the command-line interface
type CLI struct {
	config   *config.Config
	commands map[string]Command
}

// New creates a new CLI instance
func New(cfg *config.Config) *CLI {
	c := &CLI{config: cfg, commands: make(map[string]Command)}
	c.registerCommands()
	return c
}

func (c *CLI) register(cmd Command) {
	c.commands[cmd.Name()] = cmd
}

// registerCommands registers all available commands
func (c *CLI) registerCommands() {
	c.register(NewUpCommand())
	c.register(NewInstallCommand())
	c.register(NewDoctorCommand())
	c.register(NewCompletionCommand())
}

// Run executes the CLI with given arguments
func (c *CLI) Run(args []string) error {
	if len(args) < 2 {
		return c.commands["up"].Run(nil)
	}
	switch args[1] {
	case "help", "--help", "-h":
		c.printUsage()
		return nil
	case "version", "--version":
		fmt.Printf("bookingctl %s\n", version.Version)
		return nil
	default:
		// Flags only: treat as the up command.
		if strings.HasPrefix(args[1], "-") {
			return c.commands["up"].Run(args[1:])
		}
		if cmd, ok := c.commands[args[1]]; ok {
			return cmd.Run(args[2:])
		}
		c.printUsage()
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func (c *CLI) printUsage() {
	fmt.Println("Usage: bookingctl [command] [args]")
	fmt.Println("Commands:")
	for name, cmd := range c.commands {
		fmt.Printf("  %-10s %s\n", name, cmd.Description())
	}
	fmt.Println("  version    Show version")
	fmt.Println("  help       Show this help")
	fmt.Println("\nRunning bookingctl with no command (or flags only) starts the service.")
}
