package cli

import (
	"github.com/FriptuLudmila/booking-service/internal/cli/commands"
)

type upCmd struct{}

func (upCmd) Name() string        { return "up" }
func (upCmd) Description() string { return "Start the Booking service (default command)" }
func (upCmd) Run(args []string) error {
	return commands.Up(args)
}

type installCmd struct{}

func (installCmd) Name() string        { return "install" }
func (installCmd) Description() string { return "Install service dependencies" }
func (installCmd) Run(args []string) error {
	return commands.Install(args)
}

type doctorCmd struct{}

func (doctorCmd) Name() string        { return "doctor" }
func (doctorCmd) Description() string { return "Launch readiness check" }
func (doctorCmd) Run(args []string) error {
	return commands.Doctor(args)
}

type completionCmd struct{}

func (completionCmd) Name() string        { return "completion" }
func (completionCmd) Description() string { return "Generate shell completion scripts" }
func (completionCmd) Run(args []string) error {
	return commands.Completion(args)
}

// Command factory functions
func NewUpCommand() Command         { return upCmd{} }
func NewInstallCommand() Command    { return installCmd{} }
func NewDoctorCommand() Command     { return doctorCmd{} }
func NewCompletionCommand() Command { return completionCmd{} }
