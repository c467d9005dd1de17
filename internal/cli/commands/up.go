// Package commands implements the bookingctl subcommands.
package commands

import (
	"flag"

	"github.com/FriptuLudmila/booking-service/internal/config"
	"github.com/FriptuLudmila/booking-service/internal/launcher"
	"github.com/FriptuLudmila/booking-service/internal/toolchain"
	e "github.com/FriptuLudmila/booking-service/pkg/errors"
)

// projectRoot is the directory the service is launched from. Overridable
// in tests.
var projectRoot = "."

// Up launches the Booking service: toolchain checks, conditional
// dependency install, then the package manager's start or dev script with
// PORT exported to the child.
func Up(args []string) error {
	fs := flag.NewFlagSet("up", flag.ContinueOnError)
	dev := fs.Bool("dev", false, "Run in dev (auto-reload) mode")
	port := fs.Int("port", config.DefaultPort, "Port to listen on")
	force := fs.Bool("force-install", false, "Force dependency install even if node_modules exists")
	watch := fs.Bool("watch", false, "Restart the service when project files change")
	if err := fs.Parse(args); err != nil {
		return e.Wrap(err, e.ErrInvalidConfig, "Invalid arguments").WithExitCode(2)
	}
	portSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "port" {
			portSet = true
		}
	})

	cfg, envCfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := launcher.Options{
		Dev:          *dev,
		Port:         config.ResolvePort(*port, portSet, cfg, envCfg),
		ForceInstall: *force,
		Watch:        *watch,
		Manager:      resolveManager(cfg, envCfg),
	}
	if cfg != nil {
		opts.WatchIgnore = cfg.WatchIgnore
	}
	return launcher.New(projectRoot, opts).Run()
}

// loadConfig layers the config file under environment overrides. A broken
// config file degrades to defaults; broken BOOKING_* variables are a hard
// error since the user asked for something specific.
func loadConfig() (*config.Config, config.Env, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = nil
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return nil, config.Env{}, e.Wrap(err, e.ErrInvalidConfig, "Invalid BOOKING_* environment variables")
	}
	return cfg, envCfg, nil
}

func resolveManager(cfg *config.Config, envCfg config.Env) toolchain.PackageManager {
	detected := toolchain.Detect(projectRoot)
	return toolchain.Parse(config.ResolvePackageManager(string(detected), cfg, envCfg))
}
