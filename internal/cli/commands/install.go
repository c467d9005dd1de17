package commands

import (
	"github.com/FriptuLudmila/booking-service/internal/config"
	"github.com/FriptuLudmila/booking-service/internal/launcher"
	"github.com/FriptuLudmila/booking-service/internal/toolchain"
)

// Install runs only the dependency-install step, unconditionally, and
// propagates the installer's exit code.
func Install(args []string) error {
	cfg, envCfg, err := loadConfig()
	if err != nil {
		return err
	}
	pm := resolveManager(cfg, envCfg)

	if err := toolchain.CheckNode(); err != nil {
		return err
	}
	if err := toolchain.CheckPackageManager(pm); err != nil {
		return err
	}

	l := launcher.New(projectRoot, launcher.Options{
		Port:         config.DefaultPort,
		ForceInstall: true,
		Manager:      pm,
	})
	return l.Install()
}
