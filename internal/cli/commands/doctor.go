package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/FriptuLudmila/booking-service/internal/config"
	"github.com/FriptuLudmila/booking-service/internal/digest"
	"github.com/FriptuLudmila/booking-service/internal/doctor"
)

// Doctor runs launch readiness checks.
// Supports flags: --verbose, --fix, --port <n>
func Doctor(args []string) error {
	verbose := false
	fix := false
	port := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--verbose", "-v":
			verbose = true
		case "--fix":
			fix = true
		case "--port":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "⚠️  --port needs a value; using the configured port")
				continue
			}
			if v, err := strconv.Atoi(args[i+1]); err == nil {
				port = v
			} else {
				fmt.Fprintf(os.Stderr, "⚠️  ignoring invalid --port value %q\n", args[i+1])
			}
			i++
		}
	}

	cfg, envCfg, err := loadConfig()
	if err != nil {
		return err
	}
	resolved := config.ResolvePort(port, port > 0, cfg, envCfg)

	doctor.RunWithOptions(projectRoot, resolved, verbose, fix)

	// A corrupted stamp survives the report (or --fix could not rewrite
	// it); surface it so the error handler's recovery can remove it.
	if _, err := digest.ReadStamp(projectRoot); err != nil {
		return err
	}
	return nil
}
