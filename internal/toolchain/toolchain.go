// Package toolchain locates the Node.js runtime and package manager on the
// host and detects which package manager a project uses.
package toolchain

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	e "github.com/FriptuLudmila/booking-service/pkg/errors"
	bexec "github.com/FriptuLudmila/booking-service/pkg/exec"
)

// MinNodeMajor is the oldest Node.js major version the Booking service supports.
const MinNodeMajor = 18

// execCommand enables test stubbing.
var execCommand = bexec.Command

// PackageManager identifies the tool used to install dependencies and run
// package scripts.
type PackageManager string

const (
	Npm  PackageManager = "npm"
	Pnpm PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
)

// Command returns the platform executable name for the manager.
func (pm PackageManager) Command() string {
	return bexec.Executable(string(pm))
}

// InstallArgs returns argv (after the executable) for the install step.
func (pm PackageManager) InstallArgs() []string {
	return []string{"install"}
}

// StartArgs returns argv for the package "start" script.
func (pm PackageManager) StartArgs() []string {
	return []string{"start"}
}

// DevArgs returns argv for the package "dev" (auto-reload) script.
func (pm PackageManager) DevArgs() []string {
	return []string{"run", "dev"}
}

// Lockfile returns the lockfile name the manager writes, used both for
// detection and for the install stamp digest.
func (pm PackageManager) Lockfile() string {
	switch pm {
	case Pnpm:
		return "pnpm-lock.yaml"
	case Yarn:
		return "yarn.lock"
	default:
		return "package-lock.json"
	}
}

// CheckNode verifies the Node.js runtime is on PATH.
func CheckNode() error {
	if !bexec.LookPath("node") {
		return e.New(e.ErrNodeNotFound, "Node.js not found in PATH").
			WithDetails("The Booking service requires Node 18 or newer")
	}
	return nil
}

// CheckPackageManager verifies the package manager is on PATH, applying
// platform naming.
func CheckPackageManager(pm PackageManager) error {
	if !bexec.LookPath(pm.Command()) {
		return e.New(e.ErrPackageManagerNotFound, string(pm)+" not found in PATH").
			WithContext("package_manager", string(pm))
	}
	return nil
}

// NodeVersion probes `node --version` and returns the major version.
// Returns 0 when the version cannot be determined.
func NodeVersion() int {
	out, err := execCommand(bexec.Executable("node"), "--version").Output()
	if err != nil {
		return 0
	}
	v := strings.TrimSpace(string(out))
	v = strings.TrimPrefix(v, "v")
	if i := strings.Index(v, "."); i > 0 {
		v = v[:i]
	}
	major, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return major
}

// Detect inspects the project root for lockfiles and picks the matching
// package manager. npm is the default when nothing else is present.
func Detect(root string) PackageManager {
	if fileExists(filepath.Join(root, "pnpm-lock.yaml")) {
		return Pnpm
	}
	if fileExists(filepath.Join(root, "yarn.lock")) {
		return Yarn
	}
	return Npm
}

// Parse maps a user-supplied name to a PackageManager; unknown names fall
// back to npm.
func Parse(name string) PackageManager {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pnpm":
		return Pnpm
	case "yarn":
		return Yarn
	default:
		return Npm
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
