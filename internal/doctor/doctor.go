// Package doctor provides host health checks for bookingctl.
package doctor

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/FriptuLudmila/booking-service/internal/digest"
	"github.com/FriptuLudmila/booking-service/internal/toolchain"
	e "github.com/FriptuLudmila/booking-service/pkg/errors"
	bexec "github.com/FriptuLudmila/booking-service/pkg/exec"
)

// execCommand enables test stubbing.
var execCommand = bexec.Command

// Doctor performs launcher preflight checks for one project.
type Doctor struct {
	root    string
	port    int
	manager toolchain.PackageManager
	checks  []HealthCheck
	verbose bool
}

// HealthCheck represents a single diagnostic check
type HealthCheck interface {
	Name() string
	Description() string
	Run() CheckResult
	CanAutoFix() bool
	Fix() error
	Severity() Severity
}

// CheckResult contains the outcome of a health check
type CheckResult struct {
	Status     Status
	Message    string
	Details    string
	FixCommand string
	Impact     string
}

// Status represents check status
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
	StatusCritical
)

// Severity indicates how important a fix is
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// HealthReport summarizes checks
type HealthReport struct {
	TotalChecks int
	Passed      int
	Warnings    int
	Errors      int
	Critical    int
	StartTime   time.Time
	EndTime     time.Time
}

// New creates a Doctor for the project at root, checking against port.
func New(root string, port int, verbose bool) *Doctor {
	return &Doctor{
		root:    root,
		port:    port,
		manager: toolchain.Detect(root),
		verbose: verbose,
	}
}

// Run executes all checks and prints a concise report
func (d *Doctor) Run() HealthReport {
	d.checks = []HealthCheck{
		&NodeCheck{},
		&PackageManagerCheck{manager: d.manager},
		&DependenciesCheck{root: d.root, manager: d.manager},
		&PortCheck{port: d.port},
		&DiskSpaceCheck{},
	}
	rpt := HealthReport{StartTime: time.Now()}
	fmt.Println("\n🩺 bookingctl doctor - Launch Readiness Check")
	fmt.Println(strings.Repeat("=", 52))
	for _, c := range d.checks {
		res := c.Run()
		d.printResult(res)
		rpt.TotalChecks++
		switch res.Status {
		case StatusOK:
			rpt.Passed++
		case StatusWarning:
			rpt.Warnings++
		case StatusError:
			rpt.Errors++
		case StatusCritical:
			rpt.Critical++
		}
	}
	rpt.EndTime = time.Now()
	fmt.Printf("\n⏱  Completed in %.2fs\n", rpt.EndTime.Sub(rpt.StartTime).Seconds())
	if rpt.Errors == 0 && rpt.Critical == 0 {
		fmt.Println("Ready to launch: bookingctl up")
	} else {
		fmt.Println("Run 'bookingctl doctor --fix' to auto-fix issues where possible")
	}
	return rpt
}

func (d *Doctor) printResult(r CheckResult) {
	icon := "✅"
	switch r.Status {
	case StatusOK:
		// keep default icon
	case StatusWarning:
		icon = "⚠️ "
	case StatusError, StatusCritical:
		icon = "❌"
	}
	fmt.Printf("%s %s\n", icon, r.Message)
	if r.Details != "" && d.verbose {
		fmt.Printf("   %s\n", r.Details)
	}
	if r.FixCommand != "" && r.Status != StatusOK {
		fmt.Printf("   💡 Fix: %s\n", r.FixCommand)
	}
	if r.Impact != "" && r.Status == StatusCritical {
		fmt.Printf("   ⚠️  Impact: %s\n", r.Impact)
	}
}

// NodeCheck verifies the Node.js runtime is present and recent enough.
type NodeCheck struct{}

func (n *NodeCheck) Name() string        { return "Node.js" }
func (n *NodeCheck) Description() string { return "Checking the Node.js runtime" }
func (n *NodeCheck) CanAutoFix() bool    { return false }
func (n *NodeCheck) Fix() error          { return nil }
func (n *NodeCheck) Severity() Severity  { return SeverityCritical }

func (n *NodeCheck) Run() CheckResult {
	if !bexec.LookPath("node") {
		return CheckResult{
			Status:     StatusCritical,
			Message:    "Node.js not found in PATH",
			Details:    "The Booking service runs on Node",
			FixCommand: "Install Node 18+ from https://nodejs.org",
			Impact:     "bookingctl cannot start the service",
		}
	}
	major := toolchain.NodeVersion()
	if major == 0 {
		return CheckResult{Status: StatusWarning, Message: "Could not determine Node.js version"}
	}
	if major < toolchain.MinNodeMajor {
		return CheckResult{
			Status:     StatusError,
			Message:    fmt.Sprintf("Node.js %d is too old (need %d+)", major, toolchain.MinNodeMajor),
			FixCommand: "Upgrade Node: https://nodejs.org",
			Impact:     "The service may fail at runtime",
		}
	}
	return CheckResult{Status: StatusOK, Message: fmt.Sprintf("Node.js %d (healthy)", major)}
}

// PackageManagerCheck verifies the detected package manager is installed.
type PackageManagerCheck struct {
	manager toolchain.PackageManager
}

func (p *PackageManagerCheck) Name() string        { return "Package manager" }
func (p *PackageManagerCheck) Description() string { return "Checking the package manager" }
func (p *PackageManagerCheck) CanAutoFix() bool    { return false }
func (p *PackageManagerCheck) Fix() error          { return nil }
func (p *PackageManagerCheck) Severity() Severity  { return SeverityCritical }

func (p *PackageManagerCheck) Run() CheckResult {
	if !bexec.LookPath(p.manager.Command()) {
		return CheckResult{
			Status:     StatusCritical,
			Message:    fmt.Sprintf("%s not found in PATH", p.manager),
			FixCommand: "npm ships with Node.js; pnpm/yarn: npm install -g " + string(p.manager),
			Impact:     "Dependencies cannot be installed",
		}
	}
	return CheckResult{Status: StatusOK, Message: fmt.Sprintf("Using %s (found)", p.manager)}
}

// DependenciesCheck verifies node_modules exists and matches the lockfile.
type DependenciesCheck struct {
	root    string
	manager toolchain.PackageManager
}

func (c *DependenciesCheck) Name() string        { return "Dependencies" }
func (c *DependenciesCheck) Description() string { return "Checking installed dependencies" }
func (c *DependenciesCheck) CanAutoFix() bool    { return true }
func (c *DependenciesCheck) Severity() Severity  { return SeverityMedium }

func (c *DependenciesCheck) Fix() error {
	cmd := execCommand(c.manager.Command(), c.manager.InstallArgs()...)
	cmd.Dir = c.root
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return err
	}
	return digest.WriteStamp(c.root)
}

func (c *DependenciesCheck) Run() CheckResult {
	nm := filepath.Join(c.root, "node_modules")
	if info, err := os.Stat(nm); err != nil || !info.IsDir() {
		return CheckResult{
			Status:     StatusWarning,
			Message:    "Dependencies not installed (node_modules missing)",
			FixCommand: "bookingctl install",
			Impact:     "First launch will install them automatically",
		}
	}
	stale, err := digest.Stale(c.root)
	if err != nil {
		if le, ok := err.(*e.LaunchError); ok && le.Code == e.ErrStampCorrupted {
			return CheckResult{
				Status:     StatusWarning,
				Message:    "Install stamp is corrupted",
				Details:    le.Details,
				FixCommand: "bookingctl doctor --fix",
				Impact:     "Staleness cannot be judged until the stamp is rewritten",
			}
		}
		return CheckResult{Status: StatusWarning, Message: "Could not compare lockfile against install stamp", Details: err.Error()}
	}
	if stale {
		return CheckResult{
			Status:     StatusWarning,
			Message:    "Lockfile changed since the last install",
			FixCommand: "bookingctl install",
			Impact:     "The service may run against outdated dependencies",
		}
	}
	return CheckResult{Status: StatusOK, Message: "Dependencies installed and up to date"}
}

// PortCheck verifies the configured port is free to bind.
type PortCheck struct {
	port int
}

func (p *PortCheck) Name() string        { return "Port" }
func (p *PortCheck) Description() string { return "Checking port availability" }
func (p *PortCheck) CanAutoFix() bool    { return false }
func (p *PortCheck) Fix() error          { return nil }
func (p *PortCheck) Severity() Severity  { return SeverityHigh }

func (p *PortCheck) Run() CheckResult {
	ln, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(p.port)))
	if err != nil {
		return CheckResult{
			Status:     StatusError,
			Message:    fmt.Sprintf("Port %d is already in use", p.port),
			FixCommand: fmt.Sprintf("bookingctl up --port %d", p.port+1),
			Impact:     "The service will fail to bind",
		}
	}
	_ = ln.Close()
	return CheckResult{Status: StatusOK, Message: fmt.Sprintf("Port %d is free", p.port)}
}

// DiskSpaceCheck ensures sufficient disk space for installs.
type DiskSpaceCheck struct{}

func (d *DiskSpaceCheck) Name() string        { return "Disk Space" }
func (d *DiskSpaceCheck) Description() string { return "Checking available disk" }
func (d *DiskSpaceCheck) CanAutoFix() bool    { return false }
func (d *DiskSpaceCheck) Fix() error          { return nil }
func (d *DiskSpaceCheck) Severity() Severity  { return SeverityMedium }

func (d *DiskSpaceCheck) Run() CheckResult {
	cmd := execCommand("df", "-h", ".")
	out, err := cmd.Output()
	if err != nil {
		return CheckResult{Status: StatusWarning, Message: "Could not check disk space"}
	}
	lines := strings.Split(string(out), "\n")
	if len(lines) > 1 {
		f := strings.Fields(lines[1])
		if len(f) > 3 {
			var size float64
			var unit string
			if n, err := fmt.Sscanf(f[3], "%f%s", &size, &unit); err == nil && n == 2 {
				if unit == "G" && size < 1 {
					return CheckResult{
						Status:     StatusWarning,
						Message:    fmt.Sprintf("Low disk space: %.1fGB free", size),
						Impact:     "npm install may fail",
					}
				}
			}
		}
	}
	return CheckResult{Status: StatusOK, Message: "Sufficient disk space available"}
}

// Fix attempts automatic fixes for checks that support it.
func (d *Doctor) Fix() {
	fmt.Println("\n🔧 Attempting to fix issues...")
	for _, c := range d.checks {
		res := c.Run()
		if res.Status != StatusOK && c.CanAutoFix() {
			if err := c.Fix(); err != nil {
				fmt.Printf("❌ %s: fix failed: %v\n", c.Name(), err)
			} else {
				fmt.Printf("✅ %s: fixed\n", c.Name())
			}
		}
	}
}

// RunWithOptions runs checks and optionally applies fixes.
func RunWithOptions(root string, port int, verbose, fix bool) HealthReport {
	d := New(root, port, verbose)
	rpt := d.Run()
	if fix {
		d.Fix()
	}
	return rpt
}
