// Package launcher starts the Booking service. It validates the host
// toolchain, installs dependencies when needed, and runs the package
// manager's start or dev script with PORT exported to the child. The whole
// flow is sequential: one optional install subprocess, then one service
// subprocess that the launcher waits on until it exits or the user
// interrupts.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/FriptuLudmila/booking-service/internal/digest"
	"github.com/FriptuLudmila/booking-service/internal/toolchain"
	"github.com/FriptuLudmila/booking-service/internal/watch"
	e "github.com/FriptuLudmila/booking-service/pkg/errors"
	bexec "github.com/FriptuLudmila/booking-service/pkg/exec"
	"github.com/FriptuLudmila/booking-service/pkg/logger"
	"github.com/FriptuLudmila/booking-service/pkg/terminal"
)

// DependencyDir is the directory whose presence means dependencies are
// installed.
const DependencyDir = "node_modules"

// Options is the immutable invocation record. Built once from flags and
// configuration, never mutated afterwards.
type Options struct {
	Dev          bool
	Port         int
	ForceInstall bool
	Watch        bool
	Manager      toolchain.PackageManager

	// WatchIgnore holds extra ignore patterns from the user config,
	// applied on top of the defaults and the project's .bookingignore.
	WatchIgnore []string
}

// Launcher runs the install-then-start sequence for one project.
type Launcher struct {
	root      string
	opts      Options
	commander bexec.Commander

	// notify/stop wrap signal registration so tests can inject interrupts.
	notify func(chan<- os.Signal)
	stop   func(chan<- os.Signal)
}

// New creates a Launcher for the project at root.
func New(root string, opts Options) *Launcher {
	if opts.Manager == "" {
		opts.Manager = toolchain.Detect(root)
	}
	return &Launcher{
		root:      root,
		opts:      opts,
		commander: bexec.Default,
		notify:    func(ch chan<- os.Signal) { signal.Notify(ch, os.Interrupt) },
		stop:      func(ch chan<- os.Signal) { signal.Stop(ch) },
	}
}

// Run executes the launch sequence. It returns nil on clean shutdown
// (including an interrupt during the wait) and a LaunchError carrying the
// exit status to report otherwise.
func (l *Launcher) Run() error {
	if err := toolchain.CheckNode(); err != nil {
		return err
	}
	if err := toolchain.CheckPackageManager(l.opts.Manager); err != nil {
		return err
	}

	if l.NeedsInstall() {
		if err := l.Install(); err != nil {
			return err
		}
	}

	if l.opts.Watch {
		return l.superviseService()
	}
	return l.runService()
}

// NeedsInstall reports whether the install step must run: either forced,
// or the dependency directory does not exist.
func (l *Launcher) NeedsInstall() bool {
	if l.opts.ForceInstall {
		return true
	}
	info, err := os.Stat(filepath.Join(l.root, DependencyDir))
	return err != nil || !info.IsDir()
}

// Install runs the package manager's install command synchronously,
// inheriting stdio. A non-zero exit is returned as a LaunchError with the
// installer's own exit code.
func (l *Launcher) Install() error {
	pm := l.opts.Manager
	fmt.Printf("%s Installing dependencies (%s install)...\n", terminal.IconBox, pm)

	cmd := l.commander.Command(pm.Command(), pm.InstallArgs()...)
	cmd.Dir = l.root
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		code := exitCode(err)
		return e.Wrap(err, e.ErrInstallFailed, fmt.Sprintf("%s install failed", pm)).
			WithContext("package_manager", string(pm)).
			WithExitCode(code)
	}

	if err := digest.WriteStamp(l.root); err != nil {
		// The stamp only feeds doctor warnings; a failed write must not
		// fail the launch.
		logger.Debugf("could not write install stamp: %v", err)
	}
	return nil
}

// runService spawns the start or dev script and blocks until it exits,
// propagating its exit code. An interrupt during the wait terminates the
// child best-effort and returns nil.
func (l *Launcher) runService() error {
	cmd, err := l.startService()
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	l.notify(sigCh)
	defer l.stop(sigCh)

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	select {
	case <-sigCh:
		fmt.Println("\nStopping...")
		l.terminate(cmd)
		<-waitCh
		return nil
	case werr := <-waitCh:
		if werr != nil {
			code := exitCode(werr)
			return e.Wrap(werr, e.ErrServiceFailed, "Booking service exited with an error").
				WithContext("mode", l.mode()).
				WithExitCode(code)
		}
		return nil
	}
}

// superviseService runs the service under the file watcher, restarting the
// child when project files change. The child's own exit still ends the
// supervisor with that exit code.
func (l *Launcher) superviseService() error {
	rules, err := l.watchRules()
	if err != nil {
		return e.Wrap(err, e.ErrInvalidConfig, "Invalid watch ignore pattern")
	}
	w, err := watch.New(l.root, rules)
	if err != nil {
		return e.Wrap(err, e.ErrUnknown, "Failed to create file watcher")
	}
	defer w.Close()
	if err := w.Start(); err != nil {
		return e.Wrap(err, e.ErrUnknown, "Failed to watch project directory")
	}
	fmt.Printf("%s Watching for file changes (restart on save)\n", terminal.IconWatch)

	sigCh := make(chan os.Signal, 1)
	l.notify(sigCh)
	defer l.stop(sigCh)

	for {
		cmd, err := l.startService()
		if err != nil {
			return err
		}
		waitCh := make(chan error, 1)
		go func() { waitCh <- cmd.Wait() }()

		select {
		case <-sigCh:
			fmt.Println("\nStopping...")
			l.terminate(cmd)
			<-waitCh
			return nil
		case path := <-w.Events():
			fmt.Printf("%s %s changed, restarting...\n", terminal.IconArrow, path)
			l.terminate(cmd)
			<-waitCh
		case werr := <-waitCh:
			if werr != nil {
				code := exitCode(werr)
				return e.Wrap(werr, e.ErrServiceFailed, "Booking service exited with an error").
					WithContext("mode", l.mode()).
					WithExitCode(code)
			}
			return nil
		}
	}
}

// watchRules builds the ignore rule set for watch mode: defaults, then
// the project's .bookingignore, then extras from the user config.
func (l *Launcher) watchRules() (*watch.IgnoreRules, error) {
	rules := watch.NewIgnoreRules()
	if err := rules.LoadFromFile(filepath.Join(l.root, watch.IgnoreFile)); err != nil {
		return nil, err
	}
	for _, p := range l.opts.WatchIgnore {
		if err := rules.AddPattern(p); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

// startService builds the child environment and spawns the service.
func (l *Launcher) startService() (*exec.Cmd, error) {
	pm := l.opts.Manager
	args := pm.StartArgs()
	if l.opts.Dev {
		args = pm.DevArgs()
	}

	cmd := l.commander.Command(pm.Command(), args...)
	cmd.Dir = l.root
	cmd.Env = l.childEnv()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fmt.Printf("%s Starting Booking service on port %d (%s)...\n", terminal.IconRocket, l.opts.Port, l.mode())
	logger.Verbosef("spawning: %s", bexec.JoinArgs(append([]string{pm.Command()}, args...)))

	if err := cmd.Start(); err != nil {
		return nil, e.Wrap(err, e.ErrSpawnFailed, "Failed to start the Booking service").
			WithContext("package_manager", string(pm))
	}
	return cmd, nil
}

// childEnv copies the parent environment and overrides PORT.
func (l *Launcher) childEnv() []string {
	env := os.Environ()
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if len(kv) >= 5 && kv[:5] == "PORT=" {
			continue
		}
		out = append(out, kv)
	}
	return append(out, "PORT="+strconv.Itoa(l.opts.Port))
}

// terminate asks the child to stop. Failures are swallowed: at this point
// the launcher is exiting anyway and no recovery is possible.
func (l *Launcher) terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}
}

func (l *Launcher) mode() string {
	if l.opts.Dev {
		return "dev"
	}
	return "start"
}

// exitCode extracts the subprocess exit status, defaulting to 1 when the
// process never ran or was killed.
func exitCode(err error) int {
	if ee, ok := err.(*exec.ExitError); ok {
		if code := ee.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
