package watch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreRules manages gitignore-style pattern matching deciding which file
// changes trigger a service restart. It supports negation (!) and
// directory-only patterns (trailing /).
type IgnoreRules struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern  string
	glob     glob.Glob
	negate   bool
	dirOnly  bool
	hasSlash bool
}

// defaultPatterns never trigger restarts. Dependency trees and editor
// droppings churn constantly without changing what the service runs.
var defaultPatterns = []string{
	".git/",
	"node_modules/",
	".bookingctl/",
	".DS_Store",
	"*.log",
	"*.tmp",
	"*.swp",
	"*~",
}

// NewIgnoreRules creates an ignore rules set with the default exclusions.
func NewIgnoreRules() *IgnoreRules {
	rules := &IgnoreRules{}
	for _, pattern := range defaultPatterns {
		// Default patterns are static and known-valid.
		_ = rules.AddPattern(pattern)
	}
	return rules
}

// LoadFromFile adds patterns from a .bookingignore file. A missing file is
// not an error.
func (r *IgnoreRules) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open ignore file %s: %w", filename, err)
	}
	defer file.Close()
	return r.LoadFromReader(file)
}

// LoadFromReader adds patterns from an io.Reader, one per line. Blank
// lines and # comments are skipped.
func (r *IgnoreRules) LoadFromReader(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.AddPattern(line); err != nil {
			return fmt.Errorf("invalid pattern on line %d: %w", lineNum, err)
		}
	}
	return scanner.Err()
}

// AddPattern adds a single ignore pattern.
func (r *IgnoreRules) AddPattern(pattern string) error {
	if pattern == "" {
		return nil
	}

	negate := strings.HasPrefix(pattern, "!")
	if negate {
		pattern = pattern[1:]
	}
	dirOnly := strings.HasSuffix(pattern, "/")
	if dirOnly {
		pattern = strings.TrimSuffix(pattern, "/")
	}
	pattern = strings.TrimPrefix(pattern, "/")
	hasSlash := strings.Contains(pattern, "/")

	// Bare patterns match a single path segment at any depth; slashed
	// patterns anchor at the root and cover everything beneath them.
	globPattern := pattern
	if hasSlash {
		globPattern = pattern + "{,/**}"
	}
	g, err := glob.Compile(globPattern, '/')
	if err != nil {
		return fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}

	r.patterns = append(r.patterns, ignorePattern{
		pattern:  pattern,
		glob:     g,
		negate:   negate,
		dirOnly:  dirOnly,
		hasSlash: hasSlash,
	})
	return nil
}

// ShouldIgnore reports whether a path (relative to the project root,
// forward slashes) is excluded from restart triggering.
func (r *IgnoreRules) ShouldIgnore(path string, isDir bool) bool {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	ignored := false
	for _, pattern := range r.patterns {
		if matchesPattern(pattern, path, isDir) {
			ignored = !pattern.negate
		}
	}
	return ignored
}

func matchesPattern(p ignorePattern, path string, isDir bool) bool {
	if p.hasSlash {
		if !p.glob.Match(path) {
			return false
		}
		// A directory-only pattern matching the path itself needs a
		// directory; anything nested deeper is inside that directory.
		if p.dirOnly && !isDir && !strings.HasPrefix(path, p.pattern+"/") {
			return false
		}
		return true
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if !p.glob.Match(segment) {
			continue
		}
		last := i == len(segments)-1
		if p.dirOnly && last && !isDir {
			continue
		}
		return true
	}
	return false
}

// Patterns returns a copy of all loaded patterns for inspection.
func (r *IgnoreRules) Patterns() []string {
	patterns := make([]string, 0, len(r.patterns))
	for _, p := range r.patterns {
		pattern := p.pattern
		if p.negate {
			pattern = "!" + pattern
		}
		if p.dirOnly {
			pattern += "/"
		}
		patterns = append(patterns, pattern)
	}
	return patterns
}
