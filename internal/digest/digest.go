// Package digest records what was installed. After a successful dependency
// install, bookingctl stamps node_modules with a Blake3 digest of the
// package manifest and lockfile; the doctor compares the stamp against the
// current files to warn about stale dependencies. The stamp never gates
// the install decision itself.
package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	e "github.com/FriptuLudmila/booking-service/pkg/errors"
)

// StampName is the stamp file written inside node_modules.
const StampName = ".bookingctl-stamp"

// manifestCandidates are the files that describe the dependency set, in
// deterministic order. Missing files are skipped.
var manifestCandidates = []string{
	"package.json",
	"package-lock.json",
	"pnpm-lock.yaml",
	"yarn.lock",
}

// Manifest computes the hex Blake3 digest of the project's dependency
// manifest files under root. Returns an error when none of the candidate
// files exist.
func Manifest(root string) (string, error) {
	files := make([]string, 0, len(manifestCandidates))
	for _, name := range manifestCandidates {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return "", e.New(e.ErrFileNotFound, "No package manifest found").
			WithDetails("Expected package.json or a lockfile in "+root).
			WithContext("root", root)
	}
	sort.Strings(files)

	hasher := blake3.New()
	for _, p := range files {
		f, err := os.Open(p)
		if err != nil {
			return "", fmt.Errorf("open %s: %w", p, err)
		}
		// File name is part of the digest so renames register as changes.
		fmt.Fprintf(hasher, "%s\x00", filepath.Base(p))
		if _, err := io.Copy(hasher, f); err != nil {
			f.Close()
			return "", fmt.Errorf("hash %s: %w", p, err)
		}
		f.Close()
		hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// StampPath returns the location of the install stamp for root.
func StampPath(root string) string {
	return filepath.Join(root, "node_modules", StampName)
}

// WriteStamp records the current manifest digest after an install.
func WriteStamp(root string) error {
	d, err := Manifest(root)
	if err != nil {
		return err
	}
	return os.WriteFile(StampPath(root), []byte(d+"\n"), 0o644)
}

// ReadStamp returns the recorded digest, or "" when no stamp exists. A
// stamp that is not a Blake3 hex digest is reported as corrupted; the
// error carries the stamp path so recovery can remove it.
func ReadStamp(root string) (string, error) {
	b, err := os.ReadFile(StampPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	recorded := strings.TrimSpace(string(b))
	if !validStamp(recorded) {
		return "", e.New(e.ErrStampCorrupted, "Install stamp is corrupted").
			WithDetails("The stamp is not a valid digest; it will not match any install").
			WithContext("stamp", StampPath(root))
	}
	return recorded, nil
}

// validStamp reports whether content looks like a hex Blake3 digest.
func validStamp(content string) bool {
	if len(content) != 64 {
		return false
	}
	_, err := hex.DecodeString(content)
	return err == nil
}

// Stale reports whether the lockfile changed since the last recorded
// install. A missing stamp is not stale; there is simply nothing to
// compare against.
func Stale(root string) (bool, error) {
	recorded, err := ReadStamp(root)
	if err != nil {
		return false, err
	}
	if recorded == "" {
		return false, nil
	}
	current, err := Manifest(root)
	if err != nil {
		return false, err
	}
	return current != recorded, nil
}
