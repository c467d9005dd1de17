package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	w, err := New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.debounce = 50 * time.Millisecond
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func waitEvent(t *testing.T, w *Watcher) (string, bool) {
	t.Helper()
	select {
	case path := <-w.Events():
		return path, true
	case <-time.After(3 * time.Second):
		return "", false
	}
}

func TestWatcherSeesWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "server.js")
	if err := os.WriteFile(file, []byte("// v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, dir)
	if err := os.WriteFile(file, []byte("// v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, ok := waitEvent(t, w)
	if !ok {
		t.Fatal("no event for server.js write")
	}
	if path != "server.js" {
		t.Errorf("event path = %q, want server.js", path)
	}
}

func TestWatcherIgnoresNodeModules(t *testing.T) {
	dir := t.TempDir()
	nm := filepath.Join(dir, "node_modules", "express")
	if err := os.MkdirAll(nm, 0o755); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, dir)
	if err := os.WriteFile(filepath.Join(nm, "index.js"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-w.Events():
		t.Fatalf("unexpected event for ignored path %q", path)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherPicksUpNewDirectory(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	sub := filepath.Join(dir, "routes")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok := waitEvent(t, w); !ok {
		t.Fatal("no event for new directory")
	}

	// Let the new watch settle, then a file inside must be seen too.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "booking.js"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := waitEvent(t, w); !ok {
		t.Fatal("no event for file in new directory")
	}
}

func TestWatcherHonorsBookingignore(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, IgnoreFile), []byte("generated/\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	gen := filepath.Join(dir, "generated")
	if err := os.Mkdir(gen, 0o755); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, dir)
	if err := os.WriteFile(filepath.Join(gen, "out.js"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-w.Events():
		t.Fatalf("unexpected event for %q, generated/ is ignored", path)
	case <-time.After(500 * time.Millisecond):
	}
}
