package exec

import (
	"runtime"
	"strings"
	"testing"
)

func TestExecutableSuffix(t *testing.T) {
	got := Executable("npm")
	if runtime.GOOS == "windows" {
		if got != "npm.cmd" {
			t.Fatalf("Executable(npm) = %q, want npm.cmd", got)
		}
		return
	}
	if got != "npm" {
		t.Fatalf("Executable(npm) = %q, want npm", got)
	}
}

func TestLookPathOverride(t *testing.T) {
	old := LookPath
	defer func() { LookPath = old }()
	LookPath = func(name string) bool { return name == "node" }

	if !LookPath("node") {
		t.Error("expected node to be found")
	}
	if LookPath("npm") {
		t.Error("expected npm to be missing")
	}
}

func TestJoinArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string // substrings that must appear
	}{
		{"plain", []string{"npm", "start"}, []string{"npm start"}},
		{"spaces quoted", []string{"npm", "run", "dev server"}, []string{"dev server"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinArgs(tt.args)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("JoinArgs(%v) = %q, want it to contain %q", tt.args, got, w)
				}
			}
		})
	}
}
