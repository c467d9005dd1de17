package exec

import (
	"fmt"
	"runtime"
	"strings"
)

// Quote quotes a string for shell display
func Quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'$") {
		if runtime.GOOS == "windows" {
			return fmt.Sprintf("%q", strings.ReplaceAll(s, `"`, `""`))
		}
		return fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", "'\\''"))
	}
	return s
}

// JoinArgs joins arguments into a display-safe command line
func JoinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}
