package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FakeTool writes an executable /bin/sh script named name into dir and
// returns its path. Tests calling it are skipped on Windows.
func FakeTool(t testing.TB, dir, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts unavailable on windows")
	}

	path := filepath.Join(dir, name)
	body := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}
