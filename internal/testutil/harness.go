package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles creates every file of files under a fresh temporary directory
// and returns that directory. Keys are slash-separated relative paths.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// WriteLines writes lines, newline-terminated, to name under a fresh
// temporary directory and returns the full path.
func WriteLines(t *testing.T, name string, lines ...string) string {
	t.Helper()

	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	root := WriteFiles(t, map[string]string{name: content})
	return filepath.Join(root, filepath.FromSlash(name))
}

// LogTestOutput dumps captured logs when SIMLAUNCH_TEST_LOGS=true.
func LogTestOutput(t *testing.T, logs *SafeBuffer) {
	t.Helper()
	if os.Getenv("SIMLAUNCH_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}
}
