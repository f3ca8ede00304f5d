package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// usageLine builds one valid assistant JSONL line.
func usageLine(sessionID, msgID, ts, modelID string, input, output int64) string {
	return fmt.Sprintf(
		`{"type":"assistant","timestamp":%q,"sessionId":%q,"cwd":"/tmp/proj","message":{"id":%q,"model":%q,"usage":{"input_tokens":%d,"output_tokens":%d}}}`,
		ts, sessionID, msgID, modelID, input, output,
	)
}

// writeLog writes a JSONL file under dir and pins its mtime so cache tests
// are deterministic.
func writeLog(t *testing.T, dir, name string, mtime time.Time, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return path
}
