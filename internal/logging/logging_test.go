package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_LevelAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erpgrid.log")

	quiet, err := New(false, path)
	if err != nil {
		t.Fatal(err)
	}
	quiet.Debug("hidden detail")
	quiet.Warn("page clamped", zap.Int("to", 2))
	_ = quiet.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "hidden detail") {
		t.Fatalf("debug line logged without verbose:\n%s", out)
	}
	if !strings.Contains(out, `"msg":"page clamped"`) || !strings.Contains(out, `"to":2`) {
		t.Fatalf("warning missing:\n%s", out)
	}

	loud, err := New(true, path)
	if err != nil {
		t.Fatal(err)
	}
	if !loud.Core().Enabled(zap.DebugLevel) {
		t.Fatal("verbose logger should enable debug")
	}
}
