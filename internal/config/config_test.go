package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgajeed76/erpgrid/internal/grid"
	"github.com/imgajeed76/erpgrid/internal/payroll"
)

func TestGetSetValue_RoundTrip(t *testing.T) {
	cfg := DefaultGlobalConfig()

	tests := []struct{ key, value string }{
		{"table.page_size", "25"},
		{"search.threshold", "contains"},
		{"search.rank_order", "true"},
		{"payroll.pf_percent", "0"},
		{"source.path", "/tmp/leads.yaml"},
	}
	for _, tt := range tests {
		require.NoError(t, cfg.SetValue(tt.key, tt.value), tt.key)
		got, ok := cfg.GetValue(tt.key)
		require.True(t, ok, tt.key)
		assert.Equal(t, tt.value, got, tt.key)
	}

	assert.Equal(t, 25, cfg.Table.PageSize)
	assert.True(t, cfg.Search.RankOrder)
	rank, err := cfg.Threshold()
	require.NoError(t, err)
	assert.Equal(t, grid.RankContains, rank)
}

func TestSetValue_Validation(t *testing.T) {
	cfg := DefaultGlobalConfig()

	tests := []struct {
		key, value, errPart string
	}{
		{"table.page_size", "0", "below minimum"},
		{"table.page_size", "501", "exceeds maximum"},
		{"table.page_size", "ten", "invalid integer"},
		{"payroll.hra_percent", "-1", "below minimum"},
		{"search.rank_order", "maybe", "invalid boolean"},
		{"search.threshold", "closest", "unknown rank"},
		{"table.colour", "red", "unknown config key"},
	}
	for _, tt := range tests {
		err := cfg.SetValue(tt.key, tt.value)
		require.Error(t, err, "%s=%s", tt.key, tt.value)
		assert.Contains(t, err.Error(), tt.errPart)
	}
	assert.Equal(t, 10, cfg.Table.PageSize, "rejected values must not apply")
}

func TestSetValue_Aliases(t *testing.T) {
	cfg := DefaultGlobalConfig()

	require.NoError(t, cfg.SetValue("Upload.Step", "20"))
	assert.Equal(t, 20, cfg.Upload.StepPercent)
}

func TestListKeys_SkipsSlabs(t *testing.T) {
	keys := ListKeys()

	assert.Contains(t, keys, "payroll.standard_deduction")
	assert.Contains(t, keys, "search.rank_order")
	for _, k := range keys {
		assert.False(t, strings.Contains(k, "slab"), k)
	}
	assert.Contains(t, GenerateHelpText(), "table.window_size")
}

func TestLoadFile_DefaultsAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[table]
page_size = 0
col_width = 12

[search]
threshold = ""

[payroll]
hra_percent = 50

[[payroll.slab]]
up_to = 300000.0
percent = 0.0

[[payroll.slab]]
percent = 10.0
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Table.PageSize, "zero page size falls back to default")
	assert.Equal(t, 12, cfg.Table.ColWidth)
	assert.Equal(t, "matches", cfg.Search.Threshold)
	assert.Equal(t, 12, cfg.Payroll.PFPercent, "missing key keeps default")

	rates := cfg.Rates()
	assert.InDelta(t, 50, rates.HRAPercent, 0.001)
	assert.Equal(t, []payroll.Slab{{UpTo: 300000}, {Percent: 10}}, rates.Slabs)
	require.NoError(t, rates.Validate())
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultGlobalConfig(), cfg)
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultGlobalConfig()
	require.NoError(t, cfg.SetValue("source.database_url", "postgres://erp@localhost/erp"))
	require.NoError(t, cfg.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGlobalConfigPath_XDG(t *testing.T) {
	if os.Getenv("APPDATA") != "" {
		t.Skip("platform config dir")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got := GlobalConfigPath()
	if !strings.HasPrefix(got, filepath.Join(dir, "erpgrid")) {
		t.Skipf("non-XDG platform path %s", got)
	}
	assert.Equal(t, filepath.Join(dir, "erpgrid", "config.toml"), got)
}
