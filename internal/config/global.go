package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/imgajeed76/erpgrid/internal/grid"
	"github.com/imgajeed76/erpgrid/internal/payroll"
)

// GlobalConfig represents erpgrid settings stored in the user's config directory
type GlobalConfig struct {
	Table   TableConfig   `toml:"table"`
	Search  SearchConfig  `toml:"search"`
	Payroll PayrollConfig `toml:"payroll"`
	Upload  UploadConfig  `toml:"upload"`
	Source  SourceConfig  `toml:"source"`
}

// TableConfig controls how result tables are paged and drawn
type TableConfig struct {
	PageSize   int `toml:"page_size" config:"table.page_size" default:"10" min:"1" max:"500" desc:"Rows per page"`
	WindowSize int `toml:"window_size" config:"table.window_size" default:"5" min:"1" max:"25" desc:"Page-number buttons in the footer"`
	ColWidth   int `toml:"col_width" config:"table.col_width" default:"30" min:"4" max:"200" desc:"Max characters per cell before truncation"`
}

// SearchConfig tunes the global fuzzy query
type SearchConfig struct {
	Threshold string `toml:"threshold" config:"search.threshold" default:"matches" desc:"Weakest match rank a row may pass with"`
	RankOrder bool   `toml:"rank_order" config:"search.rank_order" default:"false" desc:"Order results by match rank when no column is sorted"`
}

// PayrollConfig holds the rates payroll breakdowns are computed with
type PayrollConfig struct {
	HRAPercent        int            `toml:"hra_percent" config:"payroll.hra_percent" default:"40" min:"0" max:"100" desc:"House rent allowance, percent of basic"`
	PFPercent         int            `toml:"pf_percent" config:"payroll.pf_percent" default:"12" min:"0" max:"100" desc:"Provident fund, percent of basic"`
	PFWageCeiling     int            `toml:"pf_wage_ceiling" config:"payroll.pf_wage_ceiling" default:"0" min:"0" desc:"Monthly wage PF is capped at (0 = no cap)"`
	StandardDeduction int            `toml:"standard_deduction" config:"payroll.standard_deduction" default:"50000" min:"0" desc:"Annual standard deduction"`
	Slabs             []payroll.Slab `toml:"slab"`
}

// UploadConfig drives the simulated uploader
type UploadConfig struct {
	StepPercent int `toml:"step_percent" config:"upload.step_percent" default:"10" min:"1" max:"100" desc:"Progress per tick"`
	IntervalMS  int `toml:"interval_ms" config:"upload.interval_ms" default:"200" min:"1" max:"60000" desc:"Milliseconds between ticks"`
}

// SourceConfig names where records come from when no flag says otherwise
type SourceConfig struct {
	Path        string `toml:"path" config:"source.path" desc:"JSON, YAML or TOML record file (empty = built-in sample data)"`
	DatabaseURL string `toml:"database_url" config:"source.database_url" desc:"postgres:// url or SQLite file to read records from"`
}

// DefaultGlobalConfig returns a new global config with default values
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Table: TableConfig{
			PageSize:   grid.DefaultPageSize,
			WindowSize: grid.DefaultWindowSize,
			ColWidth:   30,
		},
		Search: SearchConfig{
			Threshold: grid.RankMatches.String(),
		},
		Payroll: PayrollConfig{
			HRAPercent:        40,
			PFPercent:         12,
			StandardDeduction: 50000,
			Slabs:             payroll.DefaultSlabs(),
		},
		Upload: UploadConfig{
			StepPercent: 10,
			IntervalMS:  200,
		},
	}
}

// GlobalConfigPath returns the path to the global config file
// Follows XDG Base Directory spec on Linux, platform conventions elsewhere
func GlobalConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, "Library", "Application Support", "erpgrid")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "erpgrid")
	default: // Linux and others - follow XDG
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "erpgrid")
		} else {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config", "erpgrid")
		}
	}

	return filepath.Join(configDir, "config.toml")
}

// LoadGlobal reads the global config file, falling back to defaults if it doesn't exist
func LoadGlobal() (*GlobalConfig, error) {
	return LoadFile(GlobalConfigPath())
}

// LoadFile reads a config file at path. Keys the file leaves out, or sets to
// an invalid zero value, keep their defaults.
func LoadFile(path string) (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	if _, err := os.Stat(path); err == nil {
		// decoding appends to slices, so start the slab table empty
		cfg.Payroll.Slabs = nil
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyDefaults(cfg)
	if len(cfg.Payroll.Slabs) == 0 {
		cfg.Payroll.Slabs = payroll.DefaultSlabs()
	}
	return cfg, nil
}

// Save writes the global config file
func (c *GlobalConfig) Save() error {
	return c.SaveFile(GlobalConfigPath())
}

// SaveFile writes the config to path, creating its directory.
func (c *GlobalConfig) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// GetValue returns a global config value by key (uses reflection)
func (c *GlobalConfig) GetValue(key string) (string, bool) {
	return getFieldValue(c, key)
}

// SetValue sets a global config value by key (uses reflection with validation)
func (c *GlobalConfig) SetValue(key, value string) error {
	return setFieldValue(c, key, value)
}

// Rates converts the payroll section for payroll.Compute.
func (c *GlobalConfig) Rates() payroll.Rates {
	return payroll.Rates{
		HRAPercent:        float64(c.Payroll.HRAPercent),
		PFPercent:         float64(c.Payroll.PFPercent),
		PFWageCeiling:     float64(c.Payroll.PFWageCeiling),
		StandardDeduction: float64(c.Payroll.StandardDeduction),
		Slabs:             append([]payroll.Slab(nil), c.Payroll.Slabs...),
	}
}

// Threshold parses search.threshold.
func (c *GlobalConfig) Threshold() (grid.Rank, error) {
	return grid.ParseRank(c.Search.Threshold)
}

// UploadInterval returns upload.interval_ms as a duration.
func (c *GlobalConfig) UploadInterval() time.Duration {
	return time.Duration(c.Upload.IntervalMS) * time.Millisecond
}
