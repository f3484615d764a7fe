package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all budgetbuddy configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
	Alerts     AlertsConfig     `toml:"alerts"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir        string `toml:"data_dir,omitempty"`
	Currency       string `toml:"currency"`
	CurrencySymbol string `toml:"currency_symbol"`
	DecimalPlaces  int    `toml:"decimal_places"`
	DateFormat     string `toml:"date_format"`
}

// BudgetConfig holds the allocation split and bill planning settings.
// The three percentages must sum to 100.
type BudgetConfig struct {
	EssentialsPct    int64 `toml:"essentials_pct"`
	NonEssentialsPct int64 `toml:"non_essentials_pct"`
	SavingsPct       int64 `toml:"savings_pct"`
	UpcomingBillDays int   `toml:"upcoming_bill_days"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// AlertsConfig holds overspend and backup reminder settings.
type AlertsConfig struct {
	OverspendThresholdPct int    `toml:"overspend_threshold_pct"`
	BackupReminderDays    int    `toml:"backup_reminder_days"`
	LastBackup            string `toml:"last_backup,omitempty"`
}

// DefaultConfig returns the default configuration with the 50/30/20 split.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:       "USD",
			CurrencySymbol: "$",
			DecimalPlaces:  2,
			DateFormat:     "2006-01-02",
		},
		Budget: BudgetConfig{
			EssentialsPct:    50,
			NonEssentialsPct: 30,
			SavingsPct:       20,
			UpcomingBillDays: 7,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Alerts: AlertsConfig{
			OverspendThresholdPct: 10,
			BackupReminderDays:    7,
		},
	}
}

// Validate checks the settings a user can break through hand editing.
func Validate(cfg Config) error {
	b := cfg.Budget
	if sum := b.EssentialsPct + b.NonEssentialsPct + b.SavingsPct; sum != 100 {
		return fmt.Errorf("budget split must sum to 100, got %d/%d/%d", b.EssentialsPct, b.NonEssentialsPct, b.SavingsPct)
	}
	if b.EssentialsPct < 0 || b.NonEssentialsPct < 0 || b.SavingsPct < 0 {
		return fmt.Errorf("budget split percentages must be non-negative")
	}
	if cfg.General.DecimalPlaces < 0 || cfg.General.DecimalPlaces > 4 {
		return fmt.Errorf("decimal_places must be between 0 and 4, got %d", cfg.General.DecimalPlaces)
	}
	if cfg.Alerts.OverspendThresholdPct < 0 || cfg.Alerts.OverspendThresholdPct > 100 {
		return fmt.Errorf("overspend_threshold_pct must be between 0 and 100, got %d", cfg.Alerts.OverspendThresholdPct)
	}
	if cfg.Alerts.BackupReminderDays < 0 {
		return fmt.Errorf("backup_reminder_days must be non-negative")
	}
	return nil
}

// ParseSplit parses a "needs/wants/savings" percentage triple like 50/30/20.
func ParseSplit(s string) (essentials, wants, savings int64, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("use three numbers like 50/30/20")
	}
	var vals [3]int64
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || v < 0 {
			return 0, 0, 0, fmt.Errorf("percentages must be whole non-negative numbers")
		}
		vals[i] = v
	}
	if vals[0]+vals[1]+vals[2] != 100 {
		return 0, 0, 0, fmt.Errorf("percentages must sum to 100, got %d", vals[0]+vals[1]+vals[2])
	}
	return vals[0], vals[1], vals[2], nil
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetbuddy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetbuddy")
}

// ConfigPath returns the full path to the config file. The
// BUDGETBUDDY_CONFIG environment variable overrides it.
func ConfigPath() string {
	if path := os.Getenv("BUDGETBUDDY_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save validates and writes the config to disk.
func Save(cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	dir := filepath.Dir(ConfigPath())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// DataDir resolves the data directory: flag-set config value first, then
// environment, then the XDG data home.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if dir := os.Getenv("BUDGETBUDDY_DATA_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetbuddy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetbuddy")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// MarkBackup records now as the last backup time and saves.
func MarkBackup(cfg *Config) error {
	cfg.Alerts.LastBackup = time.Now().Format(time.RFC3339)
	return Save(*cfg)
}

// BackupDue reports whether the last backup is older than the reminder
// window. Never-backed-up counts as due once data exists.
func BackupDue(cfg Config) bool {
	if cfg.Alerts.BackupReminderDays == 0 {
		return false
	}
	if cfg.Alerts.LastBackup == "" {
		return true
	}
	last, err := time.Parse(time.RFC3339, cfg.Alerts.LastBackup)
	if err != nil {
		return true
	}
	return time.Since(last) >= time.Duration(cfg.Alerts.BackupReminderDays)*24*time.Hour
}
