package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(DefaultConfig()) = %v, want nil", err)
	}
	b := cfg.Budget
	if sum := b.EssentialsPct + b.NonEssentialsPct + b.SavingsPct; sum != 100 {
		t.Fatalf("default split sums to %d, want 100", sum)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("BUDGETBUDDY_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Budget.EssentialsPct != 50 {
		t.Fatalf("EssentialsPct = %d, want default 50", cfg.Budget.EssentialsPct)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("Theme = %q, want default flexoki-dark", cfg.Appearance.Theme)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("BUDGETBUDDY_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	cfg := DefaultConfig()
	cfg.General.CurrencySymbol = "€"
	cfg.Budget.EssentialsPct = 60
	cfg.Budget.NonEssentialsPct = 25
	cfg.Budget.SavingsPct = 15
	cfg.Appearance.Theme = "flexoki-light"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.CurrencySymbol != "€" {
		t.Fatalf("CurrencySymbol = %q, want €", got.General.CurrencySymbol)
	}
	if got.Budget.EssentialsPct != 60 || got.Budget.NonEssentialsPct != 25 || got.Budget.SavingsPct != 15 {
		t.Fatalf("split = %d/%d/%d, want 60/25/15",
			got.Budget.EssentialsPct, got.Budget.NonEssentialsPct, got.Budget.SavingsPct)
	}
	if got.Appearance.Theme != "flexoki-light" {
		t.Fatalf("Theme = %q, want flexoki-light", got.Appearance.Theme)
	}
}

func TestSaveRejectsBadSplit(t *testing.T) {
	t.Setenv("BUDGETBUDDY_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	cfg := DefaultConfig()
	cfg.Budget.SavingsPct = 30

	if err := Save(cfg); err == nil {
		t.Fatal("Save accepted a split summing to 110")
	}
	if Exists() {
		t.Fatal("invalid config was written to disk")
	}
}

func TestValidateBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DecimalPlaces = 7
	if err := Validate(cfg); err == nil {
		t.Fatal("Validate accepted decimal_places = 7")
	}

	cfg = DefaultConfig()
	cfg.Alerts.OverspendThresholdPct = 250
	if err := Validate(cfg); err == nil {
		t.Fatal("Validate accepted overspend_threshold_pct = 250")
	}
}

func TestDataDirPrecedence(t *testing.T) {
	t.Setenv("BUDGETBUDDY_DATA_DIR", "/tmp/env-data")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	cfg := DefaultConfig()
	cfg.General.DataDir = "/tmp/cfg-data"
	if got := DataDir(cfg); got != "/tmp/cfg-data" {
		t.Fatalf("DataDir with config value = %q, want /tmp/cfg-data", got)
	}

	cfg.General.DataDir = ""
	if got := DataDir(cfg); got != "/tmp/env-data" {
		t.Fatalf("DataDir with env = %q, want /tmp/env-data", got)
	}

	t.Setenv("BUDGETBUDDY_DATA_DIR", "")
	if got := DataDir(cfg); got != filepath.Join("/tmp/xdg", "budgetbuddy") {
		t.Fatalf("DataDir from XDG = %q, want /tmp/xdg/budgetbuddy", got)
	}
}

func TestBackupDue(t *testing.T) {
	cfg := DefaultConfig()

	if !BackupDue(cfg) {
		t.Fatal("BackupDue = false with no backup recorded")
	}

	cfg.Alerts.LastBackup = time.Now().Add(-time.Hour).Format(time.RFC3339)
	if BackupDue(cfg) {
		t.Fatal("BackupDue = true an hour after backup")
	}

	cfg.Alerts.LastBackup = time.Now().AddDate(0, 0, -10).Format(time.RFC3339)
	if !BackupDue(cfg) {
		t.Fatal("BackupDue = false ten days after backup with a 7 day reminder")
	}

	cfg.Alerts.BackupReminderDays = 0
	if BackupDue(cfg) {
		t.Fatal("BackupDue = true with reminders disabled")
	}
}

func TestParseSplit(t *testing.T) {
	e, n, s, err := ParseSplit("50/30/20")
	if err != nil {
		t.Fatalf("ParseSplit(50/30/20): %v", err)
	}
	if e != 50 || n != 30 || s != 20 {
		t.Fatalf("ParseSplit = %d/%d/%d, want 50/30/20", e, n, s)
	}

	if _, _, _, err := ParseSplit(" 60 / 25 / 15 "); err != nil {
		t.Fatalf("ParseSplit with spaces: %v", err)
	}

	for _, bad := range []string{"", "50/50", "50/30/20/0", "a/b/c", "50/30/30", "-10/90/20"} {
		if _, _, _, err := ParseSplit(bad); err == nil {
			t.Fatalf("ParseSplit(%q) accepted", bad)
		}
	}
}

func TestSymbolFor(t *testing.T) {
	if got := SymbolFor("EUR"); got != "€" {
		t.Fatalf("SymbolFor(EUR) = %q, want €", got)
	}
	if got := SymbolFor("XYZ"); got != "$" {
		t.Fatalf("SymbolFor(XYZ) = %q, want $ fallback", got)
	}
}
