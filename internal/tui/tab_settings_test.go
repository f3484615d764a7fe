package tui

import (
	"path/filepath"
	"testing"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
)

func settingsApp(t *testing.T) App {
	t.Setenv("BUDGETBUDDY_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	return App{
		cfg: config.DefaultConfig(),
		led: ledger.New(t.TempDir()),
	}
}

func TestSettingsSavePersistsField(t *testing.T) {
	app := settingsApp(t)
	app.settings.cursor = settingsFieldAlertPct
	app.settings.input = newSettingsInput()
	app.settings.input.SetValue("35")

	app.settingsSave()

	if app.settings.saveErr != nil {
		t.Fatalf("settingsSave: %v", app.settings.saveErr)
	}
	if got := app.cfg.Alerts.OverspendThresholdPct; got != 35 {
		t.Fatalf("OverspendThresholdPct = %d, want 35", got)
	}

	saved, err := config.Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if saved.Alerts.OverspendThresholdPct != 35 {
		t.Fatalf("persisted threshold = %d, want 35", saved.Alerts.OverspendThresholdPct)
	}
}

func TestSettingsSaveRejectsBrokenSplit(t *testing.T) {
	app := settingsApp(t)
	app.settings.cursor = settingsFieldEssentials
	app.settings.input = newSettingsInput()
	app.settings.input.SetValue("90") // 90/30/20 does not sum to 100

	app.settingsSave()

	if app.settings.saveErr == nil {
		t.Fatal("settingsSave accepted a split summing to 140")
	}
	if got := app.cfg.Budget.EssentialsPct; got != 50 {
		t.Fatalf("EssentialsPct = %d, want untouched default 50", got)
	}
	if config.Exists() {
		t.Fatal("invalid config was written to disk")
	}
}

func TestSettingsStartEditPrefillsEveryField(t *testing.T) {
	app := settingsApp(t)

	for cursor := 0; cursor < settingsFieldCount; cursor++ {
		app.settings.cursor = cursor
		m, _ := app.settingsStartEdit()
		got := m.(App)
		if !got.settings.editing {
			t.Fatalf("cursor %d: editing not set", cursor)
		}
	}

	app.settings.cursor = settingsFieldTheme
	m, _ := app.settingsStartEdit()
	if v := m.(App).settings.input.Value(); v != "flexoki-dark" {
		t.Fatalf("theme prefill = %q, want flexoki-dark", v)
	}

	app.settings.cursor = settingsFieldAlertPct
	m, _ = app.settingsStartEdit()
	if v := m.(App).settings.input.Value(); v != "10" {
		t.Fatalf("alert threshold prefill = %q, want 10", v)
	}
}
