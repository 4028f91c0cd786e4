package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BagCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Machine = model.MachineLimit{Name: "Zund", Width: 1000, Height: 700}
	cfg.Machines = []model.MachineLimit{{Name: "Small", Width: 500, Height: 350}}
	cfg.DefaultMargins.Bleed = 5
	cfg.Style.LabelFontSize = 18
	cfg.Cutter.GCodeProfile = "Mach3"
	cfg.RecentDescriptors = []string{"250x350x100", "300-190-180_h60"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Machine != cfg.Machine {
		t.Errorf("expected machine %+v, got %+v", cfg.Machine, loaded.Machine)
	}
	if len(loaded.Machines) != 1 || loaded.Machines[0].Name != "Small" {
		t.Errorf("expected one alternative machine, got %+v", loaded.Machines)
	}
	if loaded.DefaultMargins.Bleed != 5 {
		t.Errorf("expected bleed=5, got %f", loaded.DefaultMargins.Bleed)
	}
	if loaded.Style.LabelFontSize != 18 {
		t.Errorf("expected font size 18, got %f", loaded.Style.LabelFontSize)
	}
	if loaded.Cutter.GCodeProfile != "Mach3" {
		t.Errorf("expected Mach3 profile, got %s", loaded.Cutter.GCodeProfile)
	}
	if len(loaded.RecentDescriptors) != 2 {
		t.Errorf("expected 2 recent descriptors, got %d", len(loaded.RecentDescriptors))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Machine != defaults.Machine {
		t.Errorf("expected default machine %+v, got %+v", defaults.Machine, cfg.Machine)
	}
	if cfg.DefaultMargins != defaults.DefaultMargins {
		t.Errorf("expected default margins %+v, got %+v", defaults.DefaultMargins, cfg.DefaultMargins)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"machine":{"name":"Big","width":1200,"height":800}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Machine.Width != 1200 {
		t.Errorf("expected width 1200, got %f", cfg.Machine.Width)
	}
	if cfg.DefaultMargins != model.DefaultMargins() {
		t.Errorf("expected missing margins to keep defaults, got %+v", cfg.DefaultMargins)
	}
	if cfg.Style.LabelFontSize != model.DefaultStyle().LabelFontSize {
		t.Errorf("expected default font size, got %f", cfg.Style.LabelFontSize)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilSlices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"recent_descriptors":null,"machines":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentDescriptors == nil {
		t.Error("RecentDescriptors should not be nil after loading")
	}
	if cfg.Machines == nil {
		t.Error("Machines should not be nil after loading")
	}
}
