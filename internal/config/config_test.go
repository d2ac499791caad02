package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.StartScreen != "main_menu_page" {
		t.Fatalf("start screen: got %q", cfg.StartScreen)
	}
	if got := cfg.Sequence.Offset.Duration; got != 300*time.Millisecond {
		t.Fatalf("offset: got %v, want 300ms", got)
	}
	if cfg.Sensors.FuelGauge != 0x36 {
		t.Fatalf("fuel gauge address: got %#x, want 0x36", cfg.Sensors.FuelGauge)
	}
	if cfg.QR.Threshold != 50 || cfg.QR.LargeModule != 5 || cfg.QR.SmallModule != 4 {
		t.Fatalf("qr: got %+v", cfg.QR)
	}
	if n := len(cfg.Screens["main_menu_page"].Menus); n != 6 {
		t.Fatalf("main menu rows: got %d, want 6", n)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.yaml")
	doc := `
refresh:
  sequence_running: 500ms
  battery_infos: 2s
  battery_soc: 10s
  thread_scan: 20ms
screens:
  coming_soon_page:
    class: ComingSoonPage
    title: Later
    keys: {back: go_back}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Refresh.SequenceRunning.Duration; got != 500*time.Millisecond {
		t.Fatalf("sequence_running: got %v", got)
	}
	if got := cfg.Screens["coming_soon_page"].Title; got != "Later" {
		t.Fatalf("overridden title: got %q", got)
	}
	if _, ok := cfg.Screens["main_menu_page"]; !ok {
		t.Fatalf("default screens dropped by overlay")
	}
}

func TestLoadYAMLUnknownField(t *testing.T) {
	_, err := LoadFrom(strings.NewReader("paths:\n  nope: 1\n"), FormatYAML)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
}

func TestLoadTOML(t *testing.T) {
	doc := `
start_screen = "battery_page"

[qr]
threshold = 40
large_module = 6
small_module = 3
border = 1
`
	cfg, err := LoadFrom(strings.NewReader(doc), FormatTOML)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.StartScreen != "battery_page" || cfg.QR.Threshold != 40 {
		t.Fatalf("got start %q threshold %d", cfg.StartScreen, cfg.QR.Threshold)
	}
}

func TestLoadTOMLUnknownKey(t *testing.T) {
	_, err := LoadFrom(strings.NewReader("[display]\ncolour = 3\n"), FormatTOML)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
	if !strings.Contains(err.Error(), "display.colour") {
		t.Fatalf("error does not name the key: %v", err)
	}
}

func TestValidateReportsFields(t *testing.T) {
	cfg := Default()
	cfg.StartScreen = "missing"
	s := cfg.Screens["sequence_parameter_page"]
	s.Parameters = append([]ParameterOption(nil), s.Parameters...)
	s.Parameters[0].Unit = "min"
	cfg.Screens["sequence_parameter_page"] = s
	cfg.Battery.Levels = append(cfg.Battery.Levels, BatteryLevel{Threshold: 90, Icon: "x"})

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
	for _, want := range []string{"start_screen", "parameters[0].unit", "duplicate threshold"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("no FieldError in %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML} {
		var buf bytes.Buffer
		if err := Write(&buf, Default(), format); err != nil {
			t.Fatalf("%s: Write: %v", format, err)
		}
		cfg, err := LoadFrom(&buf, format)
		if err != nil {
			t.Fatalf("%s: reload: %v", format, err)
		}
		if cfg.Refresh.ThreadScan.Duration != 50*time.Millisecond {
			t.Fatalf("%s: thread_scan: got %v", format, cfg.Refresh.ThreadScan)
		}
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{"a.yml": FormatYAML, "b.YAML": FormatYAML, "c.toml": FormatTOML} {
		got, err := FormatOf(path)
		if err != nil || got != want {
			t.Fatalf("%s: got %q, %v", path, got, err)
		}
	}
	if _, err := FormatOf("d.json"); err == nil {
		t.Fatalf("json accepted")
	}
}
