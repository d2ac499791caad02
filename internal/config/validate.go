package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalid wraps every configuration error.
var ErrInvalid = errors.New("config: invalid")

// FieldError reports a bad value at a dotted path.
type FieldError struct {
	Path string
	Msg  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Path, e.Msg)
}

func (e *FieldError) Unwrap() error { return ErrInvalid }

var parameterUnits = map[string]bool{"": true, "s": true, "ms": true, "us": true}

// Directions lists the direction names a screen may bind.
var Directions = []string{"up", "down", "left", "right", "select", "back"}

// Validate checks everything that can be checked without building the
// screens. Action names are checked by the page manager.
func (c *Config) Validate() error {
	var errs []error
	bad := func(path, format string, args ...any) {
		errs = append(errs, &FieldError{Path: path, Msg: fmt.Sprintf(format, args...)})
	}

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		bad("display", "size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Paths.Handoff == "" {
		bad("paths.handoff", "required")
	}
	if c.Paths.Progress == "" {
		bad("paths.progress", "required")
	}
	if c.Pins.Shutter == "" || c.Pins.Focus == "" {
		bad("pins", "shutter and focus are required")
	}
	if c.Sensors.MaxFailures < 1 {
		bad("sensors.max_failures", "must be at least 1")
	}
	switch c.Sensors.PowerMeterChip {
	case "ina219", "ina226":
	default:
		bad("sensors.power_meter_chip", "unknown chip %q", c.Sensors.PowerMeterChip)
	}
	if c.Refresh.ThreadScan.Duration <= 0 {
		bad("refresh.thread_scan", "must be positive")
	}
	for name, d := range map[string]Duration{
		"refresh.sequence_running": c.Refresh.SequenceRunning,
		"refresh.battery_infos":    c.Refresh.BatteryInfos,
		"refresh.battery_soc":      c.Refresh.BatterySoC,
	} {
		if d.Duration <= 0 {
			bad(name, "must be positive")
		}
	}
	if c.QR.Threshold < 0 {
		bad("qr.threshold", "must not be negative")
	}
	if c.QR.LargeModule <= 0 || c.QR.SmallModule <= 0 {
		bad("qr", "module sizes must be positive")
	}
	if c.QR.Border < 0 {
		bad("qr.border", "must not be negative")
	}

	seen := map[float64]bool{}
	for i, lv := range c.Battery.Levels {
		if seen[lv.Threshold] {
			bad(fmt.Sprintf("battery.levels[%d]", i), "duplicate threshold %v", lv.Threshold)
		}
		seen[lv.Threshold] = true
		if lv.Icon == "" {
			bad(fmt.Sprintf("battery.levels[%d].icon", i), "required")
		}
	}
	if c.Battery.LowestIcon == "" {
		bad("battery.lowest_icon", "required")
	}

	if len(c.Screens) == 0 {
		bad("screens", "at least one screen is required")
	} else if _, ok := c.Screens[c.StartScreen]; !ok {
		bad("start_screen", "unknown screen %q", c.StartScreen)
	}
	for _, key := range c.ScreenKeys() {
		errs = append(errs, c.Screens[key].validate("screens."+key)...)
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func (s Screen) validate(path string) []error {
	var errs []error
	bad := func(p, format string, args ...any) {
		errs = append(errs, &FieldError{Path: p, Msg: fmt.Sprintf(format, args...)})
	}
	if s.Class == "" {
		bad(path+".class", "required")
	}
	if s.Title == "" {
		bad(path+".title", "required")
	}
	for dir := range s.Keys {
		if !isDirection(dir) {
			bad(path+".keys", "unknown direction %q", dir)
		}
	}
	for i, p := range s.Parameters {
		pp := fmt.Sprintf("%s.parameters[%d]", path, i)
		if p.Name == "" {
			bad(pp+".name", "required")
		}
		if !parameterUnits[p.Unit] {
			bad(pp+".unit", "unknown unit %q", p.Unit)
		}
		if p.Value < 0 {
			bad(pp+".value", "must not be negative")
		}
		if p.Step <= 0 {
			bad(pp+".step", "must be positive")
		}
		if p.Type != "number" && p.Type != "text" {
			bad(pp+".type", "unknown type %q", p.Type)
		}
	}
	return errs
}

func isDirection(d string) bool {
	for _, known := range Directions {
		if d == known {
			return true
		}
	}
	return false
}

// ScreenKeys returns the registry keys in sorted order.
func (c *Config) ScreenKeys() []string {
	keys := make([]string, 0, len(c.Screens))
	for k := range c.Screens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bound reports whether an action name binds anything.
func Bound(action string) bool {
	a := strings.TrimSpace(action)
	return a != "" && a != "none"
}
