//go:build !rpi

// Mkshots renders every configured screen on the simulated board and saves
// each frame as a PNG file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"astrotimer/app"
	"astrotimer/hal"
	"astrotimer/internal/config"
	"astrotimer/internal/logging"
	"astrotimer/internal/pages"
	"astrotimer/internal/trigger"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const defaultOut = "screenshots"

func main() {
	var (
		out      string
		cfgPath  string
		scale    int
		logLevel string
	)
	flag.StringVar(&out, "out", defaultOut, "Output directory.")
	flag.StringVar(&cfgPath, "config", "", "Configuration file (built-in defaults when empty).")
	flag.IntVar(&scale, "scale", 1, "Zoom factor of the saved images.")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level.")
	flag.Parse()

	if err := run(out, cfgPath, scale, logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "mkshots:", err)
		os.Exit(1)
	}
}

func run(out, cfgPath string, scale int, logLevel string) error {
	if scale <= 0 {
		return fmt.Errorf("invalid scale %d", scale)
	}
	log, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	tmp, err := os.MkdirTemp("", "mkshots")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)
	cfg.Paths.Handoff = filepath.Join(tmp, "sequence_parameters.json")
	cfg.Paths.Progress = filepath.Join(tmp, "running_parameters.json")

	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	h, err := hal.New(cfg, log)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a, err := app.New(ctx, h, cfg, log, app.Config{})
	if err != nil {
		h.Close()
		return err
	}
	defer a.Close()

	if err := save(a, filepath.Join(out, "splash.png"), scale); err != nil {
		return err
	}
	if err := a.Step(); err != nil {
		return err
	}

	m := a.Manager()
	for _, key := range m.Keys() {
		s, _ := m.Screen(key)
		if s.Class() == pages.ClassRunning {
			if err := writeHandoff(cfg.Paths.Handoff); err != nil {
				return err
			}
		}
		if err := m.ShowPage(key); err != nil {
			return fmt.Errorf("show %s: %w", key, err)
		}
		if err := save(a, filepath.Join(out, key+".png"), scale); err != nil {
			return err
		}
		log.Info("saved", zap.String("screen", key))
	}
	return nil
}

// writeHandoff stores a sample sequence so the running screen has
// something to show.
func writeHandoff(path string) error {
	h, err := trigger.NewHandoff(trigger.Parameters{
		Exposure: trigger.Quantity{Value: 30, Unit: trigger.UnitSecond},
		Shots:    trigger.Quantity{Value: 10},
		Interval: trigger.Quantity{Value: 5, Unit: trigger.UnitSecond},
		Offset:   trigger.DefaultOffset,
	}, time.Now())
	if err != nil {
		return err
	}
	return trigger.WriteHandoff(path, h)
}

func save(a *app.App, path string, scale int) error {
	img := a.Surface().Snapshot()
	if scale == 1 {
		return imaging.Save(img, path)
	}
	b := img.Bounds()
	return imaging.Save(imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor), path)
}
