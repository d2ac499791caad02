//go:build !rpi

package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"astrotimer/internal/config"
)

func TestRunSavesEveryScreen(t *testing.T) {
	out := t.TempDir()
	if err := run(out, "", 2, "error"); err != nil {
		t.Fatalf("run: %v", err)
	}
	cfg := config.Default()
	names := []string{"splash"}
	for key := range cfg.Screens {
		names = append(names, key)
	}
	for _, name := range names {
		f, err := os.Open(filepath.Join(out, name+".png"))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		b := img.Bounds()
		if b.Dx() != 2*cfg.Display.Width || b.Dy() != 2*cfg.Display.Height {
			t.Fatalf("%s: got %dx%d, want %dx%d", name, b.Dx(), b.Dy(), 2*cfg.Display.Width, 2*cfg.Display.Height)
		}
	}
}

func TestRunRejectsBadScale(t *testing.T) {
	if err := run(t.TempDir(), "", 0, "error"); err == nil {
		t.Fatal("run: got nil error, want invalid scale")
	}
}
