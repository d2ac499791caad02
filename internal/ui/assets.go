package ui

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
)

//go:embed assets/*.svg
var embedded embed.FS

// EmptyIcon is drawn wherever an icon cannot be loaded.
const EmptyIcon = "icon_empty"

// Assets loads icons by name. A PNG named <name>.png in the asset
// directory wins over the embedded <name>.svg; anything missing falls back
// to the empty icon. Loaded icons are cached.
type Assets struct {
	dir string
	log *zap.Logger

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewAssets returns a loader reading overrides from dir, which may be
// empty.
func NewAssets(dir string, log *zap.Logger) *Assets {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assets{dir: dir, log: log, cache: map[string]image.Image{}}
}

// Icon returns the named icon, or the empty icon.
func (a *Assets) Icon(name string) image.Image {
	if name == "" {
		name = EmptyIcon
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if img, ok := a.cache[name]; ok {
		return img
	}
	img, err := a.load(name)
	if err != nil {
		a.log.Warn("icon unavailable", zap.String("icon", name), zap.Error(err))
		if name != EmptyIcon {
			img, err = a.load(EmptyIcon)
		}
		if err != nil {
			img = image.NewRGBA(image.Rect(0, 0, 48, 48))
		}
	}
	a.cache[name] = img
	return img
}

// Resized returns the named icon scaled to w×h with nearest-neighbour
// sampling.
func (a *Assets) Resized(name string, w, h int) image.Image {
	return imaging.Resize(a.Icon(name), w, h, imaging.NearestNeighbor)
}

func (a *Assets) load(name string) (image.Image, error) {
	base := strings.TrimSuffix(strings.TrimSuffix(name, ".png"), ".svg")
	if a.dir != "" {
		img, err := imaging.Open(filepath.Join(a.dir, base+".png"))
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	data, err := embedded.ReadFile("assets/" + base + ".svg")
	if err != nil {
		return nil, fmt.Errorf("icon %q: %w", name, os.ErrNotExist)
	}
	return rasterizeSVG(data)
}

func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has empty view box")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}
