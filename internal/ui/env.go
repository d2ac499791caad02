package ui

import (
	"sort"

	"astrotimer/internal/config"

	"go.uber.org/zap"
)

// Callbacks are the manager-level actions every page can bind: key
// callbacks such as go_back and shutdown, and one page switch per
// registered screen.
type Callbacks struct {
	Keys  Actions
	Pages Actions
}

// LevelSource reports the battery charge in percent.
type LevelSource interface {
	Level() (float64, bool)
}

// BatteryIcons picks the status bar battery icon.
type BatteryIcons struct {
	levels []config.BatteryLevel
	lowest string
}

// NewBatteryIcons sorts levels by descending threshold.
func NewBatteryIcons(b config.Battery) BatteryIcons {
	levels := append([]config.BatteryLevel(nil), b.Levels...)
	sort.Slice(levels, func(i, j int) bool { return levels[i].Threshold > levels[j].Threshold })
	return BatteryIcons{levels: levels, lowest: b.LowestIcon}
}

// Icon returns the icon of the highest threshold at or below level. An
// unknown level, or one below every threshold, gives the lowest icon.
func (b BatteryIcons) Icon(level float64, known bool) string {
	if !known {
		return b.lowest
	}
	for _, lv := range b.levels {
		if level >= lv.Threshold {
			return lv.Icon
		}
	}
	return b.lowest
}

// Env is everything pages share.
type Env struct {
	Surface   *Surface
	Fonts     *Fonts
	Assets    *Assets
	Battery   BatteryIcons
	Level     LevelSource
	Callbacks *Callbacks
	Log       *zap.Logger
}
