package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"astrotimer/app"
	"astrotimer/hal"
	"astrotimer/internal/buildinfo"
	"astrotimer/internal/config"
	"astrotimer/internal/logging"
	"astrotimer/internal/pages"
	"astrotimer/internal/trigger"
	"astrotimer/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// run command flags
var (
	headless bool
	hz       int
	ticks    uint64
	poweroff bool
)

// trigger command flags
var (
	exposure time.Duration
	shots    int
	interval time.Duration
	offset   time.Duration
)

// config command flags
var dumpFormat string

func init() {
	runCmd.Flags().BoolVar(&headless, "headless", false, "Run without a window (always on the device)")
	runCmd.Flags().IntVar(&hz, "hz", 30, "UI tick rate in headless mode")
	runCmd.Flags().Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever)")
	runCmd.Flags().BoolVar(&poweroff, "poweroff", false, "Power the board off after the shutdown screen is confirmed")

	triggerCmd.Flags().DurationVar(&exposure, "exposure", 30*time.Second, "Exposure time of each shot")
	triggerCmd.Flags().IntVar(&shots, "shots", 10, "Number of shots")
	triggerCmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Pause between shots")
	triggerCmd.Flags().DurationVar(&offset, "offset", -1, "Camera wake offset (configured value when negative)")

	configDumpCmd.Flags().StringVar(&dumpFormat, "format", string(config.FormatYAML), "Output format (yaml, toml)")
	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configCheckCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(triggerCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and builds the root logger.
func setup() (*config.Config, *zap.Logger, error) {
	log, err := logging.New(logLevel)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the device UI",
	Long: `Start the device UI.

On a desktop build the screens are shown in a window, with the arrow keys,
enter and escape standing in for the 5-way switch. With --headless the UI
runs without a window and reads the same keys from the terminal.`,
	Example: `  # Desktop window
  astrotimer run

  # Headless, 300 ticks then exit
  astrotimer run --headless --ticks 300`,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("starting", zap.String("build", buildinfo.String()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, err := hal.New(cfg, log)
	if err != nil {
		return err
	}
	a, err := app.New(ctx, h, cfg, log, app.Config{Splash: app.DefaultSplash})
	if err != nil {
		h.Close()
		return err
	}

	if headless || !hal.WindowAvailable {
		err = hal.RunHeadless(ctx, h, a.Step, hal.HeadlessConfig{Hz: hz, Ticks: ticks, Terminal: true})
	} else {
		err = hal.RunWindow(h, a.Step, cfg.Display.Scale)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	quit := a.Manager().Quit()
	if cerr := a.Close(); cerr != nil {
		log.Warn("release hardware", zap.Error(cerr))
	}
	if err != nil {
		return err
	}
	if quit && poweroff {
		log.Info("power off")
		return exec.Command("poweroff").Run()
	}
	return nil
}

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Run one exposure sequence without the UI",
	Long: `Run one exposure sequence directly on the trigger lines.

Each shot is logged. Ctrl-C cancels the sequence and releases both lines.
Progress is written to the configured progress file as the UI does.`,
	Example: `  # Three 1 s shots, half a second apart
  astrotimer trigger --exposure 1s --shots 3 --interval 500ms`,
	RunE: runTrigger,
}

func runTrigger(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	off := cfg.Sequence.Offset.Duration
	if offset >= 0 {
		off = offset
	}
	params := trigger.Parameters{
		Exposure: trigger.Quantity{Value: exposure.Seconds(), Unit: trigger.UnitSecond},
		Shots:    trigger.Quantity{Value: float64(shots)},
		Interval: trigger.Quantity{Value: interval.Seconds(), Unit: trigger.UnitSecond},
		Offset:   trigger.Quantity{Value: float64(off) / float64(time.Millisecond), Unit: trigger.UnitMillisecond},
	}
	if err := params.Validate(); err != nil {
		return err
	}

	h, err := hal.New(cfg, log)
	if err != nil {
		return err
	}
	defer h.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := trigger.NewFileStore(cfg.Paths.Progress)
	shutter, focus := h.Pins()
	engine := trigger.New(shutter, focus,
		trigger.WithLogger(log.Named("trigger")),
		trigger.WithProgress(store),
		trigger.WithReleasePulse(cfg.Sequence.ReleasePulse.Duration))

	start := time.Now()
	err = engine.Run(ctx, params)
	p, _ := store.Load()
	log.Info("sequence done",
		zap.Int("taken", p.Taken),
		zap.Int("remaining", p.Remaining),
		zap.Duration("elapsed", time.Since(start)))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and check configuration files",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration",
	Example: `  # Defaults as TOML
  astrotimer config dump --format toml

  # A file merged over the defaults
  astrotimer --config site.yaml config dump`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return config.Write(cmd.OutOrStdout(), cfg, config.Format(dumpFormat))
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a configuration file and its key bindings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}
		if err := checkScreens(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d screens)\n", args[0], len(cfg.Screens))
		return nil
	},
}

// checkScreens builds every screen without a display so that unknown
// classes and unresolvable bindings are reported.
func checkScreens(cfg *config.Config) error {
	log := zap.NewNop()
	env := &ui.Env{
		Fonts:   ui.DefaultFonts(),
		Assets:  ui.NewAssets(cfg.Paths.Assets, log),
		Battery: ui.NewBatteryIcons(cfg.Battery),
		Log:     log,
	}
	m, err := pages.New(cfg, env, pages.Hardware{}, log)
	if err != nil {
		return err
	}
	return m.Close()
}
