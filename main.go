package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/client"
	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/game"
	"github.com/pthm-cable/thrust/input"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window")
	hold := flag.String("hold", "", "Comma-separated keys held for the whole headless run, e.g. Up,Left")
	maxFrames := flag.Uint64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for flight/perf CSV logs and config snapshot")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	slog.SetDefault(game.NewLogger(cfg.Log, os.Stdout))

	opts := game.Options{
		OutputDir: *outputDir,
		MaxFrames: *maxFrames,
		NoSleep:   *headless,
	}

	var err error
	if *headless {
		err = runHeadless(cfg, opts, input.ParseKeyList(*hold))
	} else {
		err = runWindow(cfg, opts)
	}
	if err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the simulation with a fixed set of held keys.
func runHeadless(cfg *config.Config, opts game.Options, held []string) error {
	if opts.MaxFrames == 0 {
		return errors.New("headless runs need -max-frames")
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	slog.Info("starting headless run", "max_frames", opts.MaxFrames, "hold", held)
	if err := g.Run(&game.Script{Held: held}); err != nil {
		return err
	}

	pos, _, player := g.Ship()
	slog.Info("headless run finished",
		"frame", g.Frame(),
		"x", pos.X,
		"y", pos.Y,
		"rot", pos.Rot,
		"speed_x", player.CurrentSpeed.X,
		"speed_y", player.CurrentSpeed.Y,
	)
	return nil
}

// runWindow opens the window and runs the game until quit.
func runWindow(cfg *config.Config, opts game.Options) error {
	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	// Quit goes through the configured key, not raylib's exit key.
	rl.SetExitKey(rl.KeyNull)

	c, err := client.New(g, cfg)
	if err != nil {
		return fmt.Errorf("initializing client: %w", err)
	}
	defer c.Unload()

	slog.Info("starting game",
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"frame_duration", cfg.Derived.FrameDuration,
	)

	return g.Run(c)
}
