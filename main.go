package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/observer"
	"github.com/pthm-cable/forage/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	traceDir := flag.String("trace-dir", "", "Directory for the compressed per-tick trace")
	observe := flag.String("observe", "", "Serve the websocket observer on this address (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Simulation ticks per update call (0 = use config)")
	interval := flag.Duration("interval", -1, "Headless pause between updates (negative = use config)")
	parallel := flag.Bool("parallel", false, "Decide agent targets on a worker pool")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	// Set up slog (JSON to stdout for structured logging)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	addr := cfg.Observer.Addr
	if *observe != "" {
		addr = *observe
	}
	var hub *observer.Hub
	if addr != "" {
		hub = observer.NewHub(cfg.Observer.SendBuffer)
	}

	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		TraceDir:       *traceDir,
		StepsPerUpdate: *stepsPerUpdate,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "parallel" {
			opts.Parallel = parallel
		}
	})
	if hub != nil {
		opts.Publisher = hub
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	if hub != nil {
		eg.Go(func() error { return observer.Serve(ctx, addr, hub) })
	}

	if *headless {
		pace := cfg.Simulation.TickInterval.Std()
		if *interval >= 0 {
			pace = *interval
		}
		eg.Go(func() error {
			defer stop()
			return runHeadless(ctx, opts, pace, *maxTicks)
		})
	} else {
		// raylib must stay on the main goroutine.
		err := runGraphical(ctx, cfg, opts, *maxTicks)
		stop()
		if err != nil {
			slog.Error("simulation failed", "error", err)
			os.Exit(1)
		}
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the simulation without graphics, sleeping pace between
// updates, until ctx ends or maxTicks is reached.
func runHeadless(ctx context.Context, opts game.Options, pace time.Duration, maxTicks int64) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"interval", pace,
		"max_ticks", maxTicks,
		"steps_per_update", g.Speed(),
	)

	var ticker *time.Ticker
	if pace > 0 {
		ticker = time.NewTicker(pace)
		defer ticker.Stop()
	}
	for {
		if err := g.UpdateHeadless(); err != nil {
			return err
		}
		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}

		if ticker == nil {
			select {
			case <-ctx.Done():
				slog.Info("interrupted", "tick", g.Tick())
				return nil
			default:
			}
			continue
		}
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "tick", g.Tick())
			return nil
		case <-ticker.C:
		}
	}
}

// runGraphical opens a raylib window and runs one update per frame.
func runGraphical(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int64) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Forage")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	viewer := ui.NewViewer(cfg.Derived.WorldPixelsW, cfg.Derived.WorldPixelsH, cfg.Traits, game.MaxSpeed)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		viewer.HandleInput(g, g.Snapshot())
		g.Update()

		snap := g.Snapshot()
		rl.BeginDrawing()
		viewer.Draw(g, snap, g.Seed(), g.Perf().Stats())
		rl.EndDrawing()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	return nil
}
