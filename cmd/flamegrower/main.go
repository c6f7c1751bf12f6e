package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/flamegrower/flamegrower/internal/config"
	"github.com/flamegrower/flamegrower/internal/core/event"
	coresys "github.com/flamegrower/flamegrower/internal/core/system"
	"github.com/flamegrower/flamegrower/internal/data"
	"github.com/flamegrower/flamegrower/internal/fire"
	"github.com/flamegrower/flamegrower/internal/persist"
	"github.com/flamegrower/flamegrower/internal/scripting"
	"github.com/flamegrower/flamegrower/internal/system"
	"github.com/flamegrower/flamegrower/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Simulation ────────────────────────────────────────────────────

func run() error {
	cfg, err := config.Load(config.Path("config/flamegrower.toml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	fireMetrics := fire.NewMetrics(reg)
	if cfg.Metrics.Enabled {
		srv := &http.Server{
			Addr:              cfg.Metrics.BindAddress,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer srv.Close()
		printOK(fmt.Sprintf("metrics on http://%s/metrics", cfg.Metrics.BindAddress))
	}

	// Scene
	printSection("scene")
	scene, err := data.LoadScene(cfg.Simulation.Scene)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	bus := event.NewBus()
	ws := world.NewState(bus, log.Named("world"))
	presets := world.Presets{
		Default:   cfg.Fire.Default.Params(),
		Weed:      cfg.Fire.Weed.Params(),
		Rope:      cfg.Fire.Rope.Params(),
		Flamevine: cfg.Fire.Flamevine.Params(),
	}
	spawned, err := ws.Instantiate(scene, presets)
	if err != nil {
		return fmt.Errorf("instantiate scene: %w", err)
	}
	printStat("entities", spawned)
	printStat("flammable", ws.Flammables.Len())
	printStat("ropes", ws.Ropes().Len())

	step := cfg.Simulation.Step()
	fireSys := fire.NewSystem(fire.Deps{
		Store:   ws.Flammables,
		Query:   ws.Physics(),
		Links:   ws,
		Chains:  ws,
		Deleter: ws,
		Bus:     bus,
		Metrics: fireMetrics,
	}, step, log.Named("fire"))
	ws.SetClock(fireSys.Ticks)

	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(fireSys)
	runner.Register(system.NewCleanupSystem(ws))

	// Scripts
	if cfg.Scripting.Dir != "" {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, scripting.SceneHost{World: ws, Fire: fireSys}, log.Named("lua"))
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		runner.Register(system.NewScriptSystem(engine, bus, step))
		printOK(fmt.Sprintf("scripts loaded from %s", cfg.Scripting.Dir))
	}

	// Burn journal
	var burnLog *system.BurnLogSystem
	if cfg.Database.Enabled {
		printSection("database")
		dbCtx, dbCancel := context.WithTimeout(ctx, 30*time.Second)
		defer dbCancel()

		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(dbCtx, db.Pool, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		repo := persist.NewBurnLogRepo(db)
		if err := repo.StartRun(dbCtx, cfg.Simulation.Scene, cfg.Simulation.Seed, cfg.Simulation.TickHz); err != nil {
			return fmt.Errorf("burn log: %w", err)
		}
		burnLog = system.NewBurnLogSystem(repo, bus, log.Named("burnlog"), cfg.Database.FlushEveryTicks)
		runner.Register(burnLog)
		printOK(fmt.Sprintf("burn log run %s", repo.RunID()))
	}

	var ignitions, burnouts int
	event.Subscribe(bus, func(event.Ignited) { ignitions++ })
	event.Subscribe(bus, func(event.BurnedOut) { burnouts++ })

	// Loop
	interval := cfg.Simulation.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	printSection("running")
	log.Info("simulation started",
		zap.Int("tick_hz", cfg.Simulation.TickHz),
		zap.Uint64("max_ticks", cfg.Simulation.MaxTicks),
	)

	start := time.Now()
	for {
		select {
		case <-ticker.C:
			runner.Tick(interval)
			if limit := cfg.Simulation.MaxTicks; limit > 0 && runner.Ticks() >= limit {
				log.Info("tick limit reached", zap.Uint64("ticks", runner.Ticks()))
				return finish(log, runner, burnLog, ws, ignitions, burnouts, start)
			}
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return finish(log, runner, burnLog, ws, ignitions, burnouts, start)
		}
	}
}

func finish(log *zap.Logger, runner *coresys.Runner, burnLog *system.BurnLogSystem, ws *world.State, ignitions, burnouts int, start time.Time) error {
	if burnLog != nil {
		burnLog.Flush()
	}
	log.Info("simulation stopped",
		zap.Uint64("ticks", runner.Ticks()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("ignitions", ignitions),
		zap.Int("burned_out", burnouts),
		zap.Int("entities_left", ws.EntityCount()),
		zap.Int("still_burning", len(ws.Burning())),
	)
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
