package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tuannm99/memsim/internal"
	"github.com/tuannm99/memsim/internal/logx"
	"github.com/tuannm99/memsim/internal/mmu"
	"github.com/tuannm99/memsim/internal/sim"
	"github.com/tuannm99/memsim/internal/tracefile"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"usage: memsim [flags] <tracefile> [<frames> <rand|lru|clock> <quiet|debug>]\n\nflags:\n")
	flag.PrintDefaults()
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		policy     = flag.String("policy", "", "replacement policy: rand, lru or clock")
		frames     = flag.Int("frames", 0, "number of physical frames")
		pageSize   = flag.Int("page-size", 0, "page size in bytes (power of two)")
		seed       = flag.Uint64("seed", 0, "seed for the rand policy")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn, error")
	)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 && len(args) != 4 {
		usage()
		os.Exit(2)
	}

	cfg := internal.DefaultConfig()
	if *configPath != "" {
		loaded, err := internal.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "policy":
			cfg.Simulation.Policy = *policy
		case "frames":
			cfg.Simulation.Frames = *frames
		case "page-size":
			cfg.Simulation.PageSize = *pageSize
		case "seed":
			cfg.Simulation.Seed = *seed
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})

	tracePath := args[0]
	if len(args) == 4 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Invalid frame count %q: %v", args[1], err)
		}
		cfg.Simulation.Frames = n
		cfg.Simulation.Policy = args[2]
		cfg.Simulation.Trace = args[3]
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logx.Init(os.Stderr, cfg.Log.Level)

	if err := run(cfg, tracePath); err != nil {
		slog.Error("memsim: run failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *internal.MemSimConfig, tracePath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := tracefile.Open(tracePath, cfg.Simulation.PageSize)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	m, err := mmu.New(cfg.Policy(), cfg.Simulation.Frames,
		mmu.WithSeed(cfg.Simulation.Seed),
		mmu.WithTrace(cfg.Simulation.Trace == internal.TraceDebug),
		mmu.WithTraceOutput(os.Stdout),
	)
	if err != nil {
		return err
	}

	slog.Info("memsim: run start",
		"trace", tracePath,
		"compression", tracefile.CompressionFor(tracePath),
		"policy", cfg.Policy(),
		"frames", cfg.Simulation.Frames,
	)

	rep, err := sim.Run(ctx, cfg.Policy(), m, f)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		slog.Warn("memsim: interrupted, reporting partial run", "events", rep.Events)
	}
	return rep.WriteSummary(os.Stdout)
}
