package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/morningdesk/morningdesk/pkg/briefing"
	"github.com/morningdesk/morningdesk/pkg/classifier"
	"github.com/morningdesk/morningdesk/pkg/cluster"
	"github.com/morningdesk/morningdesk/pkg/collector"
	"github.com/morningdesk/morningdesk/pkg/config"
	"github.com/morningdesk/morningdesk/pkg/content"
	"github.com/morningdesk/morningdesk/pkg/events"
	"github.com/morningdesk/morningdesk/pkg/llm"
	"github.com/morningdesk/morningdesk/pkg/metrics"
	"github.com/morningdesk/morningdesk/pkg/pipeline"
	"github.com/morningdesk/morningdesk/pkg/repository"
	"github.com/morningdesk/morningdesk/pkg/scheduler"
	"github.com/morningdesk/morningdesk/pkg/service"
	"github.com/morningdesk/morningdesk/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DBPath string `long:"db" env:"DB_PATH" description:"sqlite database file, overrides config dsn"`
	Once   bool   `long:"once" description:"run one full batch and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	SetupLog(opts.Debug, !opts.NoColor)
	lgr.Printf("[INFO] starting morningdesk version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DBPath != "" {
		cfg.Database.DSN = fmt.Sprintf("file:%s?cache=shared&mode=rwc&_txlock=immediate", opts.DBPath)
	}
	SetupLog(opts.Debug, !opts.NoColor, secrets(cfg)...)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	store := service.NewStore(repos)
	if err := store.SyncSectors(ctx, cfg.SeedSectors()); err != nil {
		return fmt.Errorf("failed to sync sectors: %w", err)
	}
	lgr.Printf("[INFO] synced %d configured sectors", len(cfg.Sectors))

	bus := events.NewBus()
	rec := metrics.NewRecorder(revision)
	bus.Subscribe(rec.ObserveEvent)

	pipe := makePipeline(cfg, store, bus, rec)

	if opts.Once {
		res, err := pipe.FullBatch(ctx)
		lgr.Printf("[INFO] full batch done, %+v", res)
		if err != nil {
			return fmt.Errorf("full batch: %w", err)
		}
		return nil
	}

	if cfg.Schedule.Disabled {
		lgr.Print("[INFO] scheduler disabled, manual triggers only")
	} else {
		sched, err := scheduler.NewScheduler(pipe, scheduler.Params{
			Location:          cfg.Location(),
			UrgentInterval:    cfg.Schedule.UrgentInterval,
			PreMarketInterval: cfg.Schedule.PreMarketInterval,
			BusinessInterval:  cfg.Schedule.BusinessInterval,
			OvernightInterval: cfg.Schedule.OvernightInterval,
			Retention:         time.Duration(cfg.Schedule.RetentionDays) * 24 * time.Hour,
		})
		if err != nil {
			return fmt.Errorf("failed to make scheduler: %w", err)
		}
		sched.Start(ctx)
		defer sched.Stop()
	}

	srv := server.New(cfg, store, pipe, bus, server.Params{
		Version:  revision,
		Debug:    opts.Debug,
		BaseURL:  cfg.Server.BaseURL,
		Location: cfg.Location(),
		Metrics:  rec,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makePipeline wires collectors, classifiers, clustering and briefings. Escalation and briefings
// are left out when the judge has no credentials.
func makePipeline(cfg *config.Config, store *service.Store, bus *events.Bus, rec *metrics.Recorder) *pipeline.Pipeline {
	feeds := collector.NewFeedCollector(cfg.Collector.Timeout, cfg.Collector.UserAgent)
	search := collector.NewSearchCollector(collector.SearchParams{
		Endpoint:     cfg.Search.Endpoint,
		ClientID:     cfg.Search.ClientID,
		ClientSecret: cfg.Search.ClientSecret,
		SourceName:   cfg.Search.SourceName,
		Display:      cfg.Search.Display,
		MaxPages:     cfg.Search.MaxPages,
		Delay:        cfg.Search.Delay,
		Timeout:      cfg.Search.Timeout,
	})
	if !search.Enabled() {
		lgr.Print("[INFO] search credentials not set, search sources disabled")
	}

	deps := pipeline.Deps{
		Store:     store,
		Collector: collector.NewManager(feeds, search, cfg.Collector.MaxWorkers),
		Publisher: bus,
		Clusterer: cluster.NewEngine(store, cluster.Options{
			Lookback:      cfg.Clustering.Lookback,
			Threshold:     cfg.Clustering.Threshold,
			MaxCandidates: cfg.Clustering.MaxCandidates,
		}),
		Metrics: rec,
	}

	if cfg.LLM.Enabled() {
		judge := llm.NewJudge(cfg.LLM)
		var extractor classifier.Extractor
		if cfg.LLM.Classification.ExtractMissingSummary {
			extractor = content.NewHTTPExtractor(content.Options{
				Timeout:       cfg.Extraction.Timeout,
				UserAgent:     cfg.Extraction.UserAgent,
				MinTextLength: cfg.Extraction.MinTextLength,
			})
		}
		deps.Reclassifier = classifier.NewEscalator(store, store, judge, extractor, classifier.EscalatorParams{
			LowConfidence:    cfg.LLM.Classification.LowConfidence,
			AcceptConfidence: cfg.LLM.Classification.AcceptConfidence,
			BatchSize:        cfg.LLM.Classification.BatchSize,
			MaxBatches:       cfg.LLM.Classification.MaxBatches,
		})
		deps.Briefer = briefing.NewGenerator(store, judge, bus, briefing.Params{
			MaxArticles: cfg.LLM.Briefing.MaxArticles,
			Lookback:    cfg.LLM.Briefing.Lookback,
		})
		lgr.Printf("[INFO] judge enabled, model %s", cfg.LLM.Model)
	} else {
		lgr.Print("[INFO] judge not configured, escalation and briefings disabled")
	}

	return pipeline.New(deps, pipeline.Params{SearchEnabled: search.Enabled()})
}

// secrets returns configured credentials to be masked in logs
func secrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.LLM.APIKey, cfg.Search.ClientID, cfg.Search.ClientSecret} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

// SetupLog configures the global and std loggers
func SetupLog(dbg, colored bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if colored {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
