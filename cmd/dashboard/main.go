package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/config"
	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/logger"
	"MarketDashboard/internal/metrics"
	"MarketDashboard/internal/model"
	"MarketDashboard/internal/report"
	"MarketDashboard/internal/scheduler"
	"MarketDashboard/internal/universe"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
	period     = flag.String("period", "", "Swing window: 1 Yr, 6 Months, 3 Months or 1 Month")
	weekly     = flag.Bool("weekly", false, "Analyse weekly (Friday-ending) bars")
	mock       = flag.Bool("mock", false, "Use synthetic data instead of the live provider")
	symbol     = flag.String("symbol", "", "Analyse a single symbol and exit")
	chart      = flag.String("chart", "", "Print the chart series for a symbol as JSON and exit")
	sortBy     = flag.String("sort", "", "Sort every table by this column")
	desc       = flag.Bool("desc", false, "Sort descending")
	watch      = flag.Bool("watch", false, "Keep running: scheduled refreshes and console commands on stdin")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *period != "" {
		cfg.Analysis.Period = *period
	}
	if *weekly {
		cfg.Analysis.Weekly = true
	}
	if *mock {
		cfg.Provider.Mock = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	m := metrics.New()

	var provider collector.Provider
	if cfg.Provider.Mock {
		provider = &collector.MockProvider{}
	} else {
		provider = collector.NewYahooProvider(collector.YahooOptions{
			BaseURL:        cfg.Provider.BaseURL,
			Timeout:        cfg.Provider.Timeout,
			RequestsPerSec: cfg.Provider.RequestsPerSec,
			UserAgent:      cfg.Provider.UserAgent,
			Proxy:          cfg.Provider.Proxy,
		}, log)
	}
	log.WithField("provider", provider.Name()).Info("data source ready")

	orch := collector.NewOrchestrator(provider, collector.OrchestratorOptions{
		BatchSize: cfg.Batch.Size,
		Delay:     cfg.Batch.Delay,
		Period:    model.Period2Y,
		CacheTTL:  cfg.Cache.UniverseTTL,
	}, log, m)
	fetcher := collector.NewFetcher(provider, cfg.Cache.AdjustedTTL, cfg.Cache.UnadjustedTTL, log, m)

	sheets := universe.NewSheetLoader(cfg.Provider.Timeout, cfg.Cache.SheetTTL)
	builder := &universe.Builder{
		File: cfg.Universe.File,
		Sheets: map[string]string{
			universe.KeyHeavyweights:   cfg.Universe.HeavyweightsURL,
			universe.KeyModelPortfolio: cfg.Universe.ModelPortfolioURL,
		},
		Loader: sheets,
		Log:    log,
	}

	svc := dashboard.NewService(builder, orch, fetcher, dashboard.Options{
		Swing:  cfg.SwingPeriod(),
		Weekly: cfg.Analysis.Weekly,
	}, log, m, sheets)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch {
	case *symbol != "":
		rec, err := svc.Lookup(ctx, *symbol)
		if err != nil {
			log.Fatalf("lookup %s: %v", *symbol, err)
		}
		fmt.Print(report.RenderRecord(rec))
		return
	case *chart != "":
		a, err := svc.Chart(ctx, *chart, cfg.Analysis.Weekly)
		if err != nil {
			log.Fatalf("chart: %v", err)
		}
		if err := report.WriteChart(os.Stdout, a); err != nil {
			log.Fatalf("chart: %v", err)
		}
		return
	}

	sched := scheduler.NewScheduler(ctx, svc, os.Stdout, log, m, scheduler.Options{
		Textfile:  cfg.Metrics.Textfile,
		SortBy:    *sortBy,
		Ascending: !*desc,
	})

	if !*watch {
		sched.RunNow()
		if svc.Last() == nil {
			os.Exit(1)
		}
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go sched.RunNow()
	go console(sched, log)

	log.Info("market dashboard is running, type help for commands, Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping")
	cancel()
}

func console(sched *scheduler.Scheduler, log *logrus.Logger) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if reply := sched.HandleCommand(sc.Text()); reply != "" {
			fmt.Println(reply)
		}
	}
	if err := sc.Err(); err != nil {
		log.Errorf("read console: %v", err)
	}
}
