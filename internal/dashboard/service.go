package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"MarketDashboard/internal/cache"
	"MarketDashboard/internal/calculator"
	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/metrics"
	"MarketDashboard/internal/model"
	"MarketDashboard/internal/strategy"
)

// UniverseSource builds the instrument catalogue for one refresh.
type UniverseSource interface {
	Build(ctx context.Context) (*model.Universe, error)
}

// Options selects how records are computed.
type Options struct {
	Swing  model.SwingPeriod
	Weekly bool
}

// GroupResult holds one group's rows and the instruments it had to skip.
type GroupResult struct {
	Group     model.Group
	Technical []*model.AnalysisRecord
	Generic   []*model.GenericRecord
	Skips     []model.Skip
}

// Snapshot is the outcome of one refresh.
type Snapshot struct {
	ID       string
	Started  time.Time
	Finished time.Time
	Options  Options
	Universe *model.Universe
	Table    *model.MasterTable
	Groups   []GroupResult
}

// Service runs refreshes, single-symbol lookups and chart requests.
type Service struct {
	universe     UniverseSource
	orchestrator *collector.Orchestrator
	fetcher      *collector.Fetcher
	clearers     []cache.Clearer
	log          *logrus.Logger
	metrics      *metrics.Metrics

	mu   sync.Mutex
	opts Options
	last *Snapshot
}

// NewService wires the refresh pipeline. extra caches are flushed by ClearCaches.
func NewService(u UniverseSource, o *collector.Orchestrator, f *collector.Fetcher, opts Options, log *logrus.Logger, m *metrics.Metrics, extra ...cache.Clearer) *Service {
	if opts.Swing.Label == "" {
		opts.Swing = model.SwingPeriods[0]
	}
	return &Service{
		universe:     u,
		orchestrator: o,
		fetcher:      f,
		clearers:     append([]cache.Clearer{o, f}, extra...),
		log:          log,
		metrics:      m,
		opts:         opts,
	}
}

// SetOptions changes the swing window or frequency for later refreshes.
func (s *Service) SetOptions(opts Options) {
	s.mu.Lock()
	s.opts = opts
	s.mu.Unlock()
}

// Options returns the current options.
func (s *Service) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Last returns the most recent successful snapshot, if any.
func (s *Service) Last() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// ClearCaches flushes every cache so the next refresh refetches everything.
func (s *Service) ClearCaches() {
	for _, c := range s.clearers {
		c.Clear()
	}
	s.log.Info("caches cleared")
}

// Refresh builds the universe, fetches it in batches and analyses every
// group. Only a failed universe fetch is fatal; anything else becomes a
// skip row on its group.
func (s *Service) Refresh(ctx context.Context, progress collector.ProgressFunc) (_ *Snapshot, err error) {
	opts := s.Options()
	snap := &Snapshot{ID: uuid.NewString(), Started: time.Now(), Options: opts}
	log := s.log.WithField("refresh_id", snap.ID)
	defer func(started time.Time) { s.metrics.ObserveRefresh(started, err) }(snap.Started)

	u, err := s.universe.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build universe: %w", err)
	}
	snap.Universe = u

	symbols := u.Symbols()
	log.WithFields(logrus.Fields{"symbols": len(symbols), "groups": len(u.Groups)}).Info("refresh started")

	table, err := s.orchestrator.FetchUniverse(ctx, symbols, progress)
	if err != nil {
		log.Errorf("master fetch: %v", err)
		return nil, err
	}
	snap.Table = table

	for _, g := range u.Groups {
		res := s.analyzeGroup(ctx, g, table, opts)
		s.metrics.ObserveGroup(g.Key, len(res.Technical)+len(res.Generic), len(res.Skips))
		for _, sk := range res.Skips {
			log.WithFields(logrus.Fields{"group": g.Key, "symbol": sk.Symbol}).Warnf("skipping %s: %v", sk.Name, sk.Reason)
		}
		snap.Groups = append(snap.Groups, res)
	}

	snap.Finished = time.Now()
	log.WithFields(logrus.Fields{
		"series":         len(table.Series),
		"failed_batches": table.FailedBatches,
		"duration_ms":    snap.Finished.Sub(snap.Started).Milliseconds(),
	}).Info("refresh finished")

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
	return snap, nil
}

func (s *Service) analyzeGroup(ctx context.Context, g model.Group, table *model.MasterTable, opts Options) GroupResult {
	res := GroupResult{Group: g}
	for _, inst := range g.Instruments {
		series, ok := table.Slice(inst.Symbol)
		if !ok {
			res.Skips = append(res.Skips, model.Skip{
				Name: inst.Name, Symbol: inst.Symbol, Group: g.Key,
				Reason: fmt.Errorf("not in master data: %w", model.ErrDataUnavailable),
			})
			continue
		}

		var err error
		switch g.Kind {
		case model.KindGeneric:
			var rec *model.GenericRecord
			rec, err = s.analyzeGeneric(ctx, inst, g.Key, series)
			if err == nil {
				res.Generic = append(res.Generic, rec)
			}
		default:
			var rec *model.AnalysisRecord
			rec, err = s.analyzeTechnical(ctx, inst, g.Key, series, opts)
			if err == nil {
				res.Technical = append(res.Technical, rec)
			}
		}
		if err != nil {
			res.Skips = append(res.Skips, model.Skip{Name: inst.Name, Symbol: inst.Symbol, Group: g.Key, Reason: err})
		}
	}
	return res
}

func (s *Service) analyzeTechnical(ctx context.Context, inst model.Instrument, group string, series *model.PriceSeries, opts Options) (*model.AnalysisRecord, error) {
	if opts.Weekly {
		series = calculator.ToWeekly(series)
	}
	a, err := calculator.Annotate(series)
	if err != nil {
		return nil, err
	}
	unadj, _ := s.fetcher.Fetch(ctx, inst.Symbol, false, model.Period1Y)
	return strategy.Classify(inst, group, a, opts.Swing, opts.Weekly, unadj)
}

func (s *Service) analyzeGeneric(ctx context.Context, inst model.Instrument, group string, series *model.PriceSeries) (*model.GenericRecord, error) {
	a, err := calculator.AnnotateGeneric(series)
	if err != nil {
		return nil, err
	}
	unadj, _ := s.fetcher.Fetch(ctx, inst.Symbol, false, model.Period1Y)
	return strategy.ClassifyGeneric(inst, group, a, unadj)
}

// Lookup analyses one symbol outside the master table, fetching it on its
// own through the series fetcher. The record also carries the adjusted
// 52-week high and low.
func (s *Service) Lookup(ctx context.Context, symbol string) (*model.AnalysisRecord, error) {
	series, ok := s.fetcher.Fetch(ctx, symbol, true, model.Period2Y)
	if !ok {
		return nil, fmt.Errorf("lookup %s: %w", symbol, model.ErrDataUnavailable)
	}
	inst := model.Instrument{Name: symbol, Symbol: symbol}
	if last := s.Last(); last != nil {
		if found, ok := last.Universe.Find(symbol); ok {
			inst = found
		}
	}
	rec, err := s.analyzeTechnical(ctx, inst, "lookup", series, s.Options())
	if err != nil {
		return nil, err
	}
	if last, ok := series.Last(); ok {
		year := series.Since(last.Time.AddDate(0, 0, -7*52)).Bars
		rec.High52wAdjusted = calculator.HighestHigh(year).Value
		rec.Low52wAdjusted = calculator.LowestLow(year).Value
	}
	return rec, nil
}

// Chart returns the indicator-annotated series for symbol, from the last
// master table when it has the symbol and from a direct fetch otherwise.
func (s *Service) Chart(ctx context.Context, symbol string, weekly bool) (*model.AnnotatedSeries, error) {
	var series *model.PriceSeries
	if last := s.Last(); last != nil {
		series, _ = last.Table.Slice(symbol)
	}
	if series == nil {
		var ok bool
		series, ok = s.fetcher.Fetch(ctx, symbol, true, model.Period2Y)
		if !ok {
			return nil, fmt.Errorf("chart %s: %w", symbol, model.ErrDataUnavailable)
		}
	}
	if weekly {
		series = calculator.ToWeekly(series)
	}
	a, err := calculator.Annotate(series)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	return a, nil
}

// IsFatal reports whether a refresh error means nothing could be shown.
func IsFatal(err error) bool {
	return errors.Is(err, model.ErrUniverseFetchFailed)
}
