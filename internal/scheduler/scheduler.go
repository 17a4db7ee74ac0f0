package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"MarketDashboard/internal/config"
	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/metrics"
	"MarketDashboard/internal/model"
	"MarketDashboard/internal/report"
)

// Options controls what the scheduler does after a refresh.
type Options struct {
	Textfile  string // node-exporter textfile written after each refresh
	SortBy    string
	Ascending bool
}

// Scheduler runs periodic refreshes and answers console commands.
type Scheduler struct {
	cron    *cron.Cron
	service *dashboard.Service
	session *dashboard.Session
	log     *logrus.Logger
	metrics *metrics.Metrics
	ctx     context.Context

	mu   sync.Mutex // guards out and opts
	out  io.Writer
	opts Options
}

// NewScheduler creates a Scheduler that renders refreshes to out.
func NewScheduler(ctx context.Context, svc *dashboard.Service, out io.Writer, log *logrus.Logger, m *metrics.Metrics, opts Options) *Scheduler {
	cl := cron.PrintfLogger(log)
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(config.CronParser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		service: svc,
		session: dashboard.NewSession(),
		log:     log,
		metrics: m,
		ctx:     ctx,
		out:     out,
		opts:    opts,
	}
}

// Register adds the periodic refresh. An empty spec registers nothing.
func (s *Scheduler) Register(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunNow refreshes immediately and renders the result.
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.log.Info("running refresh")
	snap, err := s.service.Refresh(s.ctx, func(done, total int) {
		s.log.WithFields(logrus.Fields{"done": done, "total": total}).Debug("fetch progress")
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Errorf("refresh: %v", err)
		if dashboard.IsFatal(err) {
			fmt.Fprintln(s.out, "Could not fetch market data for any instrument. Try again later.")
		}
	} else {
		fmt.Fprint(s.out, report.RenderSnapshot(snap, s.opts.SortBy, s.opts.Ascending))
	}

	if s.opts.Textfile != "" {
		if err := s.metrics.WriteTextfile(s.opts.Textfile); err != nil {
			s.log.Errorf("write metrics textfile: %v", err)
		}
	}
}

const helpText = `commands:
  refresh                  fetch and redraw every table
  period <1 Yr|6 Months|3 Months|1 Month>
  weekly on|off            switch between weekly and daily bars
  sort <column> [asc|desc] order tables by a column; "sort off" to reset
  lookup <symbol>          analyse one symbol
  chart <symbol>           print the chart series as JSON
  expand <group> <symbol>  toggle the chart under a row
  clear                    flush every cache
`

// HandleCommand processes a console command and returns a reply. Refreshes
// write to the scheduler's output instead and return an empty reply.
func (s *Scheduler) HandleCommand(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	args := fields[1:]

	switch strings.ToLower(fields[0]) {
	case "refresh", "/refresh":
		s.refreshTask()
		return ""

	case "period":
		p, err := model.LookupSwingPeriod(strings.Join(args, " "))
		if err != nil {
			return err.Error()
		}
		opts := s.service.Options()
		opts.Swing = p
		s.service.SetOptions(opts)
		return "swing period set to " + p.Label

	case "weekly":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return "usage: weekly on|off"
		}
		opts := s.service.Options()
		opts.Weekly = args[0] == "on"
		s.service.SetOptions(opts)
		if opts.Weekly {
			return "using weekly bars"
		}
		return "using daily bars"

	case "sort":
		return s.setSort(args)

	case "lookup":
		if len(args) != 1 {
			return "usage: lookup <symbol>"
		}
		rec, err := s.service.Lookup(s.ctx, strings.ToUpper(args[0]))
		if err != nil {
			return fmt.Sprintf("no data for %s: %v", args[0], err)
		}
		return report.RenderRecord(rec)

	case "chart":
		if len(args) != 1 {
			return "usage: chart <symbol>"
		}
		return s.chart(strings.ToUpper(args[0]))

	case "expand":
		if len(args) != 2 {
			return "usage: expand <group> <symbol>"
		}
		symbol := strings.ToUpper(args[1])
		if !s.session.Toggle(dashboard.RowID(args[0], symbol)) {
			return "collapsed " + symbol
		}
		return s.chart(symbol)

	case "clear":
		s.service.ClearCaches()
		s.session.Reset()
		return "caches cleared"
	}
	return helpText
}

func (s *Scheduler) setSort(args []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(args) == 0 || (len(args) == 1 && args[0] == "off") {
		s.opts.SortBy = ""
		return "sorting off"
	}
	s.opts.Ascending = true
	switch strings.ToLower(args[len(args)-1]) {
	case "desc":
		s.opts.Ascending = false
		args = args[:len(args)-1]
	case "asc":
		args = args[:len(args)-1]
	}
	s.opts.SortBy = strings.Join(args, " ")
	return "sorting by " + s.opts.SortBy
}

func (s *Scheduler) chart(symbol string) string {
	a, err := s.service.Chart(s.ctx, symbol, s.service.Options().Weekly)
	if err != nil {
		return fmt.Sprintf("no chart for %s: %v", symbol, err)
	}
	var buf bytes.Buffer
	if err := report.WriteChart(&buf, a); err != nil {
		return err.Error()
	}
	return buf.String()
}
