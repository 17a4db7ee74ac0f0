package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"MarketDashboard/internal/model"
)

// YahooOptions configures the Yahoo Finance provider.
type YahooOptions struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	UserAgent      string
	Proxy          string
}

// YahooProvider implements Provider using the Yahoo Finance chart API.
// Symbols in a batch are requested one after another, each through the
// shared rate limiter.
type YahooProvider struct {
	client  *resty.Client
	limiter *rate.Limiter
	log     *logrus.Logger
}

// NewYahooProvider creates a new Yahoo Finance provider.
func NewYahooProvider(opts YahooOptions, log *logrus.Logger) *YahooProvider {
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json")
	if opts.Proxy != "" {
		client.SetProxy(opts.Proxy)
	}

	rps := opts.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	return &YahooProvider{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		log:     log,
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from the v8 chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

var (
	errNoData     = errors.New("yahoo: no data returned")
	errNoAdjClose = fmt.Errorf("%w: adjusted close missing", errNoData)
)

// FetchBatch requests each symbol in turn. Symbols that fail are left out;
// the batch errors only when nothing came back.
func (p *YahooProvider) FetchBatch(ctx context.Context, symbols []string, period model.Period, adjusted bool) (map[string]*model.PriceSeries, error) {
	out := make(map[string]*model.PriceSeries, len(symbols))
	var lastErr error
	for _, sym := range symbols {
		series, err := p.fetchChart(ctx, sym, period, adjusted)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			entry := p.log.WithFields(logrus.Fields{"symbol": sym, "period": period})
			if errors.Is(err, errNoAdjClose) {
				entry.Warnf("yahoo fetch failed: %v", err)
			} else {
				entry.Debugf("yahoo fetch failed: %v", err)
			}
			lastErr = err
			continue
		}
		out[sym] = series
	}
	if len(out) == 0 {
		if lastErr == nil {
			lastErr = errNoData
		}
		return nil, fmt.Errorf("yahoo batch of %d symbols: %w", len(symbols), lastErr)
	}
	return out, nil
}

func (p *YahooProvider) fetchChart(ctx context.Context, symbol string, period model.Period, adjusted bool) (*model.PriceSeries, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var chart yahooChart
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"range":                string(period),
			"interval":             "1d",
			"includeAdjustedClose": "true",
		}).
		SetResult(&chart).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode())
	}
	return parseChart(symbol, &chart, adjusted)
}

// parseChart flattens a chart response into one bar per timestamp. Repeated
// quote or adjclose blocks are ignored in favour of the first, repeated
// timestamps keep their first bar, and bars with a missing price are dropped.
func parseChart(symbol string, chart *yahooChart, adjusted bool) (*model.PriceSeries, error) {
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, errNoData
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, errNoData
	}
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}
	if adjusted && len(adj) == 0 {
		return nil, errNoAdjClose
	}

	loc := time.UTC
	if tz := result.Meta.ExchangeTimezoneName; tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, okO := at(quote.Open, i)
		h, okH := at(quote.High, i)
		l, okL := at(quote.Low, i)
		c, okC := at(quote.Close, i)
		if !okO || !okH || !okL || !okC || c <= 0 {
			continue // holidays and half-filled rows
		}
		v, _ := at(quote.Volume, i)

		if adjusted {
			a, ok := at(adj, i)
			if !ok || a <= 0 {
				continue
			}
			f := a / c
			o, h, l, c = o*f, h*f, l*f, a
		}

		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0).In(loc),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}
	if len(bars) == 0 {
		return nil, errNoData
	}

	return &model.PriceSeries{
		Symbol:    symbol,
		Adjusted:  adjusted,
		Bars:      dedupeBars(bars),
		FetchedAt: time.Now(),
	}, nil
}

func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

// dedupeBars sorts ascending and keeps the first bar of each timestamp.
func dedupeBars(bars []model.OHLCV) []model.OHLCV {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for i, b := range bars {
		if i > 0 && b.Time.Equal(out[len(out)-1].Time) {
			continue
		}
		out = append(out, b)
	}
	return out
}
