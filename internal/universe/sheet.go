package universe

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"MarketDashboard/internal/cache"
	"MarketDashboard/internal/model"
)

// SheetLoader reads a Name,Ticker list from a published spreadsheet CSV
// export. Results are cached for the sheet TTL.
type SheetLoader struct {
	client *resty.Client
	cache  *cache.TTL[[]model.Instrument]
}

// NewSheetLoader creates a loader with the given request timeout and TTL.
func NewSheetLoader(timeout, ttl time.Duration) *SheetLoader {
	return &SheetLoader{
		client: resty.New().SetTimeout(timeout).SetRetryCount(0),
		cache:  cache.New[[]model.Instrument]("sheet", ttl),
	}
}

// Load fetches and parses the sheet at url.
func (l *SheetLoader) Load(ctx context.Context, url string) ([]model.Instrument, error) {
	return l.cache.GetOrCompute(cache.Key("sheet", url), func() ([]model.Instrument, error) {
		resp, err := l.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch sheet: %w", err)
		}
		body := resp.RawBody()
		defer body.Close()
		if resp.StatusCode() >= 300 {
			return nil, fmt.Errorf("fetch sheet: status %d", resp.StatusCode())
		}
		return parseSheet(body)
	})
}

// Clear drops cached sheets.
func (l *SheetLoader) Clear() { l.cache.Clear() }

// parseSheet reads rows keyed by the Name and Ticker header columns. Rows
// without a ticker are ignored; a repeated name keeps its first ticker.
func parseSheet(r io.Reader) ([]model.Instrument, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("parse sheet header: %w", err)
	}
	nameCol, tickerCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "name":
			nameCol = i
		case "ticker":
			tickerCol = i
		}
	}
	if nameCol < 0 || tickerCol < 0 {
		return nil, fmt.Errorf("parse sheet: need Name and Ticker columns, got %v", header)
	}

	var out []model.Instrument
	seen := make(map[string]bool)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse sheet row: %w", err)
		}
		if nameCol >= len(rec) || tickerCol >= len(rec) {
			continue
		}
		name, ticker := strings.TrimSpace(rec[nameCol]), strings.TrimSpace(rec[tickerCol])
		if ticker == "" || seen[name] {
			continue
		}
		if name == "" {
			name = ticker
		}
		seen[name] = true
		out = append(out, model.Instrument{Name: name, Symbol: ticker})
	}
	return out, nil
}
