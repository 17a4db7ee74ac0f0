package universe

import (
	"context"

	"github.com/sirupsen/logrus"

	"MarketDashboard/internal/model"
)

// Builder assembles the universe for a refresh cycle.
type Builder struct {
	File   string            // optional YAML catalogue
	Sheets map[string]string // group key -> CSV export URL
	Loader *SheetLoader
	Log    *logrus.Logger
}

// Build returns the catalogue groups with sheet-backed groups filled in.
// A sheet that cannot be read leaves its group empty.
func (b *Builder) Build(ctx context.Context) (*model.Universe, error) {
	groups := DefaultGroups()
	if b.File != "" {
		g, err := LoadFile(b.File)
		if err != nil {
			return nil, err
		}
		groups = g
	}

	for i := range groups {
		url, ok := b.Sheets[groups[i].Key]
		if !ok || url == "" || b.Loader == nil {
			continue
		}
		insts, err := b.Loader.Load(ctx, url)
		if err != nil {
			b.Log.WithField("group", groups[i].Key).Errorf("load sheet: %v", err)
			continue
		}
		groups[i].Instruments = insts
	}
	return &model.Universe{Groups: groups}, nil
}
