package universe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"MarketDashboard/internal/model"
)

type catalogueFile struct {
	Groups []model.Group `yaml:"groups"`
}

// LoadFile reads a YAML catalogue that replaces the built-in groups.
func LoadFile(path string) ([]model.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	var cf catalogueFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	for i := range cf.Groups {
		if cf.Groups[i].Kind == "" {
			cf.Groups[i].Kind = model.KindTechnical
		}
		if err := validateGroup(cf.Groups[i]); err != nil {
			return nil, err
		}
	}
	return cf.Groups, nil
}

func validateGroup(g model.Group) error {
	if g.Key == "" {
		return fmt.Errorf("catalogue: group %q has no key", g.Title)
	}
	if g.Kind != model.KindTechnical && g.Kind != model.KindGeneric {
		return fmt.Errorf("catalogue: group %s: unknown kind %q", g.Key, g.Kind)
	}
	names := make(map[string]bool, len(g.Instruments))
	for _, inst := range g.Instruments {
		if strings.TrimSpace(inst.Symbol) == "" {
			return fmt.Errorf("catalogue: group %s: %q has no symbol", g.Key, inst.Name)
		}
		if names[inst.Name] {
			return fmt.Errorf("catalogue: group %s: duplicate name %q", g.Key, inst.Name)
		}
		names[inst.Name] = true
	}
	return nil
}
