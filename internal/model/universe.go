package model

// GroupKind selects which analysis path a group goes through.
type GroupKind string

const (
	KindTechnical GroupKind = "technical"
	KindGeneric   GroupKind = "generic"
)

// Instrument is a display name bound to a provider symbol.
type Instrument struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// Group is a named list of instruments shown together.
type Group struct {
	Key         string       `yaml:"key"`
	Title       string       `yaml:"title"`
	Kind        GroupKind    `yaml:"kind"`
	Instruments []Instrument `yaml:"instruments"`
}

// Universe is the ordered set of groups for one refresh cycle.
type Universe struct {
	Groups []Group
}

// Group returns the group with the given key.
func (u *Universe) Group(key string) (Group, bool) {
	for _, g := range u.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}

// Symbols unions every group's symbols, first occurrence order, without duplicates.
func (u *Universe) Symbols() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range u.Groups {
		for _, inst := range g.Instruments {
			if inst.Symbol == "" {
				continue
			}
			if _, ok := seen[inst.Symbol]; ok {
				continue
			}
			seen[inst.Symbol] = struct{}{}
			out = append(out, inst.Symbol)
		}
	}
	return out
}

// Find looks an instrument up by symbol across all groups.
func (u *Universe) Find(symbol string) (Instrument, bool) {
	for _, g := range u.Groups {
		for _, inst := range g.Instruments {
			if inst.Symbol == symbol {
				return inst, true
			}
		}
	}
	return Instrument{}, false
}
