package level

import (
	"sort"
	"strings"

	"pkt.systems/marklog/errors"
)

type override struct {
	prefix string
	folded string
	level  Level
}

// Overrides maps category-name prefixes to minimum levels. Matching is case
// insensitive and the longest matching prefix wins. Overrides are written
// during setup only; Resolve does not lock.
type Overrides struct {
	entries []override
}

// Set registers lvl for categories starting with prefix. Empty prefixes and
// prefixes that are already registered (ignoring case) are rejected.
func (o *Overrides) Set(prefix string, lvl Level) error {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return errors.New(errors.ErrInvalidOverride, "level override prefix is empty")
	}
	folded := strings.ToLower(trimmed)
	for _, entry := range o.entries {
		if entry.folded == folded {
			return errors.Newf(errors.ErrDuplicateOverride, "level override for %q already registered as %q", trimmed, entry.prefix)
		}
	}
	o.entries = append(o.entries, override{prefix: trimmed, folded: folded, level: lvl})
	// Longest first so Resolve can stop at the first hit.
	sort.SliceStable(o.entries, func(i, j int) bool {
		return len(o.entries[i].folded) > len(o.entries[j].folded)
	})
	return nil
}

// Len returns the number of registered overrides.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// Map returns a copy of the registered overrides keyed by prefix.
func (o *Overrides) Map() map[string]Level {
	out := make(map[string]Level, o.Len())
	if o == nil {
		return out
	}
	for _, entry := range o.entries {
		out[entry.prefix] = entry.level
	}
	return out
}

// Clone returns an independent copy of o.
func (o *Overrides) Clone() *Overrides {
	if o == nil {
		return &Overrides{}
	}
	clone := &Overrides{entries: make([]override, len(o.entries))}
	copy(clone.entries, o.entries)
	return clone
}

// Resolve returns the level of the longest prefix matching category, or base
// when no prefix matches.
func (o *Overrides) Resolve(category string, base Level) Level {
	if o == nil || len(o.entries) == 0 {
		return base
	}
	folded := strings.ToLower(category)
	for _, entry := range o.entries {
		if strings.HasPrefix(folded, entry.folded) {
			return entry.level
		}
	}
	return base
}
