package render

import (
	"regexp"
	"strings"

	"pkt.systems/marklog/template"
)

// Factory creates the renderer for one matched placeholder.
type Factory func(seg template.Segment) (Renderer, error)

// Descriptor advertises a renderer kind: which placeholder keys it handles
// and whether it can honour a width or a format.
type Descriptor struct {
	Name              string
	Pattern           *regexp.Regexp
	SupportsAlignment bool
	SupportsFormat    bool
	Factory           Factory
}

// Matches reports whether d can render seg.
func (d Descriptor) Matches(seg template.Segment) bool {
	if !seg.Placeholder || d.Pattern == nil || d.Factory == nil {
		return false
	}
	if seg.HasWidth && !d.SupportsAlignment {
		return false
	}
	if seg.Format != "" && !d.SupportsFormat {
		return false
	}
	return d.Pattern.MatchString(seg.Key)
}

// KeyPattern returns a case-insensitive pattern matching exactly one of the
// given keys.
func KeyPattern(aliases ...string) *regexp.Regexp {
	quoted := make([]string, len(aliases))
	for i, a := range aliases {
		quoted[i] = regexp.QuoteMeta(a)
	}
	return regexp.MustCompile(`(?i)^(?:` + strings.Join(quoted, "|") + `)$`)
}

// Registry is an ordered set of descriptors; earlier ones win.
type Registry struct {
	descriptors []Descriptor
}

// NewRegistry returns a registry that tries descriptors in the given order.
func NewRegistry(descriptors ...Descriptor) *Registry {
	return &Registry{descriptors: append([]Descriptor(nil), descriptors...)}
}

// Match returns the first descriptor able to render seg.
func (r *Registry) Match(seg template.Segment) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	for _, d := range r.descriptors {
		if d.Matches(seg) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Descriptors returns a copy of the registered descriptors in match order.
func (r *Registry) Descriptors() []Descriptor {
	if r == nil {
		return nil
	}
	return append([]Descriptor(nil), r.descriptors...)
}
