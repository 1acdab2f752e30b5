package render

import (
	"sync"

	"pkt.systems/marklog/template"
)

// Step pairs a template segment with the renderer built for it.
type Step struct {
	Segment  template.Segment
	Renderer Renderer
	// Descriptor names the matched renderer kind; empty for literals and
	// passthrough placeholders.
	Descriptor string
	// Err holds the factory error when the placeholder fell back to
	// passthrough.
	Err error
}

// Pipeline is the compiled form of one template. It is immutable and shared
// by every event rendered with that template.
type Pipeline struct {
	Template    string
	Steps       []Step
	NeedsCaller bool
}

// Render runs every step in order, stopping at the first error.
func (p *Pipeline) Render(b *Buffer, e *Event) error {
	for i := range p.Steps {
		if err := p.Steps[i].Renderer.Render(b, e); err != nil {
			return err
		}
	}
	return nil
}

// Builder compiles templates against a registry and caches the result for
// the life of the builder.
type Builder struct {
	registry *Registry
	cache    sync.Map
}

// NewBuilder returns a builder over registry.
func NewBuilder(registry *Registry) *Builder {
	return &Builder{registry: registry}
}

// Build returns the pipeline for tmpl, compiling it on first use.
// Concurrent first calls agree on a single winner.
func (b *Builder) Build(tmpl string) *Pipeline {
	if cached, ok := b.cache.Load(tmpl); ok {
		return cached.(*Pipeline)
	}
	p := b.compile(tmpl)
	actual, _ := b.cache.LoadOrStore(tmpl, p)
	return actual.(*Pipeline)
}

func (b *Builder) compile(tmpl string) *Pipeline {
	segments := template.ParseCached(tmpl)
	p := &Pipeline{Template: tmpl, Steps: make([]Step, 0, len(segments))}
	for _, seg := range segments {
		step := Step{Segment: seg}
		switch {
		case !seg.Placeholder:
			step.Renderer = Static(seg.Text())
		default:
			d, ok := b.registry.Match(seg)
			if !ok {
				step.Renderer = Passthrough(seg)
				break
			}
			r, err := d.Factory(seg)
			if err != nil || r == nil {
				step.Renderer = Passthrough(seg)
				step.Err = err
				break
			}
			step.Renderer = r
			step.Descriptor = d.Name
			if cr, ok := r.(CallerRenderer); ok && cr.NeedsCaller() {
				p.NeedsCaller = true
			}
		}
		p.Steps = append(p.Steps, step)
	}
	return p
}
