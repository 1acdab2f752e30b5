package render

import (
	"maps"
	"reflect"

	"pkt.systems/marklog/formatting"
	"pkt.systems/marklog/level"
)

// Profile is the rendering configuration of one level. Profiles are mutated
// during setup only.
type Profile struct {
	Level          level.Level
	OutputTemplate string
	Formatting     *formatting.Table
	// PreserveMarkupInFormatStrings writes the literal parts of message
	// templates as markup instead of escaping them.
	PreserveMarkupInFormatStrings bool

	options map[reflect.Type]any
}

// NewProfile returns a profile for lvl with an empty formatting table.
func NewProfile(lvl level.Level) *Profile {
	return &Profile{
		Level:      lvl,
		Formatting: formatting.NewTable(),
		options:    map[reflect.Type]any{},
	}
}

// Clone returns a deep copy of the formatting table and option map. Option
// values are copied shallowly.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Formatting = p.Formatting.Clone()
	cp.options = maps.Clone(p.options)
	if cp.options == nil {
		cp.options = map[reflect.Type]any{}
	}
	return &cp
}

// ConfigureOptions edits the renderer options of type T stored on p,
// starting from the zero value the first time.
func ConfigureOptions[T any](p *Profile, fn func(*T)) {
	if p.options == nil {
		p.options = map[reflect.Type]any{}
	}
	key := reflect.TypeFor[T]()
	var opts T
	if cur, ok := p.options[key].(T); ok {
		opts = cur
	}
	fn(&opts)
	p.options[key] = opts
}

// OptionsFor returns the options of type T stored on p, or the zero value.
func OptionsFor[T any](p *Profile) T {
	var zero T
	if p == nil || p.options == nil {
		return zero
	}
	if opts, ok := p.options[reflect.TypeFor[T]()].(T); ok {
		return opts
	}
	return zero
}

func (p *Profile) table() *formatting.Table {
	if p == nil {
		return nil
	}
	return p.Formatting
}
