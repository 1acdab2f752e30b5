package render

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkt.systems/marklog/template"
)

type nameRenderer struct{}

func (nameRenderer) Render(b *Buffer, _ *Event) error {
	b.WriteText("ada")
	return nil
}

type addressRenderer struct{}

func (addressRenderer) Render(b *Buffer, _ *Event) error {
	b.WriteText("street")
	return nil
}

type idRenderer struct{ seg template.Segment }

func (r idRenderer) Render(b *Buffer, _ *Event) error {
	b.WriteText(r.seg.Key)
	return nil
}

func testRegistry() *Registry {
	return NewRegistry(
		Descriptor{Name: "name", Pattern: KeyPattern("name"), Factory: func(template.Segment) (Renderer, error) { return nameRenderer{}, nil }},
		Descriptor{Name: "address", Pattern: KeyPattern("address"), Factory: func(template.Segment) (Renderer, error) { return addressRenderer{}, nil }},
		Descriptor{Name: "id", Pattern: KeyPattern("id"), SupportsAlignment: true, Factory: func(seg template.Segment) (Renderer, error) { return idRenderer{seg: seg}, nil }},
	)
}

func run(t *testing.T, p *Pipeline, e *Event) string {
	t.Helper()
	b := AcquireBuffer(nil)
	defer ReleaseBuffer(b)
	require.NoError(t, p.Render(b, e))
	return b.String()
}

func TestBuildReturnsExpectedRenderers(t *testing.T) {
	p := NewBuilder(testRegistry()).Build("{name}{address}")
	require.Len(t, p.Steps, 2)
	assert.IsType(t, nameRenderer{}, p.Steps[0].Renderer)
	assert.IsType(t, addressRenderer{}, p.Steps[1].Renderer)
	assert.Equal(t, "name", p.Steps[0].Descriptor)
}

func TestBuildInsertsStaticRenderers(t *testing.T) {
	p := NewBuilder(testRegistry()).Build("my name is {name}!")
	require.Len(t, p.Steps, 3)
	assert.IsType(t, staticRenderer{}, p.Steps[0].Renderer)
	assert.IsType(t, nameRenderer{}, p.Steps[1].Renderer)
	assert.IsType(t, staticRenderer{}, p.Steps[2].Renderer)
	assert.Equal(t, "my name is ada!", run(t, p, &Event{}))
}

func TestBuildPassesSegmentToFactory(t *testing.T) {
	p := NewBuilder(testRegistry()).Build("{id,4}")
	require.Len(t, p.Steps, 1)
	r, ok := p.Steps[0].Renderer.(idRenderer)
	require.True(t, ok)
	assert.Equal(t, 4, r.seg.Width)
}

func TestUnmatchedPlaceholderPassesThrough(t *testing.T) {
	p := NewBuilder(testRegistry()).Build("{unknown}")
	require.Len(t, p.Steps, 1)
	assert.IsType(t, passthroughRenderer{}, p.Steps[0].Renderer)
	assert.Equal(t, "{unknown}", run(t, p, &Event{}))
}

func TestUnsupportedWidthOrFormatPassesThrough(t *testing.T) {
	b := NewBuilder(testRegistry())
	assert.Equal(t, "{name,5}", run(t, b.Build("{name,5}"), &Event{}))
	assert.Equal(t, "{id:x}", run(t, b.Build("{id:x}"), &Event{}))
}

func TestLiteralBracesAreUnescaped(t *testing.T) {
	p := NewBuilder(testRegistry()).Build("a{{b}}c {name}")
	assert.Equal(t, "a{b}c ada", run(t, p, &Event{}))
}

func TestRegistryOrderIsPriority(t *testing.T) {
	first := Descriptor{Name: "first", Pattern: KeyPattern("name"), Factory: func(template.Segment) (Renderer, error) { return Static("1"), nil }}
	reg := NewRegistry(append([]Descriptor{first}, testRegistry().Descriptors()...)...)
	p := NewBuilder(reg).Build("{NAME}")
	assert.Equal(t, "first", p.Steps[0].Descriptor)
	assert.Equal(t, "1", run(t, p, &Event{}))
}

func TestFactoryErrorFallsBackWithoutPoisoningCache(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry(Descriptor{Name: "bad", Pattern: KeyPattern("bad"), Factory: func(template.Segment) (Renderer, error) { return nil, boom }})
	b := NewBuilder(reg)
	p := b.Build("x{bad}")
	require.Len(t, p.Steps, 2)
	assert.ErrorIs(t, p.Steps[1].Err, boom)
	assert.Equal(t, "x{bad}", run(t, p, &Event{}))
	assert.Same(t, p, b.Build("x{bad}"))
}

func TestBuildCachesSingleWinner(t *testing.T) {
	b := NewBuilder(testRegistry())
	const workers = 32
	results := make([]*Pipeline, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = b.Build("{name} at {address}")
		}()
	}
	wg.Wait()
	for _, p := range results {
		assert.Same(t, results[0], p)
	}
}

func TestRendererErrorStopsPipeline(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry(Descriptor{Name: "fail", Pattern: KeyPattern("fail"), Factory: func(template.Segment) (Renderer, error) {
		return RendererFunc(func(*Buffer, *Event) error { return boom }), nil
	}})
	p := NewBuilder(reg).Build("a{fail}b")
	buf := AcquireBuffer(nil)
	defer ReleaseBuffer(buf)
	assert.ErrorIs(t, p.Render(buf, &Event{}), boom)
	assert.Equal(t, "a", buf.String())
}

func TestKeyPatternIsAnchoredAndCaseInsensitive(t *testing.T) {
	re := KeyPattern("Level", "LogLevel")
	assert.True(t, re.MatchString("level"))
	assert.True(t, re.MatchString("LOGLEVEL"))
	assert.False(t, re.MatchString("levels"))
	assert.False(t, re.MatchString("xlevel"))
}

func TestNeedsCallerFlag(t *testing.T) {
	b := NewBuilder(NewRegistry(Builtins()...))
	assert.False(t, b.Build("{Message}").NeedsCaller)
	assert.True(t, b.Build("{Caller} {Message}").NeedsCaller)
}
