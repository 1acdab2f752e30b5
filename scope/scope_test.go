package scope

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesInnermostFirst(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, Values(ctx))

	ctx1, release1 := Begin(ctx, "S1")
	ctx2, release2 := Begin(ctx1, "S2")
	assert.Equal(t, []any{"S2", "S1"}, Values(ctx2))
	assert.Equal(t, 2, Len(ctx2))

	release2()
	assert.Equal(t, []any{"S1"}, Values(ctx2))
	release2()
	assert.Equal(t, []any{"S1"}, Values(ctx2))

	release1()
	assert.Empty(t, Values(ctx2))
	assert.Empty(t, Values(ctx1))
}

func TestReleasedScopeRestoresPreviousHeadForNewChildren(t *testing.T) {
	ctx1, release1 := Begin(context.Background(), "outer")
	defer release1()
	ctx2, release2 := Begin(ctx1, "inner")
	release2()
	ctx3, release3 := Begin(ctx2, "sibling")
	defer release3()
	assert.Equal(t, []any{"sibling", "outer"}, Values(ctx3))
}

func TestNilContext(t *testing.T) {
	ctx, release := Begin(nil, "x")
	defer release()
	assert.Equal(t, []any{"x"}, Values(ctx))
	assert.Nil(t, Values(nil))
}

func TestConcurrentChainsAreIndependent(t *testing.T) {
	root, release := Begin(context.Background(), "root")
	defer release()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, rel := Begin(root, i)
			defer rel()
			values := Values(ctx)
			if assert.Len(t, values, 2) {
				assert.Equal(t, i, values[0])
				assert.Equal(t, "root", values[1])
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, []any{"root"}, Values(root))
}

func TestKV(t *testing.T) {
	pairs := KV("user", "ada", 7, true, "dangling")
	require.Len(t, pairs, 3)
	assert.Equal(t, Pair{Key: "user", Value: "ada"}, pairs[0])
	assert.Equal(t, Pair{Key: "7", Value: true}, pairs[1])
	assert.Equal(t, Pair{Key: "dangling"}, pairs[2])

	v, ok := pairs.Get("USER")
	assert.True(t, ok)
	assert.Equal(t, "ada", v)
}

func TestAsPairs(t *testing.T) {
	_, ok := AsPairs("opaque")
	assert.False(t, ok)
	p, ok := AsPairs(map[string]any{"a": 1})
	require.True(t, ok)
	assert.Equal(t, Pairs{{Key: "a", Value: 1}}, p)
	p, ok = AsPairs(map[string]string{"b": "2", "a": "1"})
	require.True(t, ok)
	assert.Equal(t, Pairs{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, p)
	p, ok = AsPairs(Pair{Key: "k", Value: "v"})
	require.True(t, ok)
	assert.Len(t, p, 1)
}

func TestLookupInnermostWins(t *testing.T) {
	ctx, r1 := Begin(context.Background(), map[string]any{"request": "outer", "tenant": "acme"})
	defer r1()
	ctx, r2 := Begin(ctx, "opaque")
	defer r2()
	ctx, r3 := Begin(ctx, KV("request", "inner"))
	defer r3()

	v, ok := Lookup(ctx, "request")
	require.True(t, ok)
	assert.Equal(t, "inner", v)

	v, ok = Lookup(ctx, "Tenant")
	require.True(t, ok)
	assert.Equal(t, "acme", v)

	_, ok = Lookup(ctx, "missing")
	assert.False(t, ok)
}

func TestActivity(t *testing.T) {
	_, ok := ActivityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithActivity(context.Background(), "abc")
	id, ok := ActivityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", id)

	ctx, id = NewActivity(context.Background())
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	got, ok := ActivityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}
