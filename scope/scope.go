// Package scope carries nested logging scopes in a context.Context.
//
// A scope chain is an immutable linked list: Begin pushes a node whose
// parent is the context's current head and returns a Release func. Releasing
// a node hides it from every walk, so holders of the derived context fall
// back to the previous head without any shared mutable stack.
package scope

import (
	"context"
	"sync/atomic"
)

type node struct {
	value    any
	previous *node
	released atomic.Bool
}

type ctxKey struct{}

// Release ends a scope. Calling it more than once is a no-op.
type Release func()

// Begin pushes value onto the scope chain carried by ctx.
func Begin(ctx context.Context, value any) (context.Context, Release) {
	if ctx == nil {
		ctx = context.Background()
	}
	n := &node{value: value, previous: head(ctx)}
	return context.WithValue(ctx, ctxKey{}, n), func() {
		n.released.Store(true)
	}
}

func head(ctx context.Context) *node {
	if ctx == nil {
		return nil
	}
	n, _ := ctx.Value(ctxKey{}).(*node)
	return n
}

// Walk calls fn for each active scope value, innermost first, until fn
// returns false.
func Walk(ctx context.Context, fn func(value any) bool) {
	for n := head(ctx); n != nil; n = n.previous {
		if n.released.Load() {
			continue
		}
		if !fn(n.value) {
			return
		}
	}
}

// Values returns the active scope values, innermost first. It returns nil
// for an empty chain.
func Values(ctx context.Context) []any {
	var out []any
	Walk(ctx, func(v any) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Len reports the number of active scopes.
func Len(ctx context.Context) int {
	n := 0
	Walk(ctx, func(any) bool {
		n++
		return true
	})
	return n
}
