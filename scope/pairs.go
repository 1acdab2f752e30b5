package scope

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
)

// Pair is one key/value item of a structured scope.
type Pair struct {
	Key   string
	Value any
}

// Pairs is a structured scope. The scopes renderer prints it as k=v items.
type Pairs []Pair

// KV builds Pairs from alternating keys and values. Non-string keys are
// converted with fmt.Sprint and a trailing key without a value gets nil.
func KV(keyvals ...any) Pairs {
	out := make(Pairs, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		var key string
		switch k := keyvals[i].(type) {
		case string:
			key = k
		default:
			key = fmt.Sprint(k)
		}
		var value any
		if i+1 < len(keyvals) {
			value = keyvals[i+1]
		}
		out = append(out, Pair{Key: key, Value: value})
	}
	return out
}

// Get returns the value stored under key, matched case-insensitively.
func (p Pairs) Get(key string) (any, bool) {
	for _, pair := range p {
		if strings.EqualFold(pair.Key, key) {
			return pair.Value, true
		}
	}
	return nil, false
}

// AsPairs reports whether v is a key/value scope and returns its items. Map
// items are sorted by key.
func AsPairs(v any) (Pairs, bool) {
	switch x := v.(type) {
	case Pairs:
		return x, true
	case Pair:
		return Pairs{x}, true
	case map[string]any:
		out := make(Pairs, 0, len(x))
		for k, val := range x {
			out = append(out, Pair{Key: k, Value: val})
		}
		sortPairs(out)
		return out, true
	case map[string]string:
		out := make(Pairs, 0, len(x))
		for k, val := range x {
			out = append(out, Pair{Key: k, Value: val})
		}
		sortPairs(out)
		return out, true
	}
	return nil, false
}

func sortPairs(p Pairs) {
	slices.SortFunc(p, func(a, b Pair) int { return cmp.Compare(a.Key, b.Key) })
}

// Lookup finds key in the active key/value scopes, innermost first. Keys
// match case-insensitively.
func Lookup(ctx context.Context, key string) (any, bool) {
	var (
		found any
		ok    bool
	)
	Walk(ctx, func(v any) bool {
		if m, isMap := v.(map[string]any); isMap {
			if found, ok = m[key]; ok {
				return false
			}
		}
		if pairs, isPairs := AsPairs(v); isPairs {
			found, ok = pairs.Get(key)
		}
		return !ok
	})
	return found, ok
}
