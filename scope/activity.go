package scope

import (
	"context"

	"github.com/google/uuid"
)

type activityKey struct{}

// WithActivity attaches an activity (trace) identifier to ctx. The
// ActivityId renderer prints it.
func WithActivity(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityKey{}, id)
}

// NewActivity attaches a fresh random activity identifier to ctx and returns
// it alongside the derived context.
func NewActivity(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithActivity(ctx, id), id
}

// ActivityFrom returns the activity identifier carried by ctx.
func ActivityFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(activityKey{}).(string)
	return id, ok && id != ""
}
