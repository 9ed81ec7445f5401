package domain

import (
	"context"
	"time"
)

type locationKey struct{}

// WithLocation sets the owner timezone used to interpret provider local timestamps.
func WithLocation(ctx context.Context, loc *time.Location) context.Context {
	return context.WithValue(ctx, locationKey{}, loc)
}

// LocationFromContext returns the location set by WithLocation, or UTC.
func LocationFromContext(ctx context.Context) *time.Location {
	if loc, ok := ctx.Value(locationKey{}).(*time.Location); ok && loc != nil {
		return loc
	}
	return time.UTC
}
