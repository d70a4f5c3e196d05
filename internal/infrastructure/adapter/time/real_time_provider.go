package time

import (
	"context"
	"time"

	"github.com/chiahui-lin/savings365/internal/domain/port/core"
)

// RealTimeProvider backs the TimeProvider port with the wall clock. It is
// the single source of "today" in production: savedOn defaulting, session
// expiry checks and record timestamps all read it, which is what lets tests
// pin those behaviors with a fixed clock instead.
type RealTimeProvider struct{}

// NewRealTimeProvider returns the wall-clock provider
func NewRealTimeProvider() core.TimeProvider {
	return RealTimeProvider{}
}

// Now returns the current wall-clock time
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Since reports how much time passed since t
func (RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

// Until reports how long remains before t; session expiry reads this
func (RealTimeProvider) Until(t time.Time) core.Duration {
	return core.Duration(time.Until(t))
}

// Sleep blocks the calling goroutine for d
func (RealTimeProvider) Sleep(d core.Duration) {
	time.Sleep(d.Std())
}

// WithTimeout derives a context that expires after the given duration
func (RealTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}

// ParseDuration converts a duration string like "720h" into the port's
// duration type
func (RealTimeProvider) ParseDuration(s string) (core.Duration, error) {
	d, err := time.ParseDuration(s)
	return core.Duration(d), err
}
