package entity

import (
	"context"
	"time"

	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
)

// fixedTimeProvider implements core.TimeProvider with a pinned clock
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }
func (p *fixedTimeProvider) Since(t time.Time) coreport.Duration {
	return coreport.Duration(p.now.Sub(t))
}
func (p *fixedTimeProvider) Until(t time.Time) coreport.Duration {
	return coreport.Duration(t.Sub(p.now))
}
func (p *fixedTimeProvider) Sleep(coreport.Duration) {}
func (p *fixedTimeProvider) WithTimeout(ctx context.Context, timeout coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
func (p *fixedTimeProvider) ParseDuration(s string) (coreport.Duration, error) {
	d, err := time.ParseDuration(s)
	return coreport.Duration(d), err
}
