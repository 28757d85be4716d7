package dashboard

import (
	"context"
	"time"
)

// ReportCache holds a computed report for a short TTL so dashboard polls
// do not hammer the store.
type ReportCache interface {
	GetReport(ctx context.Context) (Report, bool, error)
	SaveReport(ctx context.Context, report Report, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
