// Package reportcache caches the computed dashboard report for a short TTL.
package reportcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/campuswatt/campus-energy/internal/domain/dashboard"
)

// ValkeyCache stores the report in a Valkey-compatible database.
type ValkeyCache struct {
	client valkey.Client
	key    string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, key string) *ValkeyCache {
	if key == "" {
		key = "dashboard:report"
	}
	return &ValkeyCache{client: client, key: key}
}

func (c *ValkeyCache) GetReport(ctx context.Context) (dashboard.Report, bool, error) {
	result := c.client.Do(ctx, c.client.B().Get().Key(c.key).Build())
	payload, err := result.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return dashboard.Report{}, false, nil
		}
		return dashboard.Report{}, false, err
	}
	var report dashboard.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return dashboard.Report{}, false, err
	}
	return report, true, nil
}

func (c *ValkeyCache) SaveReport(ctx context.Context, report dashboard.Report, ttl time.Duration) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) Invalidate(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Del().Key(c.key).Build()).Error()
}

var _ dashboard.ReportCache = (*ValkeyCache)(nil)
