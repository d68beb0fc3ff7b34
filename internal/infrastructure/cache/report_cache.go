package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

const latestReportKey = KeyPrefix + "report:latest"

// ReportCache keeps the most recent daily report
type ReportCache struct {
	kv KV
}

// NewReportCache creates a report cache on kv
func NewReportCache(kv KV) *ReportCache {
	return &ReportCache{kv: kv}
}

// GetLatest returns the cached report or nil on a miss
func (c *ReportCache) GetLatest(ctx context.Context) (*entities.Report, error) {
	raw, ok, err := c.kv.Get(ctx, latestReportKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest report: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var report entities.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

// SetLatest stores report as the latest one for ttl
func (c *ReportCache) SetLatest(ctx context.Context, report *entities.Report, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.kv.Set(ctx, latestReportKey, string(data), ttl); err != nil {
		return fmt.Errorf("failed to cache latest report: %w", err)
	}
	return nil
}

// Claimer hands out one-time claims on keys for a limited period. The
// notification dispatcher uses it to send each alert once per day and the
// scheduler uses it so only one replica runs a job slot.
type Claimer struct {
	kv     KV
	prefix string
	ttl    time.Duration
}

// NewClaimer creates a claimer whose keys live under prefix for ttl
func NewClaimer(kv KV, prefix string, ttl time.Duration) *Claimer {
	return &Claimer{kv: kv, prefix: KeyPrefix + prefix, ttl: ttl}
}

// Claim reports true the first time key is claimed within the ttl
func (c *Claimer) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := c.kv.SetNX(ctx, c.prefix+key, time.Now().UTC().Format(time.RFC3339), c.ttl)
	if err != nil {
		return false, fmt.Errorf("failed to claim %s: %w", key, err)
	}
	return ok, nil
}

// Release gives key back so the next Claim succeeds
func (c *Claimer) Release(ctx context.Context, key string) error {
	if err := c.kv.Del(ctx, c.prefix+key); err != nil {
		return fmt.Errorf("failed to release %s: %w", key, err)
	}
	return nil
}
