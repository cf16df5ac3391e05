package models

import "time"

// SystemMetrics is a lightweight aggregate snapshot for admin dashboards.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	PolicyAllowed            uint64    `json:"policy_allowed"`
	PolicyDenied             uint64    `json:"policy_denied"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
