package usecase

import "time"

const (
	// DefaultValuationCacheTTL bounds how stale a cached valuation report
	// may be.
	DefaultValuationCacheTTL = 30 * time.Second

	// OutboxBatchSize is how many unpublished events the publisher fetches
	// per poll.
	OutboxBatchSize = 100
)
