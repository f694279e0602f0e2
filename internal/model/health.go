package model

import "time"

// Health
// @Description Liveness of the storage layer and the state of the outbox queue.
type Health struct {
	Database        string        `json:"database" example:"ok"`
	OutboxPending   int64         `json:"outboxPending" example:"0"`
	OutboxOldestAge time.Duration `json:"outboxOldestAgeNs" swaggertype:"integer" example:"0"`
	LiveConnections int           `json:"liveConnections" example:"3"`
} // @Name Health
