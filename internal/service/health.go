package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"messaging-back/internal/model"
)

type HealthRepository interface {
	Ping(ctx context.Context) error
}

type OutboxStatsReader interface {
	Stats(ctx context.Context) (*model.OutboxStats, error)
}

type ConnectionCounter interface {
	ConnectionCount() int
}

type HealthService struct {
	log         *zap.Logger
	healthRepo  HealthRepository
	outbox      OutboxStatsReader
	connections ConnectionCounter
	now         func() time.Time
}

func NewHealthService(log *zap.Logger, healthRepo HealthRepository, outbox OutboxStatsReader, connections ConnectionCounter) *HealthService {
	return &HealthService{
		log:         log,
		healthRepo:  healthRepo,
		outbox:      outbox,
		connections: connections,
		now:         time.Now,
	}
}

// Check returns the health report; err is set when the database is unreachable.
func (s *HealthService) Check(ctx context.Context) (*model.Health, error) {
	health := &model.Health{Database: "ok"}

	if s.connections != nil {
		health.LiveConnections = s.connections.ConnectionCount()
	}

	if err := s.healthRepo.Ping(ctx); err != nil {
		s.log.Warn("Database ping failed", zap.Error(err))
		health.Database = "unavailable"

		return health, err
	}

	stats, err := s.outbox.Stats(ctx)
	if err != nil {
		return health, err
	}

	health.OutboxPending = stats.Pending

	if stats.OldestPendingAt != nil {
		health.OutboxOldestAge = s.now().Sub(*stats.OldestPendingAt)
	}

	return health, nil
}
