package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"messaging-back/internal/model"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubStats struct{ stats model.OutboxStats }

func (s stubStats) Stats(context.Context) (*model.OutboxStats, error) { return &s.stats, nil }

type stubCounter int

func (c stubCounter) ConnectionCount() int { return int(c) }

func TestHealthCheck(t *testing.T) {
	req := require.New(t)

	oldest := time.Now().Add(-90 * time.Second)
	svc := NewHealthService(zaptest.NewLogger(t), stubPinger{}, stubStats{model.OutboxStats{Pending: 3, OldestPendingAt: &oldest}}, stubCounter(2))

	health, err := svc.Check(context.Background())
	req.NoError(err)
	req.Equal("ok", health.Database)
	req.EqualValues(3, health.OutboxPending)
	req.GreaterOrEqual(health.OutboxOldestAge, 90*time.Second)
	req.Equal(2, health.LiveConnections)
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	req := require.New(t)

	svc := NewHealthService(zaptest.NewLogger(t), stubPinger{err: errors.New("dial tcp: refused")}, stubStats{}, nil)

	health, err := svc.Check(context.Background())
	req.Error(err)
	req.Equal("unavailable", health.Database)
}
