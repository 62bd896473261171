package sqlc

import (
	"context"
	"net"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager keeps per-server counters. A manager
// without queries is disabled and every call is a no-op.
type AnalyticsManager struct {
	queries  Querier
	serverIp pqtype.Inet
}

func NewAnalyticsManager(queries Querier, serverIpNet net.IPNet) *AnalyticsManager {
	return &AnalyticsManager{
		queries:  queries,
		serverIp: pqtype.Inet{IPNet: serverIpNet, Valid: true},
	}
}

func (a *AnalyticsManager) Enabled() bool {
	return a != nil && a.queries != nil
}

func (a *AnalyticsManager) ServerIp() pqtype.Inet {
	return a.serverIp
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.AnalyticsIncrementGamesCreatedCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) IncrementPlacementsFailedCount(ctx context.Context) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.AnalyticsIncrementPlacementsFailedCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.AnalyticsGetGamesCreatedCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) GetPlacementsFailedCount(ctx context.Context) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.AnalyticsGetPlacementsFailedCount(ctx, a.serverIp)
}
