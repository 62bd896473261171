package sqlc

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIpNet = net.IPNet{IP: net.ParseIP("10.0.0.7").To4(), Mask: net.CIDRMask(32, 32)}

func newTestManager(t *testing.T) (DbManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDbManager(New(db), testIpNet), mock
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)
	return ctx
}

func TestIncrementGamesCreatedCount(t *testing.T) {
	dbm, mock := newTestManager(t)
	inet := pqtype.Inet{IPNet: testIpNet, Valid: true}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO game_server_analytics (server_ip, games_created)`)).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT games_created FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(inet).
		WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(1))

	require.NoError(t, dbm.Analytics.IncrementGamesCreatedCount(testCtx(t)))

	gamesCreated, err := dbm.Analytics.GetGamesCreatedCount(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), gamesCreated)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementPlacementsFailedCount(t *testing.T) {
	dbm, mock := newTestManager(t)
	inet := pqtype.Inet{IPNet: testIpNet, Valid: true}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO game_server_analytics (server_ip, placements_failed)`)).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT placements_failed FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(inet).
		WillReturnRows(sqlmock.NewRows([]string{"placements_failed"}).AddRow(3))

	require.NoError(t, dbm.Analytics.IncrementPlacementsFailedCount(testCtx(t)))

	failed, err := dbm.Analytics.GetPlacementsFailedCount(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, int64(3), failed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsQueryError(t *testing.T) {
	dbm, mock := newTestManager(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO game_server_analytics`)).
		WillReturnError(errors.New("connection refused"))

	err := dbm.Analytics.IncrementGamesCreatedCount(testCtx(t))
	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisabledAnalytics(t *testing.T) {
	dbm := NewDbManager(nil, testIpNet)
	assert.False(t, dbm.Analytics.Enabled())

	assert.NoError(t, dbm.Analytics.IncrementGamesCreatedCount(testCtx(t)))
	assert.NoError(t, dbm.Analytics.IncrementPlacementsFailedCount(testCtx(t)))
	count, err := dbm.Analytics.GetGamesCreatedCount(testCtx(t))
	assert.NoError(t, err)
	assert.Zero(t, count)

	var nilManager *AnalyticsManager
	assert.False(t, nilManager.Enabled())
	assert.NoError(t, nilManager.IncrementGamesCreatedCount(testCtx(t)))
}
