package util

import (
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/healthconnect/doctor-portal/config"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/stretchr/testify/assert"
)

func setupRedisMock(t *testing.T) redismock.ClientMock {
	t.Helper()
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(client)
	t.Cleanup(config.ResetRedisClientForTest)
	return mock
}

func TestEarningsCacheWithoutRedis(t *testing.T) {
	config.ResetRedisClientForTest()

	snapshot := model.EarningsSnapshot{
		Today: model.EarningsBucket{Amount: 1500, Consultations: 3},
	}

	// Everything degrades to a no-op miss when Redis is absent.
	assert.NoError(t, CacheEarnings(1, snapshot))
	_, hit := GetCachedEarnings(1)
	assert.False(t, hit)
	assert.NoError(t, InvalidateEarnings(1))
}

func TestGetCachedEarningsMiss(t *testing.T) {
	mock := setupRedisMock(t)
	mock.ExpectGet("earnings:1").RedisNil()

	_, hit := GetCachedEarnings(1)
	assert.False(t, hit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCachedEarningsHit(t *testing.T) {
	mock := setupRedisMock(t)

	snapshot := model.EarningsSnapshot{
		Today:  model.EarningsBucket{Amount: 1500, Consultations: 3},
		Weekly: model.EarningsBucket{Amount: 4200, Consultations: 8},
	}
	payload, err := json.Marshal(snapshot)
	assert.NoError(t, err)
	mock.ExpectGet("earnings:1").SetVal(string(payload))

	cached, hit := GetCachedEarnings(1)
	assert.True(t, hit)
	assert.Equal(t, snapshot, cached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCachedEarningsCorruptPayloadIsMiss(t *testing.T) {
	mock := setupRedisMock(t)
	mock.ExpectGet("earnings:1").SetVal("{not-json")

	_, hit := GetCachedEarnings(1)
	assert.False(t, hit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheEarnings(t *testing.T) {
	mock := setupRedisMock(t)

	snapshot := model.EarningsSnapshot{
		Today: model.EarningsBucket{Amount: 500, Consultations: 1},
	}
	payload, err := json.Marshal(snapshot)
	assert.NoError(t, err)
	mock.ExpectSet("earnings:2", payload, EarningsCacheTTL).SetVal("OK")

	assert.NoError(t, CacheEarnings(2, snapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateEarnings(t *testing.T) {
	mock := setupRedisMock(t)
	mock.ExpectDel("earnings:1").SetVal(1)

	assert.NoError(t, InvalidateEarnings(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
