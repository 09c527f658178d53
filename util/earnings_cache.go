package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/healthconnect/doctor-portal/config"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/redis/go-redis/v9"
)

// EarningsCacheTTL bounds staleness if an invalidation is ever missed; the
// status mutators delete the key explicitly, so under normal operation a
// snapshot never outlives the appointment state it was computed from.
const EarningsCacheTTL = time.Minute

func earningsCacheKey(doctorID uint) string {
	return fmt.Sprintf("earnings:%d", doctorID)
}

// GetCachedEarnings returns the cached earnings snapshot for the doctor and
// true when a valid snapshot is present. All failures (no Redis, missing key,
// stale payload shape) report a miss so the caller recomputes.
func GetCachedEarnings(doctorID uint) (model.EarningsSnapshot, bool) {
	var snapshot model.EarningsSnapshot
	rdb := config.GetRedisClient()
	if rdb == nil {
		return snapshot, false
	}
	ctx := context.Background()
	payload, err := rdb.Get(ctx, earningsCacheKey(doctorID)).Result()
	if err == redis.Nil {
		return snapshot, false
	}
	if err != nil {
		return snapshot, false
	}
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return snapshot, false
	}
	return snapshot, true
}

// CacheEarnings stores the earnings snapshot for the doctor. Best-effort: a
// nil Redis client or a write failure is silently tolerated.
func CacheEarnings(doctorID uint, snapshot model.EarningsSnapshot) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return rdb.Set(context.Background(), earningsCacheKey(doctorID), payload, EarningsCacheTTL).Err()
}

// InvalidateEarnings drops the cached snapshot for the doctor. Must be called
// after every appointment status mutation so reads never see stale totals.
func InvalidateEarnings(doctorID uint) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Del(context.Background(), earningsCacheKey(doctorID)).Err()
}
