package util

import (
	"context"
	"fmt"

	"github.com/healthconnect/doctor-portal/config"
	"github.com/redis/go-redis/v9"
)

// AddSessionToDoctorSet adds the session token to the per-doctor Redis set.
// The set has no TTL and persists until explicitly cleaned up via
// RemoveSessionTokenFromDoctorSet or InvalidateDoctorSessions.
func AddSessionToDoctorSet(doctorID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	setKey := fmt.Sprintf("doctor_sessions:%d", doctorID)
	if err := rdb.SAdd(ctx, setKey, token).Err(); err != nil {
		return err
	}
	// Use PERSIST to ensure the set has no TTL and relies on explicit cleanup
	return rdb.Persist(ctx, setKey).Err()
}

// RemoveSessionTokenFromDoctorSet removes a single session token from the per-doctor set.
// If the set becomes empty after removal, it is deleted.
func RemoveSessionTokenFromDoctorSet(doctorID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	setKey := fmt.Sprintf("doctor_sessions:%d", doctorID)
	// Use a Lua script to atomically remove the token and delete the set if empty
	script := `
		local removed = redis.call('SREM', KEYS[1], ARGV[1])
		if removed > 0 then
			local count = redis.call('SCARD', KEYS[1])
			if count == 0 then
				redis.call('DEL', KEYS[1])
			end
		end
		return removed
	`
	return rdb.Eval(ctx, script, []string{setKey}, token).Err()
}

// InvalidateDoctorSessions deletes all session:<token> keys for the given doctor and
// removes the per-doctor set. Best-effort: it will return an error if Redis calls
// fail, but callers may choose to ignore it.
func InvalidateDoctorSessions(doctorID uint) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	setKey := fmt.Sprintf("doctor_sessions:%d", doctorID)
	members, err := rdb.SMembers(ctx, setKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	for _, tok := range members {
		_ = rdb.Del(ctx, fmt.Sprintf("session:%s", tok)).Err()
	}
	return rdb.Del(ctx, setKey).Err()
}
