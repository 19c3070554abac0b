package showtimes

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cinebook/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// SeatHolds manages advisory seat holds in Redis. Holds give the seat
// picker a short exclusive window on chosen seats; the database
// conditional claim remains the authoritative booking step.
type SeatHolds struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSeatHolds(redisClient *redis.Client, ttl time.Duration) *SeatHolds {
	return &SeatHolds{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Lua script for atomic multi-seat holding - prevents race conditions
const luaSeatHold = `
-- KEYS[1] = key prefix ("cinebook:seat_hold:{showtime_id}:")
-- ARGV[1] = user_id
-- ARGV[2] = ttl_seconds
-- ARGV[3..N] = seat labels

local prefix = KEYS[1]
local user_id = ARGV[1]
local ttl = tonumber(ARGV[2])

-- Check that no requested seat is held by someone else
for i = 3, #ARGV do
    local hold_key = prefix .. ARGV[i]
    local holder = redis.call("GET", hold_key)

    if holder and holder ~= user_id then
        return {0, ARGV[i]}
    end
end

-- All free (or held by this user): take them
for i = 3, #ARGV do
    local hold_key = prefix .. ARGV[i]
    redis.call("SETEX", hold_key, ttl, user_id)
end

return {1, #ARGV - 2}
`

// Lua script for atomic hold release; only the holder may release
const luaSeatRelease = `
-- KEYS[1] = key prefix
-- ARGV[1] = user_id ("" releases regardless of holder)
-- ARGV[2..N] = seat labels

local prefix = KEYS[1]
local user_id = ARGV[1]
local released = 0

for i = 2, #ARGV do
    local hold_key = prefix .. ARGV[i]
    local holder = redis.call("GET", hold_key)

    if holder and (user_id == "" or holder == user_id) then
        redis.call("DEL", hold_key)
        released = released + 1
    end
end

return {1, released}
`

func holdKeyPrefix(showtimeID string) string {
	return constants.SEAT_HOLD_PREFIX + showtimeID + ":"
}

// Hold atomically places a hold on every label for the user. Fails with
// ErrSeatHeld when any label is held by a different user.
func (h *SeatHolds) Hold(ctx context.Context, showtimeID, userID string, labels []string) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{holdKeyPrefix(showtimeID)}
	args := []interface{}{
		userID,
		strconv.Itoa(int(h.ttl.Seconds())),
	}
	for _, label := range labels {
		args = append(args, label)
	}

	result, err := h.redis.EvalSha(ctx, luaSeatHold, keys, args...).Result()
	if err != nil {
		// Script may not be loaded yet
		result, err = h.redis.Eval(ctx, luaSeatHold, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute seat hold: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		if conflict, ok := resultArray[1].(string); ok {
			return fmt.Errorf("%w: %s", ErrSeatHeld, conflict)
		}
		return ErrSeatHeld
	}

	return nil
}

// Release drops the user's holds on the labels. An empty userID releases
// the holds regardless of holder (used after a successful booking).
func (h *SeatHolds) Release(ctx context.Context, showtimeID, userID string, labels []string) (int, error) {
	if h.redis == nil {
		return 0, fmt.Errorf("redis client not available")
	}

	keys := []string{holdKeyPrefix(showtimeID)}
	args := []interface{}{userID}
	for _, label := range labels {
		args = append(args, label)
	}

	result, err := h.redis.EvalSha(ctx, luaSeatRelease, keys, args...).Result()
	if err != nil {
		result, err = h.redis.Eval(ctx, luaSeatRelease, keys, args...).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to execute seat release: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return 0, fmt.Errorf("unexpected result format from Lua script")
	}

	released, ok := resultArray[1].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid released count in Lua script result")
	}

	return int(released), nil
}

// PreloadScripts loads the hold scripts into Redis so EvalSha hits
func (h *SeatHolds) PreloadScripts(ctx context.Context) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := h.redis.ScriptLoad(ctx, luaSeatHold).Result(); err != nil {
		return fmt.Errorf("failed to load seat hold script: %w", err)
	}
	if _, err := h.redis.ScriptLoad(ctx, luaSeatRelease).Result(); err != nil {
		return fmt.Errorf("failed to load seat release script: %w", err)
	}

	return nil
}
