package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BruksfildServices01/court-reservations/internal/dto"
	"github.com/BruksfildServices01/court-reservations/internal/metrics"
)

// Availability caches the per court and day slot listing. Implementations
// must treat every failure as a miss; the database stays the source of truth.
//
// Readers take Version before querying the database and hand it back to Set.
// Invalidate bumps the version, so a listing read before a write commits is
// never stored after that write's invalidation.
type Availability interface {
	Get(ctx context.Context, courtID uint, date string) ([]dto.SlotDTO, bool)
	Version(ctx context.Context, courtID uint, date string) (int64, bool)
	Set(ctx context.Context, courtID uint, date string, version int64, slots []dto.SlotDTO)
	Invalidate(ctx context.Context, courtID uint, dates ...string)
}

func Key(courtID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", courtID, date)
}

func VersionKey(courtID uint, date string) string {
	return fmt.Sprintf("availability:ver:%d:%s", courtID, date)
}

// versionTTL outlives any in-flight read; an expired counter reads as 0 and
// fails the compare for readers holding a later version.
const versionTTL = 24 * time.Hour

// setIfVersionScript stores KEYS[1] only while KEYS[2] still equals ARGV[1].
// A missing version counts as 0.
const setIfVersionScript = `
local current = redis.call('GET', KEYS[2])
if current == false then current = '0' end
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`

// ============================================================
// Redis
// ============================================================

type RedisAvailability struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailability(client *redis.Client, ttl time.Duration) *RedisAvailability {
	return &RedisAvailability{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (r *RedisAvailability) Get(ctx context.Context, courtID uint, date string) ([]dto.SlotDTO, bool) {
	raw, err := r.client.Get(ctx, Key(courtID, date)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Println("[cache] get error:", err)
		}
		metrics.ObserveCache(false)
		return nil, false
	}

	var slots []dto.SlotDTO
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		log.Println("[cache] decode error:", err)
		metrics.ObserveCache(false)
		return nil, false
	}
	metrics.ObserveCache(true)
	return slots, true
}

func (r *RedisAvailability) Version(ctx context.Context, courtID uint, date string) (int64, bool) {
	v, err := r.client.Get(ctx, VersionKey(courtID, date)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, true
		}
		log.Println("[cache] version error:", err)
		return 0, false
	}
	return v, true
}

// Set stores slots only if no invalidation happened since version was read.
func (r *RedisAvailability) Set(ctx context.Context, courtID uint, date string, version int64, slots []dto.SlotDTO) {
	if r.ttl <= 0 {
		return
	}
	if slots == nil {
		slots = []dto.SlotDTO{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		log.Println("[cache] encode error:", err)
		return
	}

	stored, err := r.client.Eval(ctx, setIfVersionScript,
		[]string{Key(courtID, date), VersionKey(courtID, date)},
		strconv.FormatInt(version, 10), string(data), r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		log.Println("[cache] set error:", err)
		return
	}
	if stored == 0 {
		log.Printf("[cache] skipped stale listing court=%d date=%s", courtID, date)
	}
}

// Invalidate bumps each day's version before deleting its entry.
func (r *RedisAvailability) Invalidate(ctx context.Context, courtID uint, dates ...string) {
	if len(dates) == 0 {
		return
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		verKey := VersionKey(courtID, d)
		if err := r.client.Incr(ctx, verKey).Err(); err != nil {
			log.Println("[cache] version bump error:", err)
		}
		if err := r.client.Expire(ctx, verKey, versionTTL).Err(); err != nil {
			log.Println("[cache] version expire error:", err)
		}
		keys = append(keys, Key(courtID, d))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		log.Println("[cache] invalidate error:", err)
	}
}

// ============================================================
// No-op
// ============================================================

// Nop is used when REDIS_URL is unset.
type Nop struct{}

func (Nop) Get(context.Context, uint, string) ([]dto.SlotDTO, bool) { return nil, false }
func (Nop) Version(context.Context, uint, string) (int64, bool)     { return 0, false }
func (Nop) Set(context.Context, uint, string, int64, []dto.SlotDTO) {}
func (Nop) Invalidate(context.Context, uint, ...string)             {}

var (
	_ Availability = (*RedisAvailability)(nil)
	_ Availability = Nop{}
)
