package profilecache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"

	"github.com/go-redis/redis/v9"
)

const keyPrefix = "linkea::profile::"

type profile struct {
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Links       string `json:"links"`
}

// Redis caches public profiles by handle. Cache errors are logged and
// treated as misses.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	ttl         time.Duration
}

func NewRedis(redisClient *redis.Client, log logging.Logger, ttl time.Duration) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Redis{redisClient: redisClient, log: log, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, handle user.Handle) (user.PublicProfile, bool) {
	raw, err := r.redisClient.Get(ctx, key(handle)).Bytes()
	if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
		return user.PublicProfile{}, false
	}
	if err != nil {
		r.log.Error(ctx, "Could not get profile from Redis.", logging.Entry("handle", handle), logging.Entry("err", err))
		return user.PublicProfile{}, false
	}
	var p profile
	if err := json.Unmarshal(raw, &p); err != nil {
		r.log.Warning(ctx, "Could not decode cached profile.", logging.Entry("handle", handle), logging.Entry("err", err))
		return user.PublicProfile{}, false
	}
	return user.PublicProfile{
		Handle:      user.Handle(p.Handle),
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Links:       p.Links,
	}, true
}

func (r *Redis) Set(ctx context.Context, pp user.PublicProfile) {
	raw, err := json.Marshal(profile{
		Handle:      string(pp.Handle),
		Name:        pp.Name,
		Description: pp.Description,
		Image:       pp.Image,
		Links:       pp.Links,
	})
	if err != nil {
		r.log.Error(ctx, "Could not encode profile.", logging.Entry("handle", pp.Handle), logging.Entry("err", err))
		return
	}
	err = r.redisClient.Set(ctx, key(pp.Handle), raw, r.ttl).Err()
	if err != nil && !errors.Is(err, context.Canceled) {
		r.log.Error(ctx, "Could not put profile to Redis.", logging.Entry("handle", pp.Handle), logging.Entry("err", err))
	}
}

func (r *Redis) Invalidate(ctx context.Context, handles ...user.Handle) {
	if len(handles) == 0 {
		return
	}
	keys := make([]string, 0, len(handles))
	for _, handle := range handles {
		keys = append(keys, key(handle))
	}
	err := r.redisClient.Del(ctx, keys...).Err()
	if err != nil && !errors.Is(err, context.Canceled) {
		r.log.Error(ctx, "Could not invalidate cached profiles.", logging.Entry("handles", handles), logging.Entry("err", err))
	}
}

func key(handle user.Handle) string {
	return keyPrefix + string(handle)
}
