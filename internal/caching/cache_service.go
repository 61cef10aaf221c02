package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"roomledger/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "roomledger"

type CacheService interface {
	// Lease expiry summary written by the scheduler
	GetLeaseSummary(ctx context.Context) (*models.LeaseExpirySummary, error)
	SetLeaseSummary(ctx context.Context, summary *models.LeaseExpirySummary, ttl time.Duration) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int, logger logrus.FieldLogger) CacheService {
	// Accept redis://host:port as well as host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		logger.WithError(pingErr).WithField("address", parsedAddr).Warn("redis ping failed on initialization")
	} else {
		logger.WithField("address", parsedAddr).Debug("redis connection established")
	}

	return &redisCacheService{client: client}
}

func leaseSummaryKey() string {
	return fmt.Sprintf("%s:leases:expiring", keyPrefix)
}

func rateLimitKey(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)
}

func (r *redisCacheService) GetLeaseSummary(ctx context.Context) (*models.LeaseExpirySummary, error) {
	data, err := r.client.Get(ctx, leaseSummaryKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var summary models.LeaseExpirySummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetLeaseSummary(ctx context.Context, summary *models.LeaseExpirySummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, leaseSummaryKey(), data, ttl).Err()
}

// IsRateLimited counts one hit against key and reports whether the count
// within the current window exceeds limit.
func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := rateLimitKey(key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, cacheKey)
	pipe.ExpireNX(ctx, cacheKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}
