package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

const (
	// Key pattern: {prefix}:report:{id}
	reportKeyPart = ":report:"
	// Отсортированное множество ID отчётов, score: время старта
	indexKeyPart = ":reports"
)

// Config — настройки Redis-репозитория
type Config struct {
	Client    redis.UniversalClient
	KeyPrefix string
	// MaxList: сколько отчётов хранить; старые удаляются при Save. 0 хранит все.
	MaxList int
}

// Validate проверяет, что обязательные зависимости переданы
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.New("redis client is required")
	}
	if c.KeyPrefix == "" {
		return errors.New("key prefix is required")
	}
	if c.MaxList < 0 {
		return fmt.Errorf("max list must not be negative, got %d", c.MaxList)
	}
	return nil
}

type redisRepository struct {
	client  redis.UniversalClient
	prefix  string
	maxList int
}

// NewRedis создаёт Redis-репозиторий отчётов
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &redisRepository{
		client:  cfg.Client,
		prefix:  cfg.KeyPrefix,
		maxList: cfg.MaxList,
	}, nil
}

// redisRepository реализует Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) reportKey(id string) string {
	return r.prefix + reportKeyPart + id
}

func (r *redisRepository) indexKey() string {
	return r.prefix + indexKeyPart
}

// Save сохраняет JSON отчёта и индексирует его по времени старта
func (r *redisRepository) Save(ctx context.Context, report *Report) error {
	if err := validate(report); err != nil {
		return err
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.reportKey(report.ID), data, 0)
	pipe.ZAdd(ctx, r.indexKey(), redis.Z{
		Score:  float64(report.Started.UnixNano()),
		Member: report.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store report %s: %w", report.ID, err)
	}
	return r.evict(ctx)
}

// evict удаляет самые старые отчёты сверх maxList
func (r *redisRepository) evict(ctx context.Context) error {
	if r.maxList == 0 {
		return nil
	}
	stale, err := r.client.ZRange(ctx, r.indexKey(), 0, int64(-r.maxList-1)).Result()
	if err != nil {
		return fmt.Errorf("failed to read report index: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	keys := make([]string, len(stale))
	members := make([]any, len(stale))
	for i, id := range stale {
		keys[i] = r.reportKey(id)
		members[i] = id
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, r.indexKey(), members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to evict old reports: %w", err)
	}
	return nil
}

// List возвращает отчёты от новых к старым
func (r *redisRepository) List(ctx context.Context, input ListInput) ([]*Report, error) {
	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read report index: %w", err)
	}
	if len(ids) == 0 {
		return []*Report{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.reportKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	out := make([]*Report, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// индекс пережил сам отчёт
			continue
		}
		var report Report
		if err := json.Unmarshal([]byte(s), &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report %s: %w", ids[i], err)
		}
		out = append(out, &report)
	}
	return out, nil
}
