// Package redis 在 MySQL 仓储之前加一层 Redis 读缓存
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/cache"
	"github.com/wyfcoding/optionpricing/pkg/logger"
)

// CachedPricingRepository 缓存装饰器
// 最新结果命中缓存直接返回，写入时同步刷新缓存；历史查询直接透传
type CachedPricingRepository struct {
	next  domain.PricingRepository
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewCachedPricingRepository 创建缓存仓储
func NewCachedPricingRepository(next domain.PricingRepository, c *cache.RedisCache) domain.PricingRepository {
	return &CachedPricingRepository{
		next:  next,
		cache: c,
		ttl:   15 * time.Minute,
	}
}

// WithTx 事务控制透传给底层仓储
func (r *CachedPricingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.next.WithTx(ctx, fn)
}

// Save 先落库再刷新缓存，刷新失败时删除旧键避免读到过期结果
func (r *CachedPricingRepository) Save(ctx context.Context, result *domain.PricingResult) error {
	if err := r.next.Save(ctx, result); err != nil {
		return err
	}
	key := r.resultKey(result.Symbol)
	if err := r.cache.SetJSON(ctx, key, result, r.ttl); err != nil {
		logger.Warn(ctx, "refresh pricing result cache failed", "symbol", result.Symbol, "error", err)
		if delErr := r.cache.Delete(ctx, key); delErr != nil {
			logger.Warn(ctx, "invalidate pricing result cache failed", "symbol", result.Symbol, "error", delErr)
		}
	}
	return nil
}

// GetLatest 优先读缓存，未命中回源并回填
func (r *CachedPricingRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	var cached domain.PricingResult
	if err := r.cache.GetJSON(ctx, r.resultKey(symbol), &cached); err == nil && cached.Symbol != "" {
		return &cached, nil
	}

	result, err := r.next.GetLatest(ctx, symbol)
	if err != nil || result == nil {
		return result, err
	}
	if err := r.cache.SetJSON(ctx, r.resultKey(symbol), result, r.ttl); err != nil {
		logger.Warn(ctx, "backfill pricing result cache failed", "symbol", symbol, "error", err)
	}
	return result, nil
}

// GetHistory 历史查询不走缓存
func (r *CachedPricingRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	return r.next.GetHistory(ctx, symbol, limit)
}

func (r *CachedPricingRepository) resultKey(symbol string) string {
	return fmt.Sprintf("pricing_result:%s", symbol)
}
