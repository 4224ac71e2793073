// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"studyhub_backend/internal/feature/account/domain/entity"
	"studyhub_backend/internal/feature/account/usecase"
)

// CachingAccountRepository decorates an AccountRepository with Redis caching
// of nickname lookups, which back the public profile pages. Token and email
// lookups always hit the database so the auth flows see fresh check tokens.
type CachingAccountRepository struct {
	usecase.AccountRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingAccountRepository decorates an AccountRepository with Redis
// caching. If ttl is 0, it defaults to 1 minute. If namespace is empty, it
// uses "accounts".
func NewCachingAccountRepository(rdb *redis.Client, ttl time.Duration, inner usecase.AccountRepository, namespace string) *CachingAccountRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "accounts"
	}
	return &CachingAccountRepository{
		AccountRepository: inner,
		rdb:               rdb,
		ttl:               ttl,
		namespace:         namespace,
	}
}

// cacheKey generates the cache key for a nickname lookup.
func (c *CachingAccountRepository) cacheKey(nickname string) string {
	return fmt.Sprintf("%s:nickname:%s", c.namespace, nickname)
}

// FindByNickname retrieves an account, checking the cache first and falling
// back to the database. Only hits are cached; absence is never cached.
func (c *CachingAccountRepository) FindByNickname(ctx context.Context, nickname string) (*entity.Account, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.AccountRepository.FindByNickname(ctx, nickname)
	}

	key := c.cacheKey(nickname)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Account
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.AccountRepository.FindByNickname(ctx, nickname)
	if err != nil || out == nil {
		return out, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Save persists the account and invalidates its cached nickname entry.
// After a rename the entry under the old nickname ages out within the TTL.
func (c *CachingAccountRepository) Save(ctx context.Context, account *entity.Account) error {
	if err := c.AccountRepository.Save(ctx, account); err != nil {
		return err
	}
	if c.rdb != nil {
		// Best effort: don't fail if cache invalidation fails
		_ = c.rdb.Del(ctx, c.cacheKey(account.Nickname)).Err()
	}
	return nil
}
