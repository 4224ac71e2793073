package di

import (
	"time"

	"studyhub_backend/internal/feature/account/adapters"
	"studyhub_backend/internal/feature/account/usecase"
	"studyhub_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewAccountRepository creates the account store, wrapped with Redis caching
// of profile lookups when Redis is available.
func NewAccountRepository(rdb *redis.Client, db *gorm.DB) usecase.AccountRepository {
	repo := adapters.NewAccountGorm(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingAccountRepository(rdb, time.Minute, repo, "accounts")
}
