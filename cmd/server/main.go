package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"studyhub_backend/internal/app/di"
	"studyhub_backend/internal/app/router"
	accounthandler "studyhub_backend/internal/feature/account/transport/handler"
	accountusecase "studyhub_backend/internal/feature/account/usecase"
	"studyhub_backend/internal/platform/db"
	"studyhub_backend/internal/platform/hash"
	jwtmw "studyhub_backend/internal/platform/jwt"
	"studyhub_backend/internal/platform/mail"
	platformredis "studyhub_backend/internal/platform/redis"
	"studyhub_backend/internal/platform/token"
	"studyhub_backend/internal/shared/ratelimiter"
)

const accessTokenExpiration = 15 * time.Minute

func main() {
	// db
	gdb := db.OpenDB()

	// Redis (optional: sessions fall back to the database without it)
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to database sessions.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRET check
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = "http://localhost:8080"
	}

	// Repositories
	accountRepo := di.NewAccountRepository(rdb, gdb)
	sessionRepo := di.NewSessionRepository(rdb, gdb)

	// Outbound mail: SMTP when configured, log-only otherwise
	var notifier accountusecase.Notifier
	if smtp, err := mail.NewSMTPNotifier(); err != nil {
		slog.Warn("SMTP not configured, emails will be logged only", "error", err)
		notifier = mail.LogNotifier{}
	} else {
		notifier = smtp
	}

	// Usecase
	accountUC := accountusecase.NewAccountUsecase(
		accountRepo,
		sessionRepo,
		hash.NewBcrypt(0),
		token.NewSource(),
		jwtmw.NewGenerator(secret, accessTokenExpiration),
		notifier,
		mail.NewRenderer(),
		host,
	)

	// Handler
	accountH := accounthandler.NewAccountHandler(accountUC)

	// Outbound email endpoints: 10 requests per minute and source IP
	sendLimiter := ratelimiter.NewLimiter(10, time.Minute)

	r := router.NewRouter(accountH, sendLimiter)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
