package router

import (
	accounthandler "studyhub_backend/internal/feature/account/transport/handler"
	jwtmw "studyhub_backend/internal/platform/jwt"
	"studyhub_backend/internal/shared/ratelimiter"

	"github.com/gin-gonic/gin"
)

func NewRouter(accountHandler *accounthandler.AccountHandler, sendLimiter *ratelimiter.Limiter) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", accounthandler.Health)

	// Endpoints that trigger outbound email are rate limited per source IP
	// on top of the per-account cool-down.
	send := r.Group("/")
	send.Use(ratelimiter.Middleware(sendLimiter))
	{
		// Registration (confirmation email)
		send.POST("/signup", accountHandler.SignUp)
		// Passwordless login link request
		send.POST("/email-login", accountHandler.EmailLogin)
	}

	// Credential login (email or nickname)
	r.POST("/login", accountHandler.Login)
	// Session rotation for persistent sessions
	r.POST("/refresh", accountHandler.Refresh)
	// Confirmation link redemption
	r.GET("/check-email-token", accountHandler.CheckEmailToken)
	// Login link redemption
	r.GET("/login-by-email", accountHandler.LoginByEmail)
	// Public profile
	r.GET("/profile/:nickname", accountHandler.Profile)

	// Routes requiring a valid access token
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/resend-confirm-email", ratelimiter.Middleware(sendLimiter), accountHandler.ResendConfirmEmail)
		auth.POST("/logout", accountHandler.Logout)
	}

	return r
}
