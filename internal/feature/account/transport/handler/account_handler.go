// Package handler provides the HTTP handlers for the account feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyhub_backend/internal/feature/account/domain/entity"
	"studyhub_backend/internal/feature/account/transport/http/dto"
	"studyhub_backend/internal/feature/account/usecase"
	jwtmw "studyhub_backend/internal/platform/jwt"
)

// genericAuthFailure is rendered for unknown accounts and token mismatches
// alike, so responses don't reveal which emails are registered.
const genericAuthFailure = "invalid email or token"

// AccountUsecase defines the identity operations consumed by the handlers.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type AccountUsecase interface {
	Register(ctx context.Context, in usecase.SignUpInput) (*entity.Account, error)
	Establish(ctx context.Context, account *entity.Account, client usecase.ClientInfo) (*entity.Session, string, error)
	RedeemToken(ctx context.Context, email, token string, client usecase.ClientInfo) (*usecase.AuthResult, error)
	ResendConfirmation(ctx context.Context, accountID uint) error
	RequestLoginLink(ctx context.Context, email string) error
	RedeemLoginLink(ctx context.Context, email, token string, client usecase.ClientInfo) (*usecase.AuthResult, error)
	Login(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.AuthResult, error)
	Refresh(ctx context.Context, sessionID string, client usecase.ClientInfo) (*usecase.AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	AccountByNickname(ctx context.Context, nickname string) (*entity.Account, error)
	AccountCount(ctx context.Context) (int64, error)
}

// AccountHandler handles the HTTP requests of the membership surface.
type AccountHandler struct {
	accounts AccountUsecase
}

// NewAccountHandler creates a new instance of AccountHandler.
func NewAccountHandler(accounts AccountUsecase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// clientInfo extracts the session client metadata from the request.
func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// SignUp handles the registration endpoint. The new account is logged in
// right away; email confirmation happens later through the mailed link.
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req dto.SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), usecase.SignUpInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateIdentity) {
			// Correctable by the user, so reported as-is
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: err.Error()})
			return
		}
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "signup failed"})
		return
	}

	session, access, err := h.accounts.Establish(c.Request.Context(), account, clientInfo(c))
	if err != nil {
		slog.Error("failed to establish session after signup", "error", err, "account_id", account.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "signup failed"})
		return
	}

	slog.Info("account signup successful", "nickname", account.Nickname, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{
		Nickname:     account.Nickname,
		AccessToken:  access,
		SessionToken: session.ID,
	})
}

// CheckEmailToken redeems a mailed confirmation link. Unknown accounts and
// token mismatches render the same message class.
func (h *AccountHandler) CheckEmailToken(c *gin.Context) {
	email := c.Query("email")
	token := c.Query("token")

	result, err := h.accounts.RedeemToken(c.Request.Context(), email, token, clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownAccount) || errors.Is(err, usecase.ErrTokenMismatch) {
			slog.Warn("email check failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: genericAuthFailure})
			return
		}
		slog.Error("email check failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "email check failed"})
		return
	}

	count, err := h.accounts.AccountCount(c.Request.Context())
	if err != nil {
		slog.Warn("failed to count accounts", "error", err)
	}

	slog.Info("email confirmed", "nickname", result.Account.Nickname)
	c.JSON(http.StatusOK, dto.CheckedEmailRes{
		Nickname:      result.Account.Nickname,
		NumberOfUsers: count,
		AccessToken:   result.AccessToken,
		SessionToken:  result.Session.ID,
	})
}

// ResendConfirmEmail reissues the confirmation email for the authenticated
// account, subject to the cool-down window.
func (h *AccountHandler) ResendConfirmEmail(c *gin.Context) {
	accountID := c.GetUint(jwtmw.ContextAccountID)

	err := h.accounts.ResendConfirmation(c.Request.Context(), accountID)
	if err != nil {
		var throttle *usecase.ThrottleError
		if errors.As(err, &throttle) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorRes{Error: throttle.Error()})
			return
		}
		if errors.Is(err, usecase.ErrUnknownAccount) {
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid token"})
			return
		}
		slog.Error("resend confirmation failed", "error", err, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "resend failed"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "confirmation email sent"})
}

// EmailLogin requests a passwordless login link. Unknown addresses get the
// same response as known ones so the endpoint can't be used for enumeration.
func (h *AccountHandler) EmailLogin(c *gin.Context) {
	var req dto.EmailLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	err := h.accounts.RequestLoginLink(c.Request.Context(), req.Email)
	if err != nil {
		var throttle *usecase.ThrottleError
		if errors.As(err, &throttle) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorRes{Error: throttle.Error()})
			return
		}
		if !errors.Is(err, usecase.ErrUnknownAccount) {
			slog.Error("login link request failed", "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "login link request failed"})
			return
		}
		slog.Warn("login link requested for unknown email", "remote_addr", c.ClientIP())
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "if the address is registered, a login link has been sent"})
}

// LoginByEmail redeems a mailed login link and establishes a session.
func (h *AccountHandler) LoginByEmail(c *gin.Context) {
	email := c.Query("email")
	token := c.Query("token")

	result, err := h.accounts.RedeemLoginLink(c.Request.Context(), email, token, clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownAccount) || errors.Is(err, usecase.ErrTokenMismatch) {
			slog.Warn("login link redemption failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: genericAuthFailure})
			return
		}
		slog.Error("login link redemption failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "login failed"})
		return
	}

	slog.Info("account logged in by email link", "nickname", result.Account.Nickname)
	c.JSON(http.StatusOK, dto.AuthRes{
		Nickname:     result.Account.Nickname,
		AccessToken:  result.AccessToken,
		SessionToken: result.Session.ID,
	})
}

// Login handles credential login with email or nickname.
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password, clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: usecase.ErrInvalidCredentials.Error()})
			return
		}
		slog.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "login failed"})
		return
	}

	slog.Info("account login successful", "nickname", result.Account.Nickname, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{
		Nickname:     result.Account.Nickname,
		AccessToken:  result.AccessToken,
		SessionToken: result.Session.ID,
	})
}

// Refresh rotates a persistent session and issues a fresh access token.
func (h *AccountHandler) Refresh(c *gin.Context) {
	var req dto.SessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	result, err := h.accounts.Refresh(c.Request.Context(), req.SessionToken, clientInfo(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSessionNotFound),
			errors.Is(err, usecase.ErrSessionRevoked),
			errors.Is(err, usecase.ErrSessionExpired),
			errors.Is(err, usecase.ErrUnknownAccount):
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid session"})
		default:
			slog.Error("session refresh failed", "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AuthRes{
		Nickname:     result.Account.Nickname,
		AccessToken:  result.AccessToken,
		SessionToken: result.Session.ID,
	})
}

// Logout revokes the presented session.
func (h *AccountHandler) Logout(c *gin.Context) {
	var req dto.SessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	if err := h.accounts.Logout(c.Request.Context(), req.SessionToken); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
		slog.Error("logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "logout failed"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "logged out"})
}

// Profile returns the public profile of an account by nickname.
func (h *AccountHandler) Profile(c *gin.Context) {
	nickname := c.Param("nickname")

	account, err := h.accounts.AccountByNickname(c.Request.Context(), nickname)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownAccount) {
			c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "no such account"})
			return
		}
		slog.Error("profile lookup failed", "error", err, "nickname", nickname)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "profile lookup failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ProfileRes{
		Nickname:      account.Nickname,
		Bio:           account.Bio,
		URL:           account.URL,
		Occupation:    account.Occupation,
		Location:      account.Location,
		EmailVerified: account.EmailVerified,
		JoinedAt:      account.JoinedAt,
	})
}
