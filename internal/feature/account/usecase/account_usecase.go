package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"studyhub_backend/internal/feature/account/domain/entity"
)

const (
	// minPasswordLength defines the minimum number of password characters.
	minPasswordLength = 8

	// resendCoolDown is the minimum time between successive check-token
	// issuances for the same account.
	resendCoolDown = time.Hour
)

// SignUpInput carries the fields of a sign-up submission.
type SignUpInput struct {
	Email    string
	Nickname string
	Password string
}

// ClientInfo holds request metadata recorded on established sessions.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// AuthResult is returned by every operation that establishes a session.
// The session ID doubles as the persistent "remember me" token.
type AuthResult struct {
	Account     *entity.Account
	Session     *entity.Session
	AccessToken string
}

// AccountUsecase implements the membership and identity business logic:
// registration with email verification, passwordless login links, credential
// login, and session establishment.
type AccountUsecase struct {
	accounts     AccountRepository
	sessions     SessionRepository
	hasher       PasswordHasher
	tokens       TokenSource
	accessTokens AccessTokenGenerator
	notifier     Notifier
	renderer     MessageRenderer
	host         string
}

// NewAccountUsecase creates a new instance of AccountUsecase.
// host is the public base URL used when building email links.
func NewAccountUsecase(
	accounts AccountRepository,
	sessions SessionRepository,
	hasher PasswordHasher,
	tokens TokenSource,
	accessTokens AccessTokenGenerator,
	notifier Notifier,
	renderer MessageRenderer,
	host string,
) *AccountUsecase {
	return &AccountUsecase{
		accounts:     accounts,
		sessions:     sessions,
		hasher:       hasher,
		tokens:       tokens,
		accessTokens: accessTokens,
		notifier:     notifier,
		renderer:     renderer,
		host:         host,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register creates a new account in the pending state, issues a check token
// and dispatches the confirmation email. The email dispatch is best effort:
// a delivery failure is logged but the account stays created.
func (u *AccountUsecase) Register(ctx context.Context, in SignUpInput) (*entity.Account, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := u.tokens.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate check token: %w", err)
	}

	account := &entity.Account{
		Email:                      in.Email,
		Nickname:                   in.Nickname,
		PasswordHash:               hashed,
		EmailCheckToken:            token,
		EmailCheckTokenGeneratedAt: time.Now(),
		// Web notifications default to on, email notifications to off.
		StudyCreatedByWeb:          true,
		StudyEnrollmentResultByWeb: true,
		StudyUpdatedByWeb:          true,
	}
	if err := u.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	u.sendConfirmationMail(ctx, account)
	return account, nil
}

// RedeemToken validates an emailed check token and activates the account.
// Redeeming the current token of an already active account re-confirms and is
// not an error. On success a session is established for the account.
func (u *AccountUsecase) RedeemToken(ctx context.Context, email, token string, client ClientInfo) (*AuthResult, error) {
	account, err := u.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUnknownAccount
	}
	if !account.TokenMatches(token) {
		return nil, ErrTokenMismatch
	}

	if !account.EmailVerified {
		account.CompleteSignUp()
		if err := u.accounts.Save(ctx, account); err != nil {
			return nil, err
		}
	}

	session, access, err := u.Establish(ctx, account, client)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: account, Session: session, AccessToken: access}, nil
}

// CanResend reports whether a new check token may be issued for the account.
// It is true when no token has ever been issued or when the cool-down window
// has elapsed, evaluated at call time.
func (u *AccountUsecase) CanResend(account *entity.Account) bool {
	if account.EmailCheckTokenGeneratedAt.IsZero() {
		return true
	}
	return time.Since(account.EmailCheckTokenGeneratedAt) >= resendCoolDown
}

// remainingCoolDown returns how long until the account may be sent a new
// check token.
func (u *AccountUsecase) remainingCoolDown(account *entity.Account) time.Duration {
	return resendCoolDown - time.Since(account.EmailCheckTokenGeneratedAt)
}

// ResendConfirmation reissues the check token and sends a fresh confirmation
// email. Inside the cool-down window it returns a *ThrottleError carrying the
// remaining wait. Resending for an already verified account is a no-op.
func (u *AccountUsecase) ResendConfirmation(ctx context.Context, accountID uint) error {
	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrUnknownAccount
	}
	if account.EmailVerified {
		slog.Debug("resend skipped, email already verified", "account_id", account.ID)
		return nil
	}
	if !u.CanResend(account) {
		return &ThrottleError{RetryAfter: u.remainingCoolDown(account)}
	}

	if err := u.reissueCheckToken(ctx, account); err != nil {
		return err
	}
	u.sendConfirmationMail(ctx, account)
	return nil
}

// RequestLoginLink issues a fresh check token and mails a passwordless login
// link. It shares the resend cool-down policy with the confirmation flow.
func (u *AccountUsecase) RequestLoginLink(ctx context.Context, email string) error {
	account, err := u.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrUnknownAccount
	}
	if !u.CanResend(account) {
		return &ThrottleError{RetryAfter: u.remainingCoolDown(account)}
	}

	if err := u.reissueCheckToken(ctx, account); err != nil {
		return err
	}
	u.sendLoginLinkMail(ctx, account)
	return nil
}

// RedeemLoginLink validates an emailed login link and establishes a session.
// It deliberately neither requires nor alters the verified state of the
// email: possession of the link is treated as proof of address ownership.
func (u *AccountUsecase) RedeemLoginLink(ctx context.Context, email, token string, client ClientInfo) (*AuthResult, error) {
	account, err := u.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUnknownAccount
	}
	if !account.TokenMatches(token) {
		return nil, ErrTokenMismatch
	}

	session, access, err := u.Establish(ctx, account, client)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: account, Session: session, AccessToken: access}, nil
}

// Login authenticates an account by email or nickname plus password.
// The lookup is an explicit two-step: email first, then nickname. The hash
// comparison always runs so a lookup miss is not observable through timing.
func (u *AccountUsecase) Login(ctx context.Context, username, password string, client ClientInfo) (*AuthResult, error) {
	account, err := u.accounts.FindByEmail(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		if account, err = u.accounts.FindByNickname(ctx, username); err != nil {
			return nil, err
		}
	}

	encoded := ""
	if account != nil {
		encoded = account.PasswordHash
	}
	if !u.hasher.Matches(encoded, password) || account == nil {
		return nil, ErrInvalidCredentials
	}

	session, access, err := u.Establish(ctx, account, client)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: account, Session: session, AccessToken: access}, nil
}

// AccountByNickname returns the account with the given nickname, used for
// public profile pages.
func (u *AccountUsecase) AccountByNickname(ctx context.Context, nickname string) (*entity.Account, error) {
	account, err := u.accounts.FindByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUnknownAccount
	}
	return account, nil
}

// AccountCount returns the total number of registered accounts.
func (u *AccountUsecase) AccountCount(ctx context.Context) (int64, error) {
	return u.accounts.Count(ctx)
}

// reissueCheckToken replaces the account's check token and timestamp,
// invalidating any previously mailed link.
func (u *AccountUsecase) reissueCheckToken(ctx context.Context, account *entity.Account) error {
	token, err := u.tokens.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate check token: %w", err)
	}
	account.EmailCheckToken = token
	account.EmailCheckTokenGeneratedAt = time.Now()
	return u.accounts.Save(ctx, account)
}

// sendConfirmationMail dispatches the sign-up confirmation email.
func (u *AccountUsecase) sendConfirmationMail(ctx context.Context, account *entity.Account) {
	link := fmt.Sprintf("/check-email-token?token=%s&email=%s",
		account.EmailCheckToken, url.QueryEscape(account.Email))
	u.sendLinkMail(ctx, account, "StudyHub, confirm your email address", LinkVars{
		Link:     link,
		LinkName: "Confirm my email address",
		Message:  "Follow the link to verify your email address and finish signing up.",
	})
}

// sendLoginLinkMail dispatches the passwordless login email.
func (u *AccountUsecase) sendLoginLinkMail(ctx context.Context, account *entity.Account) {
	link := fmt.Sprintf("/login-by-email?token=%s&email=%s",
		account.EmailCheckToken, url.QueryEscape(account.Email))
	u.sendLinkMail(ctx, account, "StudyHub, log in with this link", LinkVars{
		Link:     link,
		LinkName: "Log in to StudyHub",
		Message:  "Follow the link to log in without a password.",
	})
}

// sendLinkMail renders and dispatches a link email. Failures are logged and
// never propagated: the account state change preceding the dispatch stands
// regardless of whether the email arrives.
func (u *AccountUsecase) sendLinkMail(ctx context.Context, account *entity.Account, subject string, vars LinkVars) {
	vars.Host = u.host
	vars.Nickname = account.Nickname

	body, err := u.renderer.RenderLink(vars)
	if err != nil {
		slog.Error("failed to render email", "subject", subject, "error", err)
		return
	}
	if err := u.notifier.Send(ctx, account.Email, subject, body); err != nil {
		slog.Error("failed to send email", "subject", subject, "email", account.Email, "error", err)
	}
}
