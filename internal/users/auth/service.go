// Copyright (c) 2026 ScoreHub. All rights reserved.

/*
Package auth implements passwordless signup and token issuance.

A user registers with a username and email, receives a confirmation code by
mail, and exchanges it for a refresh/access token pair. Identity is proven by
inbox ownership; no password ever exists.

Architecture:

  - Service: orchestrates signup, token exchange, and refresh rotation.
  - UserRepository (Postgres): account rows.
  - SessionRepository (Redis): refresh sessions, expired by TTL.
  - sec.CodeGenerator: state-derived confirmation codes, never stored.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scorehub/scorehub/internal/platform/apperr"
	"github.com/scorehub/scorehub/internal/platform/constants"
	"github.com/scorehub/scorehub/internal/platform/mail"
	"github.com/scorehub/scorehub/internal/platform/sec"
	"github.com/scorehub/scorehub/internal/platform/validate"
)

// mailSendTimeout bounds the async SMTP delivery attempt.
const mailSendTimeout = 15 * time.Second

// TokenProvider defines the contract for minting access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT for the given actor.
	GenerateAccessToken(actor *sec.Actor, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token use cases.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	resendThrottle    ResendThrottle
	codeGenerator     *sec.CodeGenerator
	tokenProvider     TokenProvider
	mailer            mail.Mailer
	logger            *slog.Logger
}

// NewService constructs an auth [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	throttle ResendThrottle,
	codes *sec.CodeGenerator,
	tokenProv TokenProvider,
	mailer mail.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		resendThrottle:    throttle,
		codeGenerator:     codes,
		tokenProvider:     tokenProv,
		mailer:            mailer,
		logger:            logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to register or re-request a code.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Signup registers a new account or re-issues a confirmation code.

Description: An exact (username, email) match is treated as the same person
asking again, so the code is resent. A taken username under a different email
is a validation failure. Anything else, including a reused email with a fresh
username, creates a new account with the default role.

Returns:
  - created: true when a new account was created, false on a resend
  - err: validation failures or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (created bool, err error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).Username(FieldUsername, input.Username)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	if err := validator.Err(); err != nil {
		return false, err
	}

	// Exact pair match: same person, resend the code.
	existing, err := service.userRepository.FindByPair(context, input.Username, input.Email)
	if err == nil {
		service.resendCode(context, existing)
		return false, nil
	}
	if !apperr.IsNotFound(err) {
		return false, err
	}

	user := &User{
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}

	// Uniqueness lives in the database; only the username is unique, so a
	// clash here means it is taken under a different email.
	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsConflict(err) {
			return false, apperr.ValidationError("Username is already taken")
		}
		return false, err
	}

	service.sendCodeAsync(user)
	service.logger.Info("user_signed_up", slog.Int64("user_id", user.ID), slog.String("username", user.Username))
	return true, nil
}

// resendCode re-issues a code for an existing account, subject to the
// per-username throttle window.
func (service *Service) resendCode(context context.Context, user *User) {
	allowed, err := service.resendThrottle.Allow(context, user.Username, constants.SignupResendWindow)
	if err != nil {
		service.logger.Error("resend_throttle_failed", slog.String("error", err.Error()))
		// Throttle storage trouble should not block a legitimate resend.
		allowed = true
	}
	if !allowed {
		service.logger.Warn("resend_throttled", slog.String("username", user.Username))
		return
	}

	service.sendCodeAsync(user)
	service.logger.Info("confirmation_code_resent", slog.Int64("user_id", user.ID))
}

// sendCodeAsync derives the confirmation code and mails it without blocking
// the HTTP response. Delivery failures are logged, never surfaced.
func (service *Service) sendCodeAsync(user *User) {
	code, err := service.codeGenerator.Make(user.State())
	if err != nil {
		service.logger.Error("confirmation_code_derive_failed",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	email := user.Email
	userID := user.ID
	go func() {
		// Detached context: delivery must outlive the originating request.
		sendContext, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()

		body := fmt.Sprintf("Confirmation code: %s", code)
		if err := service.mailer.Send(sendContext, email, "Confirmation code from ScoreHub", body); err != nil {
			service.logger.Error("confirmation_mail_failed",
				slog.Int64("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// # Token Exchange

// TokenInput holds the confirmation-code exchange payload.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// TokenPair is the issued credential pair. Its JSON shape is a compatibility
// contract and is written without the response envelope.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

/*
IssueTokens exchanges a confirmation code for a refresh/access pair.

Description: An unknown username is NOT_FOUND; a wrong code is a generic
BAD_REQUEST with no hint about which part failed. On success last_login_at is
stamped, which rotates the user-state fingerprint and retires every
previously issued code.
*/
func (service *Service) IssueTokens(context context.Context, input TokenInput) (*TokenPair, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	if !service.codeGenerator.Check(user.State(), input.ConfirmationCode) {
		return nil, apperr.BadRequest("Invalid confirmation code")
	}

	stamped, err := service.userRepository.StampLastLogin(context, user.ID)
	if err != nil {
		return nil, err
	}
	user.LastLoginAt = &stamped

	pair, err := service.mintPair(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("tokens_issued", slog.Int64("user_id", user.ID))
	return pair, nil
}

/*
RefreshTokens implements refresh-token rotation.

Description: The presented token is resolved, revoked to prevent replay, and
replaced with a brand-new pair. Any resolution failure is a generic 401.
*/
func (service *Service) RefreshTokens(context context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, validate.RequiredError(FieldRefresh, "This field is required")
	}

	tokenHash := sec.HashToken(refreshToken)
	userID, err := service.sessionRepository.Get(context, tokenHash)
	if err != nil {
		return nil, err
	}

	// Rotation: the old session dies before the new one is born.
	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	pair, err := service.mintPair(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("tokens_refreshed", slog.Int64("user_id", user.ID))
	return pair, nil
}

// mintPair creates a refresh session and a signed access token.
func (service *Service) mintPair(context context.Context, user *User) (*TokenPair, error) {
	refreshToken, err := sec.GenerateSecureToken(constants.RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_refresh_token_failed: %w", err)
	}

	if err := service.sessionRepository.Set(context, sec.HashToken(refreshToken), user.ID, constants.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_session_creation_failed: %w", err)
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.Actor(), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_access_token_failed: %w", err)
	}

	return &TokenPair{Refresh: refreshToken, Access: accessToken}, nil
}
