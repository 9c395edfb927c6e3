package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/secondbrain/brain-client/internal/domain"
	domainerrors "github.com/secondbrain/brain-client/internal/errors"
	"github.com/secondbrain/brain-client/internal/gateway"
	"github.com/secondbrain/brain-client/internal/notice"
	"github.com/secondbrain/brain-client/internal/validation"
)

// LogoutMessage confirms a logout.
const LogoutMessage = "Logged out successfully!"

// AccountAPI is the slice of the gateway the session flows need.
type AccountAPI interface {
	Signup(ctx context.Context, creds domain.Credentials) (domain.MessageResult, error)
	Signin(ctx context.Context, creds domain.Credentials) (domain.SigninResult, error)
}

// TokenStore persists the session token.
type TokenStore interface {
	Set(token string) error
	Clear()
	IsAuthenticated() bool
}

// AuthService handles signup, signin and logout against the remote API.
type AuthService struct {
	api       AccountAPI
	tokens    TokenStore
	validator *validation.Validator
	notifier  notice.Notifier
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	api AccountAPI,
	tokens TokenStore,
	validator *validation.Validator,
	notifier notice.Notifier,
	logger *slog.Logger,
) *AuthService {
	if notifier == nil {
		notifier = notice.Discard
	}
	return &AuthService{
		api:       api,
		tokens:    tokens,
		validator: validator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Signup registers a new account and returns the backend's message.
func (s *AuthService) Signup(ctx context.Context, creds domain.Credentials) (string, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := s.validator.Validate(creds); err != nil {
		return "", err
	}

	res, err := s.api.Signup(ctx, creds)
	if err != nil {
		s.logger.Warn("signup failed", "username", creds.Username, "error", err)
		return "", domainerrors.API(gateway.Message(err, gateway.SignupFailureMessage)).WithCause(err)
	}

	s.logger.Info("account created", "username", creds.Username)
	return res.Message, nil
}

// Signin exchanges credentials for a token and stores it. A response
// without a token counts as a failure.
func (s *AuthService) Signin(ctx context.Context, creds domain.Credentials) (string, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := s.validator.Validate(creds); err != nil {
		return "", err
	}

	res, err := s.api.Signin(ctx, creds)
	if err != nil {
		s.logger.Warn("signin failed", "username", creds.Username, "error", err)
		return "", domainerrors.API(gateway.Message(err, gateway.SigninFailureMessage)).WithCause(err)
	}
	if strings.TrimSpace(res.Token) == "" {
		msg := res.Message
		if msg == "" {
			msg = gateway.SigninFailureMessage
		}
		return "", domainerrors.Unauthorized(msg)
	}

	if err := s.tokens.Set(res.Token); err != nil {
		return "", err
	}

	s.logger.Info("signed in", "username", creds.Username)
	return res.Message, nil
}

// Logout forgets the token.
func (s *AuthService) Logout() {
	s.tokens.Clear()
	s.logger.Info("signed out")
	s.notifier.Notify(notice.Info(LogoutMessage))
}

// Authenticated reports whether a session token is stored.
func (s *AuthService) Authenticated() bool {
	return s.tokens.IsAuthenticated()
}
