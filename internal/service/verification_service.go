package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/answerai/answerai/internal/auth"
	"github.com/answerai/answerai/internal/config"
	"github.com/answerai/answerai/internal/email"
	"github.com/answerai/answerai/internal/logger"
	"github.com/answerai/answerai/internal/model"
	"github.com/answerai/answerai/internal/repository"
)

// Email verification errors
var (
	ErrVerificationDisabled  = errors.New("email verification is not enabled")
	ErrInvalidToken          = errors.New("invalid or already used verification token")
	ErrTooManyResendAttempts = errors.New("too many resend attempts, please wait")
	ErrEmailAlreadyVerified  = errors.New("email is already verified")
	ErrDeliveryFailed        = errors.New("verification email could not be delivered")
)

const resendCooldownPrefix = "email_verify_resend:"

// VerificationStore persists verification tokens on the user row.
type VerificationStore interface {
	SetVerificationToken(ctx context.Context, id, tokenHash string) error
	ClearVerificationToken(ctx context.Context, id string) error
	VerifyByToken(ctx context.Context, tokenHash string) (string, error)
}

// CooldownStore rate-limits verification emails per user.
type CooldownStore interface {
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// VerificationMailer delivers verification emails.
type VerificationMailer interface {
	SendVerification(ctx context.Context, to, token string, cfg email.TransportConfig) email.Result
}

// VerificationService issues and consumes email verification tokens.
type VerificationService struct {
	users     VerificationStore
	cooldowns CooldownStore
	mailer    VerificationMailer
	transport email.TransportConfig
	cfg       config.EmailVerificationConfig
	log       *logger.Logger
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(
	users VerificationStore,
	cooldowns CooldownStore,
	mailer VerificationMailer,
	cfg *config.Config,
	log *logger.Logger,
) *VerificationService {
	return &VerificationService{
		users:     users,
		cooldowns: cooldowns,
		mailer:    mailer,
		transport: TransportConfig(cfg.Email),
		cfg:       cfg.EmailVerification,
		log:       log.WithComponent("email_verification"),
	}
}

// TransportConfig maps email configuration onto the dispatcher's transport settings.
func TransportConfig(cfg config.EmailConfig) email.TransportConfig {
	return email.TransportConfig{
		Provider: cfg.Provider,
		SMTP: email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			UseTLS:   cfg.SMTP.UseTLS,
			SSL:      cfg.SMTP.SSL,
		},
		Gmail: email.GmailConfig{
			CredentialsJSON: cfg.Gmail.CredentialsJSON,
			ClientID:        cfg.Gmail.ClientID,
			ClientSecret:    cfg.Gmail.ClientSecret,
			RefreshToken:    cfg.Gmail.RefreshToken,
		},
		FromAddress: cfg.SMTP.FromAddress,
		FromName:    cfg.SMTP.FromName,
		BaseURL:     cfg.BaseURL,
	}
}

// RequestVerification issues a new token for the user and emails the link.
// Any previously issued token stops working.
func (s *VerificationService) RequestVerification(ctx context.Context, user *model.User) error {
	if !s.cfg.Enabled {
		return ErrVerificationDisabled
	}
	if user.EmailVerified {
		return ErrEmailAlreadyVerified
	}

	cooldown := s.cfg.ResendCooldown
	if cooldown == 0 {
		cooldown = 60 * time.Second
	}
	cooldownKey := resendCooldownPrefix + user.ID
	acquired, err := s.cooldowns.SetNX(ctx, cooldownKey, "1", cooldown)
	if err != nil {
		return fmt.Errorf("failed to check resend cooldown: %w", err)
	}
	if !acquired {
		return ErrTooManyResendAttempts
	}

	token, err := auth.GenerateVerificationToken()
	if err != nil {
		_ = s.cooldowns.Delete(ctx, cooldownKey)
		return err
	}

	if user.HasPendingVerification() {
		s.log.Debug().Str("user_id", user.ID).Msg("replacing outstanding verification token")
	}
	if err := s.users.SetVerificationToken(ctx, user.ID, auth.HashToken(token)); err != nil {
		_ = s.cooldowns.Delete(ctx, cooldownKey)
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	res := s.mailer.SendVerification(ctx, user.Email, token, s.transport)
	if !res.OK() {
		// Let the user retry immediately; the stored token is useless without the email.
		_ = s.cooldowns.Delete(ctx, cooldownKey)
		if err := s.users.ClearVerificationToken(ctx, user.ID); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to clear undelivered verification token")
		}
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, res.Outcome)
	}

	s.log.Info().Str("user_id", user.ID).Msg("verification email issued")
	return nil
}

// Verify consumes token and marks its owner's email as verified.
func (s *VerificationService) Verify(ctx context.Context, token string) error {
	if !s.cfg.Enabled {
		return ErrVerificationDisabled
	}
	if token == "" {
		return ErrInvalidToken
	}

	userID, err := s.users.VerifyByToken(ctx, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to verify email: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("email verified successfully")
	return nil
}
