package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/answerai/answerai/internal/auth"
	"github.com/answerai/answerai/internal/config"
	"github.com/answerai/answerai/internal/email"
	"github.com/answerai/answerai/internal/logger"
	"github.com/answerai/answerai/internal/model"
	"github.com/answerai/answerai/internal/repository"
)

type fakeStore struct {
	tokens  map[string]string // user id -> token hash
	setErr  error
	cleared []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{tokens: make(map[string]string)}
}

func (f *fakeStore) SetVerificationToken(ctx context.Context, id, tokenHash string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.tokens[id] = tokenHash
	return nil
}

func (f *fakeStore) ClearVerificationToken(ctx context.Context, id string) error {
	delete(f.tokens, id)
	f.cleared = append(f.cleared, id)
	return nil
}

func (f *fakeStore) VerifyByToken(ctx context.Context, tokenHash string) (string, error) {
	for id, h := range f.tokens {
		if h == tokenHash {
			delete(f.tokens, id)
			return id, nil
		}
	}
	return "", repository.ErrNotFound
}

type fakeCooldowns struct {
	keys map[string]bool
}

func (f *fakeCooldowns) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeCooldowns) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.keys, k)
	}
	return nil
}

type fakeMailer struct {
	result email.Result
	to     string
	token  string
	cfg    email.TransportConfig
	calls  int
}

func (f *fakeMailer) SendVerification(ctx context.Context, to, token string, cfg email.TransportConfig) email.Result {
	f.calls++
	f.to, f.token, f.cfg = to, token, cfg
	return f.result
}

func testConfig() *config.Config {
	return &config.Config{
		Email: config.EmailConfig{
			Provider: "smtp",
			BaseURL:  "https://answer.example.com",
			SMTP: config.SMTPEmailConfig{
				Host:        "smtp.example.com",
				Port:        587,
				FromAddress: "noreply@answer.example.com",
				UseTLS:      true,
			},
		},
		EmailVerification: config.EmailVerificationConfig{Enabled: true, ResendCooldown: time.Minute},
	}
}

type fixture struct {
	svc       *VerificationService
	store     *fakeStore
	cooldowns *fakeCooldowns
	mailer    *fakeMailer
}

func newFixture(cfg *config.Config) *fixture {
	f := &fixture{
		store:     newFakeStore(),
		cooldowns: &fakeCooldowns{keys: make(map[string]bool)},
		mailer:    &fakeMailer{result: email.Result{Outcome: email.OutcomeSent}},
	}
	f.svc = NewVerificationService(f.store, f.cooldowns, f.mailer, cfg, logger.Nop())
	return f
}

func unverifiedUser() *model.User {
	return &model.User{ID: "user-1", Email: "a@b.com"}
}

func TestRequestVerification_IssuesAndVerifies(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()

	require.NoError(t, f.svc.RequestVerification(ctx, unverifiedUser()))

	assert.Equal(t, 1, f.mailer.calls)
	assert.Equal(t, "a@b.com", f.mailer.to)
	assert.Len(t, f.mailer.token, 64)
	assert.Equal(t, "smtp.example.com", f.mailer.cfg.SMTP.Host)
	assert.Equal(t, "https://answer.example.com", f.mailer.cfg.BaseURL)

	// Only the hash is stored.
	assert.Equal(t, auth.HashToken(f.mailer.token), f.store.tokens["user-1"])

	require.NoError(t, f.svc.Verify(ctx, f.mailer.token))
	assert.ErrorIs(t, f.svc.Verify(ctx, f.mailer.token), ErrInvalidToken, "tokens are single use")
}

func TestRequestVerification_Cooldown(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()

	require.NoError(t, f.svc.RequestVerification(ctx, unverifiedUser()))
	assert.ErrorIs(t, f.svc.RequestVerification(ctx, unverifiedUser()), ErrTooManyResendAttempts)
	assert.Equal(t, 1, f.mailer.calls)
}

func TestRequestVerification_DeliveryFailure(t *testing.T) {
	f := newFixture(testConfig())
	f.mailer.result = email.Result{Outcome: email.OutcomeAuthFailed, Err: email.ErrAuthFailed}
	ctx := context.Background()

	err := f.svc.RequestVerification(ctx, unverifiedUser())
	require.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "auth_failed")

	assert.Empty(t, f.store.tokens, "undelivered token is cleared")
	assert.Empty(t, f.cooldowns.keys, "cooldown is released")

	f.mailer.result = email.Result{Outcome: email.OutcomeSent}
	assert.NoError(t, f.svc.RequestVerification(ctx, unverifiedUser()))
}

func TestRequestVerification_StoreFailure(t *testing.T) {
	f := newFixture(testConfig())
	f.store.setErr = errors.New("db down")

	err := f.svc.RequestVerification(context.Background(), unverifiedUser())
	assert.Error(t, err)
	assert.Zero(t, f.mailer.calls)
	assert.Empty(t, f.cooldowns.keys)
}

func TestRequestVerification_Guards(t *testing.T) {
	f := newFixture(testConfig())
	verified := unverifiedUser()
	verified.EmailVerified = true
	assert.ErrorIs(t, f.svc.RequestVerification(context.Background(), verified), ErrEmailAlreadyVerified)

	cfg := testConfig()
	cfg.EmailVerification.Enabled = false
	disabled := newFixture(cfg)
	assert.ErrorIs(t, disabled.svc.RequestVerification(context.Background(), unverifiedUser()), ErrVerificationDisabled)
	assert.ErrorIs(t, disabled.svc.Verify(context.Background(), "abc"), ErrVerificationDisabled)
}

func TestVerify_UnknownToken(t *testing.T) {
	f := newFixture(testConfig())
	assert.ErrorIs(t, f.svc.Verify(context.Background(), "nope"), ErrInvalidToken)
	assert.ErrorIs(t, f.svc.Verify(context.Background(), ""), ErrInvalidToken)
}

func TestTransportConfig(t *testing.T) {
	cfg := testConfig().Email
	cfg.SMTP.Username = "user"
	cfg.SMTP.Password = "pass"
	cfg.SMTP.FromName = "AnswerAI"

	tc := TransportConfig(cfg)
	assert.Equal(t, "smtp", tc.Provider)
	assert.Equal(t, "smtp.example.com", tc.SMTP.Host)
	assert.Equal(t, 587, tc.SMTP.Port)
	assert.Equal(t, "user", tc.SMTP.Username)
	assert.True(t, tc.SMTP.UseTLS)
	assert.Equal(t, "noreply@answer.example.com", tc.FromAddress)
	assert.Equal(t, "AnswerAI", tc.FromName)
}
