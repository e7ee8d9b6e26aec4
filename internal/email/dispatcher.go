package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/answerai/answerai/internal/logger"
	"github.com/answerai/answerai/internal/metrics"
)

// Providers accepted in TransportConfig.Provider.
const (
	ProviderSMTP  = "smtp"
	ProviderGmail = "gmail"
)

const defaultTimeout = 30 * time.Second

// TransportConfig describes how and from whom a message is delivered.
type TransportConfig struct {
	Provider    string // "smtp" (default) or "gmail"
	SMTP        SMTPConfig
	Gmail       GmailConfig
	FromAddress string
	FromName    string
	// BaseURL prefixes verification links. Empty yields a relative link.
	BaseURL string
}

func (c TransportConfig) provider() string {
	if c.Provider == "" {
		return ProviderSMTP
	}
	return c.Provider
}

// Outcome classifies a dispatch attempt.
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeConfigInvalid
	OutcomeAuthFailed
	OutcomeTransportFailed
	OutcomeUnknown
	OutcomeNotImplemented
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeConfigInvalid:
		return "config_invalid"
	case OutcomeAuthFailed:
		return "auth_failed"
	case OutcomeTransportFailed:
		return "transport_failed"
	case OutcomeNotImplemented:
		return "not_implemented"
	default:
		return "unknown"
	}
}

// Result is the outcome of one dispatch call. Err carries the cause for
// anything but OutcomeSent.
type Result struct {
	Outcome Outcome
	Err     error
}

// OK reports whether the message was handed to the transport.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSent
}

// SenderFactory builds the Sender for a transport configuration.
type SenderFactory func(ctx context.Context, cfg TransportConfig) (Sender, error)

// NewSender is the default SenderFactory.
func NewSender(ctx context.Context, cfg TransportConfig) (Sender, error) {
	switch cfg.provider() {
	case ProviderSMTP:
		return NewSMTPSender(cfg.SMTP), nil
	case ProviderGmail:
		gc := cfg.Gmail
		gc.SenderAddress = cfg.FromAddress
		return NewGmailSender(ctx, gc)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrConfigInvalid, cfg.Provider)
	}
}

// Dispatcher renders notification emails and makes one delivery attempt per
// call. It never returns an error; failures are logged and reported in the
// Result.
type Dispatcher struct {
	appName   string
	timeout   time.Duration
	newSender SenderFactory
	log       *logger.Logger
}

// NewDispatcher creates a Dispatcher using the default SenderFactory.
func NewDispatcher(appName string, timeout time.Duration, log *logger.Logger) *Dispatcher {
	if appName == "" {
		appName = "AnswerAI"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		appName:   appName,
		timeout:   timeout,
		newSender: NewSender,
		log:       log.WithComponent("email"),
	}
}

// WithSenderFactory returns a copy of d that builds senders with f.
func (d *Dispatcher) WithSenderFactory(f SenderFactory) *Dispatcher {
	cp := *d
	cp.newSender = f
	return &cp
}

// SendVerification emails a verification link for token to the recipient.
func (d *Dispatcher) SendVerification(ctx context.Context, to, token string, cfg TransportConfig) Result {
	if err := validate(cfg); err != nil {
		return d.finish("verification", to, Result{Outcome: OutcomeConfigInvalid, Err: err})
	}

	verifyURL := VerificationURL(cfg.BaseURL, token)
	msg := Message{
		From:     cfg.FromAddress,
		FromName: cfg.FromName,
		To:       to,
		Subject:  VerificationSubject(d.appName),
		HTMLBody: VerificationEmailHTML(verifyURL, d.appName),
		TextBody: VerificationEmailText(verifyURL, d.appName),
	}

	return d.finish("verification", to, d.deliver(ctx, cfg, msg))
}

// SendPasswordReset is not implemented yet. It never contacts the transport
// and always reports OutcomeNotImplemented.
func (d *Dispatcher) SendPasswordReset(_ context.Context, to, _ string, _ TransportConfig) Result {
	return d.finish("password_reset", to, Result{
		Outcome: OutcomeNotImplemented,
		Err:     errors.New("password reset email is not implemented"),
	})
}

func validate(cfg TransportConfig) error {
	if cfg.FromAddress == "" {
		return fmt.Errorf("%w: from address is required", ErrConfigInvalid)
	}
	if cfg.provider() == ProviderSMTP && cfg.SMTP.Host == "" {
		return fmt.Errorf("%w: smtp host is required", ErrConfigInvalid)
	}
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, cfg TransportConfig, msg Message) Result {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errc <- fmt.Errorf("panic during delivery: %v", r)
			}
		}()
		sender, err := d.newSender(ctx, cfg)
		if err != nil {
			errc <- err
			return
		}
		errc <- sender.Send(ctx, msg)
	}()

	var err error
	select {
	case err = <-errc:
	case <-ctx.Done():
		err = fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
	}

	if err == nil {
		return Result{Outcome: OutcomeSent}
	}
	return Result{Outcome: classify(err), Err: err}
}

func classify(err error) Outcome {
	switch {
	case errors.Is(err, ErrConfigInvalid):
		return OutcomeConfigInvalid
	case errors.Is(err, ErrAuthFailed):
		return OutcomeAuthFailed
	case errors.Is(err, ErrTransport), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTransportFailed
	default:
		return OutcomeUnknown
	}
}

func (d *Dispatcher) finish(kind, to string, res Result) Result {
	metrics.EmailsDispatched.WithLabelValues(kind, res.Outcome.String()).Inc()

	switch res.Outcome {
	case OutcomeSent:
		d.log.Info().Str("kind", kind).Str("to", to).Msg("email sent successfully")
	case OutcomeConfigInvalid:
		d.log.Error().Err(res.Err).Str("kind", kind).Str("outcome", res.Outcome.String()).
			Msg("email transport configuration is incomplete, cannot send")
	case OutcomeAuthFailed:
		d.log.Error().Err(res.Err).Str("kind", kind).Str("outcome", res.Outcome.String()).
			Msg("email authentication failed, check username and password")
	case OutcomeTransportFailed:
		d.log.Error().Err(res.Err).Str("kind", kind).Str("to", to).Str("outcome", res.Outcome.String()).
			Msg("email transport error")
	case OutcomeNotImplemented:
		d.log.Warn().Str("kind", kind).Str("outcome", res.Outcome.String()).
			Msg("email kind is not implemented, nothing sent")
	default:
		d.log.Error().Err(res.Err).Str("kind", kind).Str("to", to).Str("outcome", res.Outcome.String()).
			Msg("unexpected error sending email")
	}
	return res
}
