package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the configuration for the SMTP email sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// UseTLS upgrades the session with STARTTLS before authenticating.
	UseTLS bool
	// SSL dials with implicit TLS.
	SSL bool
}

const dialTimeout = 10 * time.Second

// SMTPSender implements Sender over an SMTP session.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a new SMTPSender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send dials the server, upgrades with STARTTLS when UseTLS is set,
// authenticates when both username and password are set, and transmits msg.
// The connection is bound to ctx: its deadline becomes the socket deadline and
// cancellation closes the socket.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("%w: smtp host is required", ErrConfigInvalid)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	err = s.session(conn, msg)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ErrTransport, ctxErr)
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return fmt.Errorf("%w: %w", ErrTransport, context.DeadlineExceeded)
	}
	return err
}

func (s *SMTPSender) session(conn net.Conn, msg Message) error {
	tlsConfig := &tls.Config{ServerName: s.cfg.Host}
	if s.cfg.SSL {
		conn = tls.Client(conn, tlsConfig)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer c.Close()

	if s.cfg.UseTLS && !s.cfg.SSL {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			return fmt.Errorf("%w: server does not support STARTTLS", ErrTransport)
		}
		if err := c.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("%w: starttls: %w", ErrTransport, err)
		}
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		if ok, _ := c.Extension("AUTH"); !ok {
			return fmt.Errorf("%w: server does not support AUTH", ErrAuthFailed)
		}
		if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return classifyAuthError(err)
		}
	}

	if err := gomail.Send(gomail.SendFunc(func(from string, to []string, m io.WriterTo) error {
		return transmit(c, from, to, m)
	}), buildMessage(msg)); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if err := c.Quit(); err != nil {
		return fmt.Errorf("%w: quit: %w", ErrTransport, err)
	}
	return nil
}

func transmit(c *smtp.Client, from string, to []string, m io.WriterTo) error {
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, addr := range to {
		if err := c.Rcpt(addr); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := m.WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// classifyAuthError maps an error from the AUTH exchange. Server replies and
// local refusals are credential problems; a broken connection is not.
func classifyAuthError(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		return fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return fmt.Errorf("%w: %w", ErrAuthFailed, err)
}

// buildMessage composes msg as multipart/alternative with the plain-text part
// first.
func buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	if msg.FromName != "" {
		m.SetAddressHeader("From", msg.From, msg.FromName)
	} else {
		m.SetHeader("From", msg.From)
	}
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}
	return m
}
