package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTP is a single-connection SMTP server speaking just enough of the
// protocol for net/smtp and gomail.
type fakeSMTP struct {
	ln        net.Listener
	authReply string
	received  chan string
}

func startFakeSMTP(t *testing.T, authReply string) *fakeSMTP {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	f := &fakeSMTP{ln: ln, authReply: authReply, received: make(chan string, 1)}
	go f.serve()
	return f
}

func (f *fakeSMTP) port() int {
	return f.ln.Addr().(*net.TCPAddr).Port
}

func (f *fakeSMTP) serve() {
	conn, err := f.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP fake")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		cmd := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(cmd, "EHLO"):
			_ = tp.PrintfLine("250-localhost")
			_ = tp.PrintfLine("250 AUTH PLAIN")
		case strings.HasPrefix(cmd, "HELO"):
			_ = tp.PrintfLine("250 localhost")
		case strings.HasPrefix(cmd, "AUTH"):
			_ = tp.PrintfLine("%s", f.authReply)
		case cmd == "*":
			_ = tp.PrintfLine("501 authentication cancelled")
		case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
			_ = tp.PrintfLine("250 OK")
		case cmd == "DATA":
			_ = tp.PrintfLine("354 go ahead")
			data, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			f.received <- string(data)
			_ = tp.PrintfLine("250 queued")
		case cmd == "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 not implemented")
		}
	}
}

func testMessage() Message {
	return Message{
		From:     "noreply@answer.example.com",
		FromName: "AnswerAI",
		To:       "a@b.com",
		Subject:  "Hello",
		TextBody: "plain body",
		HTMLBody: "<p>html body</p>",
	}
}

func TestSMTPSender_Send(t *testing.T) {
	srv := startFakeSMTP(t, "235 2.7.0 accepted")

	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: srv.port()})
	require.NoError(t, s.Send(context.Background(), testMessage()))

	select {
	case data := <-srv.received:
		assert.Contains(t, data, "Subject: Hello")
		assert.Contains(t, data, "multipart/alternative")
		assert.Contains(t, data, "text/plain")
		assert.Contains(t, data, "text/html")
	case <-time.After(5 * time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestSMTPSender_SendWithAuth(t *testing.T) {
	srv := startFakeSMTP(t, "235 2.7.0 accepted")

	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: srv.port(), Username: "user", Password: "secret"})
	assert.NoError(t, s.Send(context.Background(), testMessage()))
}

func TestSMTPSender_AuthRejected(t *testing.T) {
	srv := startFakeSMTP(t, "535 5.7.8 authentication credentials invalid")

	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: srv.port(), Username: "user", Password: "wrong"})
	err := s.Send(context.Background(), testMessage())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.NotErrorIs(t, err, ErrTransport)
}

func TestSMTPSender_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port})
	err = s.Send(context.Background(), testMessage())

	assert.ErrorIs(t, err, ErrTransport)
}

func TestSMTPSender_MissingHost(t *testing.T) {
	err := NewSMTPSender(SMTPConfig{}).Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestSMTPSender_RequiresStartTLSWhenRequested(t *testing.T) {
	srv := startFakeSMTP(t, "235 2.7.0 accepted")

	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: srv.port(), UseTLS: true, Username: "user", Password: "secret"})
	err := s.Send(context.Background(), testMessage())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "STARTTLS")

	select {
	case <-srv.received:
		t.Fatal("message must not be sent without the requested TLS upgrade")
	case <-time.After(200 * time.Millisecond):
	}
}

// startStalledSMTP accepts connections and never greets.
func startStalledSMTP(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	return ln.Addr().(*net.TCPAddr).Port
}

func TestSMTPSender_StalledServerHonorsDeadline(t *testing.T) {
	port := startStalledSMTP(t)
	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Send(ctx, testMessage()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(3 * time.Second):
		t.Fatal("Send did not return after the context deadline")
	}
}

func TestSMTPSender_CancelClosesSession(t *testing.T) {
	port := startStalledSMTP(t)
	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Send(ctx, testMessage()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("Send did not return after cancellation")
	}
}

func TestClassifyAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"rejected credentials", &textproto.Error{Code: 535, Msg: "bad credentials"}, ErrAuthFailed},
		{"auth required", &textproto.Error{Code: 530, Msg: "auth required"}, ErrAuthFailed},
		{"local refusal", errors.New("unencrypted connection"), ErrAuthFailed},
		{"connection dropped", io.EOF, ErrTransport},
		{"closed", net.ErrClosed, ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyAuthError(tt.err), tt.want)
		})
	}
}

func TestBuildMessage(t *testing.T) {
	var buf bytes.Buffer
	_, err := buildMessage(testMessage()).WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "noreply@answer.example.com")
	assert.Contains(t, raw, "To: a@b.com")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Less(t, strings.Index(raw, "text/plain"), strings.Index(raw, "text/html"))
}
