package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

const (
	// submissionPort is the STARTTLS fallback port when the configured
	// implicit-TLS port won't connect.
	submissionPort = 587

	dialTimeout = 10 * time.Second
)

// SMTPSender delivers mail through an authenticated SMTP account. It dials
// the configured port with implicit TLS first; when that connection cannot
// be established at all, it retries once as STARTTLS on the submission
// port. Authentication and protocol failures are returned as-is, not
// retried on another port.
type SMTPSender struct {
	host     string
	port     int
	address  string
	password string
}

// NewSMTPSender creates an SMTPSender. address doubles as the SMTP
// username and the From header.
func NewSMTPSender(host string, port int, address, password string) *SMTPSender {
	return &SMTPSender{host: host, port: port, address: address, password: password}
}

// Send delivers one plain-text email to a single recipient.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg, err := buildMessage(s.address, to, subject, body)
	if err != nil {
		return fmt.Errorf("mail: %w", err)
	}

	err = s.deliver(ctx, msg, s.port, true)
	if err == nil {
		return nil
	}
	if !isConnectionError(err) {
		return fmt.Errorf("mail: %w", err)
	}

	if err := s.deliver(ctx, msg, submissionPort, false); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	return nil
}

func (s *SMTPSender) deliver(ctx context.Context, msg *gomail.Msg, port int, implicitTLS bool) error {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.address),
		gomail.WithPassword(s.password),
		gomail.WithTimeout(dialTimeout),
	}
	if implicitTLS {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func buildMessage(from, to, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return msg, nil
}

// isConnectionError reports whether err is a transport-level failure worth
// retrying on the submission port, as opposed to an authentication or
// protocol error the second port would reproduce.
func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
