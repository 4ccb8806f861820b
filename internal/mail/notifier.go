// Package mail sends best-effort notification emails. Delivery is
// fire-and-forget: callers log failures and move on.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/xid"
)

type Notifier interface {
	TaskCreated(ctx context.Context, recipient, text string) error
}

type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// TaskCreated notifies the task owner that a new task was created.
func (n *SMTPNotifier) TaskCreated(ctx context.Context, recipient, text string) error {
	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Message-ID: <%s@%s>\r\n", xid.New(), n.host)
	msg.WriteString("Subject: Task Created\r\n")
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "You have created a new task: %s\r\n", text)

	addr := fmt.Sprintf("%s:%d", n.host, n.port)

	if err := smtp.SendMail(addr, auth, n.from, []string{recipient}, []byte(msg.String())); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

var _ Notifier = &SMTPNotifier{}

// Discard is a Notifier that drops every notification, used when no
// mail server is configured.
type Discard struct{}

func (Discard) TaskCreated(ctx context.Context, recipient, text string) error {
	return nil
}

var _ Notifier = Discard{}
