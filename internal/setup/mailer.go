package setup

import (
	"context"
	"log/slog"

	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/mail"
)

var getNotifierFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (mail.Notifier, error) {
	if conf.Mail.Host == "" {
		slog.WarnContext(ctx, "no mail server configured, task notifications disabled")
		return mail.Discard{}, nil
	}

	return mail.NewSMTPNotifier(
		conf.Mail.Host,
		conf.Mail.Port,
		conf.Mail.Username,
		conf.Mail.Password,
		conf.Mail.From,
	), nil
})
