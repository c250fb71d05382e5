package auth

import (
	"context"

	"github.com/mercato-app/mercato-backend/pkg/config"
	"github.com/mercato-app/mercato-backend/pkg/logger"
)

// Notifier delivers account tokens to the address on file.
type Notifier interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// logNotifier writes the tokens to the application log instead of sending
// mail. This is the only delivery mode wired today; SMTP stays behind the
// same port.
type logNotifier struct {
	from string
	logg *logger.Logger
}

// NewNotifier selects the delivery implementation from configuration.
func NewNotifier(cfg config.MailerConfig, logg *logger.Logger) Notifier {
	return &logNotifier{from: cfg.FromAddress, logg: logg}
}

func (n *logNotifier) SendVerification(ctx context.Context, email, token string) error {
	ctx = n.logg.WithFields(ctx, map[string]any{
		"mail_from": n.from,
		"mail_to":   email,
		"token":     token,
	})
	n.logg.Info(ctx, "verification token issued")
	return nil
}

func (n *logNotifier) SendPasswordReset(ctx context.Context, email, token string) error {
	ctx = n.logg.WithFields(ctx, map[string]any{
		"mail_from": n.from,
		"mail_to":   email,
		"token":     token,
	})
	n.logg.Info(ctx, "password reset token issued")
	return nil
}
