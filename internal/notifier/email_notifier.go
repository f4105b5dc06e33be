package notifier

import (
	"context"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"pagewatch/internal/common"
	"pagewatch/internal/config"
)

// EmailNotifier delivers change alerts over SMTP.
type EmailNotifier struct {
	cfg    config.NotificationConfig
	logger zerolog.Logger
	// send is swappable in tests; defaults to a gomail dial-and-send.
	send func(m *gomail.Message) error
}

// NewEmailNotifier creates a new email notifier. Transport completeness is
// checked at send time, not here: a deployment without mail settings still
// captures and compares.
func NewEmailNotifier(cfg config.NotificationConfig, logger zerolog.Logger) *EmailNotifier {
	n := &EmailNotifier{
		cfg:    cfg,
		logger: logger.With().Str("component", "EmailNotifier").Logger(),
	}
	n.send = n.dialAndSend
	return n
}

// SendChangeNotification sends the alert mail for one URL. Transport
// failure is returned as a NotificationError; nothing is retried and no
// persisted artifact is rolled back.
func (n *EmailNotifier) SendChangeNotification(ctx context.Context, url string, diffPercentage float64, diffPublicPath string) error {
	if !n.cfg.IsComplete() {
		return common.NewConfigurationError("notification", "smtp", "SMTP configuration is incomplete")
	}
	if err := ctx.Err(); err != nil {
		return common.NewNotificationError(url, err)
	}

	diffImageURL := AbsoluteDiffURL(n.cfg.BaseURL, diffPublicPath)

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.Sender())
	m.SetHeader("To", n.cfg.To)
	m.SetHeader("Subject", FormatChangeSubject(url))
	m.SetBody("text/html", FormatChangeBody(url, diffPercentage, diffImageURL))

	if err := n.send(m); err != nil {
		return common.NewNotificationError(url, err)
	}

	n.logger.Info().
		Str("url", url).
		Float64("diff_percentage", diffPercentage).
		Str("to", n.cfg.To).
		Msg("Change notification sent")
	return nil
}

func (n *EmailNotifier) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(n.cfg.SMTPHost, n.cfg.SMTPPort, n.cfg.SMTPUser, n.cfg.SMTPPass)
	d.SSL = n.cfg.SMTPSecure
	return d.DialAndSend(m)
}
