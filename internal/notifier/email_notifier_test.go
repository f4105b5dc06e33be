package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"pagewatch/internal/common"
	"pagewatch/internal/config"
)

func completeConfig() config.NotificationConfig {
	cfg := config.NewDefaultNotificationConfig()
	cfg.SMTPHost = "mail.example.com"
	cfg.SMTPUser = "alerts@example.com"
	cfg.SMTPPass = "pw"
	cfg.To = "ops@example.com"
	cfg.BaseURL = "https://watch.example.com"
	return cfg
}

func TestSendChangeNotification(t *testing.T) {
	n := NewEmailNotifier(completeConfig(), zerolog.Nop())

	var sent *gomail.Message
	n.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	err := n.SendChangeNotification(context.Background(), "https://example.com", 15.5,
		"/artifacts/diff-2024-03-16-08-00-00-a-vs-b.png")
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, []string{"Screenshot Change Alert: https://example.com"}, sent.GetHeader("Subject"))
	assert.Equal(t, []string{"alerts@example.com"}, sent.GetHeader("From"))
	assert.Equal(t, []string{"ops@example.com"}, sent.GetHeader("To"))
}

func TestSendChangeNotification_IncompleteConfig(t *testing.T) {
	cfg := config.NewDefaultNotificationConfig()
	n := NewEmailNotifier(cfg, zerolog.Nop())

	err := n.SendChangeNotification(context.Background(), "https://example.com", 50, "/artifacts/d.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}

func TestSendChangeNotification_TransportFailure(t *testing.T) {
	n := NewEmailNotifier(completeConfig(), zerolog.Nop())
	n.send = func(m *gomail.Message) error {
		return errors.New("connection refused")
	}

	err := n.SendChangeNotification(context.Background(), "https://example.com", 50, "/artifacts/d.png")
	require.Error(t, err)

	var notifErr *common.NotificationError
	assert.ErrorAs(t, err, &notifErr)
	assert.Equal(t, "https://example.com", notifErr.URL)
}

func TestFormatChangeBody(t *testing.T) {
	body := FormatChangeBody("https://example.com", 12.3456, "https://watch.example.com/artifacts/diff.png")

	assert.Contains(t, body, "12.35%")
	assert.Contains(t, body, "https://example.com")
	assert.Contains(t, body, `href="https://watch.example.com/artifacts/diff.png"`)
}

func TestAbsoluteDiffURL(t *testing.T) {
	assert.Equal(t, "https://w.example.com/artifacts/d.png",
		AbsoluteDiffURL("https://w.example.com", "/artifacts/d.png"))
	assert.Equal(t, "https://w.example.com/artifacts/d.png",
		AbsoluteDiffURL("https://w.example.com/", "/artifacts/d.png"))
}
