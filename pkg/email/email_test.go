package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-careers-backend/config"
	"go-careers-backend/internal/domain"
)

type sentMail struct {
	addr string
	to   []string
	msg  string
}

func newTestService(send func(string, smtp.Auth, string, []string, []byte) error) *EmailService {
	s := NewEmailService(&config.Config{
		SMTPHost:               "smtp.example.com",
		SMTPPort:               "587",
		SMTPUsername:           "mailer",
		SMTPPassword:           "secret",
		SMTPFromEmail:          "careers@example.com",
		AdminNotificationEmail: "hr@example.com",
	})
	s.sendMail = send
	return s
}

func TestNotifyApplicationReceived(t *testing.T) {
	notice := domain.ApplicationNotice{
		ApplicationID:  "app-1",
		CandidateName:  "Ada Lovelace",
		CandidateEmail: "ada@example.com",
		JobTitle:       "Backend Engineer\r\nBcc: evil@example.com",
	}

	t.Run("sends candidate and admin mail", func(t *testing.T) {
		var sent []sentMail
		s := newTestService(func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
			sent = append(sent, sentMail{addr: addr, to: to, msg: string(msg)})
			return nil
		})

		require.NoError(t, s.NotifyApplicationReceived(context.Background(), notice))
		require.Len(t, sent, 2)

		assert.Equal(t, "smtp.example.com:587", sent[0].addr)
		assert.Equal(t, []string{"ada@example.com"}, sent[0].to)
		assert.Contains(t, sent[0].msg, "Thanks for applying, Ada Lovelace")
		assert.Contains(t, sent[0].msg, "Subject: Application received: Backend Engineer  Bcc: evil@example.com\r\n")

		assert.Equal(t, []string{"hr@example.com"}, sent[1].to)
		assert.Contains(t, sent[1].msg, "Reply-To: ada@example.com")
	})

	t.Run("admin mail still attempted when candidate mail fails", func(t *testing.T) {
		calls := 0
		s := newTestService(func(_ string, _ smtp.Auth, _ string, _ []string, _ []byte) error {
			calls++
			if calls == 1 {
				return errors.New("mailbox unavailable")
			}
			return nil
		})

		err := s.NotifyApplicationReceived(context.Background(), notice)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "candidate confirmation")
		assert.Equal(t, 2, calls)
	})

	t.Run("not configured", func(t *testing.T) {
		s := NewEmailService(&config.Config{})
		assert.False(t, s.IsConfigured())
		assert.ErrorIs(t, s.NotifyApplicationReceived(context.Background(), notice), ErrNotConfigured)
	})
}
