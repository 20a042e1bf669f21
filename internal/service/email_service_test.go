package service

import (
	"errors"
	"strings"
	"testing"

	"Project_Reviews/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTransactionalComposesMail(t *testing.T) {
	var gotTo, gotSubject, gotBody string
	svc := &EmailService{
		cfg: pkg.SMTPConfig{From: "noreply@example.com"},
		send: func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error {
			gotTo, gotSubject, gotBody = to, subject, htmlBody
			return nil
		},
	}

	err := svc.SendTransactional("user@example.com", "新评论", "有人评论了你的项目", "https://example.com/p/1")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", gotTo)
	assert.Equal(t, "新评论", gotSubject)
	assert.True(t, strings.Contains(gotBody, "有人评论了你的项目"))
	assert.True(t, strings.Contains(gotBody, "https://example.com/p/1"))
}

func TestSendTransactionalPropagatesError(t *testing.T) {
	sendErr := errors.New("smtp down")
	svc := &EmailService{
		send: func(pkg.SMTPConfig, string, string, string) error { return sendErr },
	}

	assert.ErrorIs(t, svc.SendTransactional("user@example.com", "标题", "正文", ""), sendErr)
}

func TestEmailCodeRejectsUnknownScope(t *testing.T) {
	svc := NewEmailService()

	assert.ErrorIs(t, svc.SendCode("promo", "user@example.com"), ErrBadScope)
	assert.ErrorIs(t, svc.VerifyCode("promo", "user@example.com", "123456"), ErrBadScope)
}
