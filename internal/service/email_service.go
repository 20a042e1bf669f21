package service

import (
	"errors"
	"log"

	"Project_Reviews/internal/config"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/redis"
)

// 验证码用途域，不同用途的码互不通用
const (
	ScopeRegister = "register"
	ScopeReset    = "reset"
)

var (
	ErrBadScope     = errors.New("unknown email code scope")
	ErrCodeMismatch = errors.New("email code mismatch")
)

type EmailService struct {
	repo redis.EmailRepository
	cfg  pkg.SMTPConfig
	send func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error
}

func NewEmailService() *EmailService {
	return &EmailService{
		send: pkg.SendEmail,
		cfg: pkg.SMTPConfig{
			Host:     config.GetEnv("SMTP_HOST", "smtp.qq.com"),
			Port:     config.GetEnvInt("SMTP_PORT", 465),
			Username: config.GetEnv("SMTP_USERNAME", ""),
			Password: config.GetEnv("SMTP_PASSWORD", ""),
			From:     config.GetEnv("SMTP_FROM", ""),
		},
	}
}

func validScope(scope string) bool {
	return scope == ScopeRegister || scope == ScopeReset
}

// SendCode 两阶段发送：先落 pending，邮件真正发出后转 confirmed。
// 发送失败时删掉 pending，避免校验侧认下一个没发出去的码。
func (s *EmailService) SendCode(scope, email string) error {
	if !validScope(scope) {
		return ErrBadScope
	}
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.repo.SetCodePending(scope, email, code); err != nil {
		return err
	}

	subject := "注册验证码"
	if scope == ScopeReset {
		subject = "重置密码验证码"
	}
	if err = s.send(s.cfg, email, subject, pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL)); err != nil {
		if delErr := s.repo.DeleteCodePending(scope, email); delErr != nil {
			log.Println("清理pending验证码失败:", delErr)
		}
		return err
	}
	return s.repo.ConfirmCode(scope, email)
}

// VerifyCode 校验通过后验证码一次性销毁
func (s *EmailService) VerifyCode(scope, email, code string) error {
	if !validScope(scope) {
		return ErrBadScope
	}
	stored, err := s.repo.GetCodeConfirmed(scope, email)
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return s.repo.DeleteCodeConfirmed(scope, email)
}

// SendTransactional 发事务性通知邮件（评论/评价提醒等）
func (s *EmailService) SendTransactional(to, title, body, url string) error {
	return s.send(s.cfg, to, title, pkg.NotificationHTML(title, body, url))
}
