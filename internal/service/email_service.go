package service

import (
	"Aura_Community/internal/pkg"
	"Aura_Community/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

// SendCode 发送验证码，scope 为 register / reset。
// pending/confirmed 两阶段：邮件确实发出去之后验证码才可用。
func (s *EmailService) SendCode(scope, email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetCodePending(scope, email, code); err != nil {
		return err
	}

	subject := "验证码"
	title := "邮箱验证"
	if scope == "reset" {
		subject = "密码重置验证码"
		title = "重置密码"
	}
	html := pkg.EmailCodeHTML(title, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject, html); err != nil {
		return err
	}

	if err = s.rds.ConfirmCode(scope, email); err != nil {
		_ = s.rds.DeleteCodePending(scope, email)
		return err
	}
	return nil
}

// VerifyCode 校验验证码并一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetCode(scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
