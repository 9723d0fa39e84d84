package service

import (
	"errors"

	"CampusConnect/internal/pkg"
	"CampusConnect/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

var emailSubjects = map[string]string{
	"register": "Account verification",
	"reset":    "Password reset",
}

// SendCode issues a one-shot code for the scope and mails it.
func (s *EmailService) SendCode(scope, email string) error {
	subject, ok := emailSubjects[scope]
	if !ok {
		return errors.New("unknown code scope")
	}
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetEmailCode(scope, email, code); err != nil {
		return err
	}
	html := pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject, html); err != nil {
		_ = s.rds.DeleteEmailCode(scope, email)
		return err
	}
	return nil
}

// VerifyCode checks and consumes the code.
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetEmailCode(scope, email)
	if err != nil {
		// redis.Nil: missing or expired
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteEmailCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}

// NotifyApproved mails a membership-approval notice, best effort.
func (s *EmailService) NotifyApproved(email, orgName string) error {
	return pkg.SendEmail(s.emailCfg, email, "Membership approved", pkg.MembershipApprovedHTML(orgName))
}
