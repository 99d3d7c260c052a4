// Package email sends account notices over SMTP.
package email

import (
	"errors"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/shared/config"
)

var ErrEmailServiceNotConfigured = errors.New("email service not configured")

type SMTPEmailService struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	return &SMTPEmailService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

func (s *SMTPEmailService) SendPlanChangedEmail(to string, from, plan entitlement.Plan, tokens int) error {
	return s.dialer.DialAndSend(s.planChangedMessage(to, from, plan, tokens))
}

func (s *SMTPEmailService) planChangedMessage(to string, from, plan entitlement.Plan, tokens int) *gomail.Message {
	verb := "changed"
	switch {
	case plan.IsUpgradeFrom(from):
		verb = "upgraded"
	case from.IsUpgradeFrom(plan):
		verb = "downgraded"
	}

	subject := fmt.Sprintf("Your plan was %s to %s", verb, plan)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Plan %s</h2>
			<p>Your plan was %s from <b>%s</b> to <b>%s</b>.</p>
			<p>You now have <b>%d</b> tokens available. Your monthly allowance is %d tokens.</p>
		</body>
		</html>
	`, html.EscapeString(verb), html.EscapeString(verb), from, plan, tokens, plan.MonthlyTokenLimit())

	plainBody := fmt.Sprintf(`
Plan %s

Your plan was %s from %s to %s.
You now have %d tokens available. Your monthly allowance is %d tokens.
	`, verb, verb, from, plan, tokens, plan.MonthlyTokenLimit())

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}
