// Package mailer реализует почтовый транспорт поверх net/smtp.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTP реализует service.MailTransport через обычный SMTP-сервер.
type SMTP struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTP создаёт транспорт. При пустом username аутентификация не используется
// (например, локальный relay).
func NewSMTP(addr, from, username, password string) *SMTP {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.LastIndex(addr, ":"); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTP{addr: addr, from: from, auth: auth}
}

// SendMail отправляет письмо получателю. Вызов прерывается при отмене контекста,
// чтобы завершение процесса не зависало на недоступном SMTP-сервере.
func (m *SMTP) SendMail(ctx context.Context, recipient, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, recipient, subject, body)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.addr, m.auth, m.from, []string{recipient}, []byte(msg))
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail to %s: %w", recipient, err)
		}
		return nil
	}
}
