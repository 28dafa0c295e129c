// Package mailer handles all outbound transactional email
package mailer

import (
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer dispatches a single message to one or more recipients. Every
// message carries a plaintext body and an HTML alternative.
type Mailer interface {
	Send(to []string, subject, text, html string) error
}

// SMTP sends mail through a plain SMTP relay using gomail. Each Send
// makes exactly one dispatch; there are no retries.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP() *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(
			viper.GetString("mail.host"),
			viper.GetInt("mail.port"),
			viper.GetString("mail.username"),
			viper.GetString("mail.password"),
		),
		from: viper.GetString("mail.from"),
	}
}

func (s *SMTP) Send(to []string, subject, text, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	if html != "" {
		m.AddAlternative("text/html", html)
	}

	return s.dialer.DialAndSend(m)
}
