package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendImportSummary avisa quem importou a planilha que a carga terminou.
func (s *EmailSender) SendImportSummary(to, name string, count int) error {
	body := fmt.Sprintf(
		"<p>Olá, %s!</p><p>Sua importação de planilha terminou: <b>%d leads</b> foram criados no CRM.</p>",
		name, count,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@liguemedicina.com")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Importação concluída: %d leads 🚀", count))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
