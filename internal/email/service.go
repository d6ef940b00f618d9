package email

import (
	"fmt"
	"net/smtp"
)

// Service sends alert mail via SMTP.
type Service struct {
	host string
	port string
	from string
}

// NewService creates an email service.
func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendLowStockAlert notifies the recipient that an item's stock has fallen
// below the alert threshold.
func (s *Service) SendLowStockAlert(to, itemName string, remaining, threshold int) error {
	subject := fmt.Sprintf("Low stock alert: %s (%d left)", itemName, remaining)
	body := BuildLowStockBody(itemName, remaining, threshold)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
