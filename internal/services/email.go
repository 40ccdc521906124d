package services

import (
	"context"
	"fmt"
	"net/smtp"

	"fling/internal/config"
	"fling/internal/logger"
	helpers "fling/internal/utils/helpers"

	"go.uber.org/zap"
)

const emailQueueSize = 100

type EmailService struct {
	auth  smtp.Auth
	from  string
	host  string
	port  string
	queue chan EmailJob
}

func NewEmailService(cfg *config.Config) *EmailService {
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	return &EmailService{
		auth:  auth,
		from:  cfg.SMTPUser,
		host:  cfg.SMTPHost,
		port:  cfg.SMTPPort,
		queue: make(chan EmailJob, emailQueueSize),
	}
}

func (s *EmailService) Send(to []string, subject, body string) error {
	msg := []byte("Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, to, msg)
}

func (s *EmailService) SendHTML(to []string, subject, body string) error {
	msg := []byte("Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"utf-8\"\r\n\r\n" +
		body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, to, msg)
}

// SendPasswordReset кладёт письмо со ссылкой на сброс в очередь сервиса.
// Отправка fire-and-forget, подтверждения доставки никто не ждёт.
func (s *EmailService) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	html := helpers.BuildPasswordResetHTML(resetLink)
	s.queue <- EmailJob{
		To:      []string{to},
		Subject: "Сброс пароля",
		Body:    html,
		IsHTML:  true,
	}
	return nil
}

type EmailJob struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// StartWorker запускает горутину, разбирающую очередь писем сервиса.
func (s *EmailService) StartWorker() {
	go func() {
		for job := range s.queue {
			var err error
			if job.IsHTML {
				err = s.SendHTML(job.To, job.Subject, job.Body)
			} else {
				err = s.Send(job.To, job.Subject, job.Body)
			}
			if err != nil {
				logger.Log.Error("Не удалось отправить письмо", zap.Error(err))
			}
		}
	}()
}
