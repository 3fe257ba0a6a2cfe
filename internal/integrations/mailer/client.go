package mailer

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// Config параметры SMTP-подключения
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ReplyTo  string
}

// Client SMTP-шлюз уведомлений
type Client struct {
	dialer  Dialer
	from    string
	replyTo string
	log     Logger
}

// NewClient создает SMTP-клиент поверх gomail
func NewClient(cfg Config, log Logger) *Client {
	return NewClientWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From, cfg.ReplyTo, log)
}

// NewClientWithDialer создает клиент с произвольным dialer
func NewClientWithDialer(dialer Dialer, from, replyTo string, log Logger) *Client {
	return &Client{
		dialer:  dialer,
		from:    from,
		replyTo: replyTo,
		log:     log,
	}
}

// Send отправляет письмо и ждет ответа SMTP-сервера, но не дольше дедлайна контекста
func (c *Client) Send(ctx context.Context, msg Message) error {
	if len(msg.Recipients()) == 0 {
		return ErrNoRecipients
	}

	m := c.buildMessage(msg)

	done := make(chan error, 1)
	go func() {
		done <- c.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: kind=%s to=%s: %v", ErrSendFailed, msg.Kind, strings.Join(msg.To, ","), err)
		}
		c.log.Info("Mail sent: kind=%s, to=%s, bcc=%d", msg.Kind, strings.Join(msg.To, ","), len(msg.Bcc))
		return nil
	case <-ctx.Done():
		// горутина отправки доработает сама, результат уже никому не нужен
		return fmt.Errorf("%w: kind=%s: %v", ErrTimeout, msg.Kind, ctx.Err())
	}
}

func (c *Client) buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	if len(msg.To) > 0 {
		m.SetHeader("To", msg.To...)
	}
	if len(msg.Bcc) > 0 {
		m.SetHeader("Bcc", msg.Bcc...)
	}
	if c.replyTo != "" {
		m.SetHeader("Reply-To", c.replyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	return m
}

// LogClient шлюз для окружений без SMTP: пишет письма в лог
type LogClient struct {
	log Logger
}

// NewLogClient создает шлюз, который только логирует письма
func NewLogClient(log Logger) *LogClient {
	return &LogClient{log: log}
}

// Send логирует письмо вместо отправки
func (c *LogClient) Send(_ context.Context, msg Message) error {
	if len(msg.Recipients()) == 0 {
		return ErrNoRecipients
	}
	c.log.Info("Mail disabled, skipping send: kind=%s, to=%s, subject=%q", msg.Kind, strings.Join(msg.To, ","), msg.Subject)
	return nil
}
