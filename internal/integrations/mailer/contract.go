package mailer

import "gopkg.in/gomail.v2"

// Dialer отправляет готовые письма (реализуется *gomail.Dialer)
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
