package mailer

import "errors"

var (
	// ErrNoRecipients возвращается, если у письма нет ни одного адресата
	ErrNoRecipients = errors.New("mailer: message has no recipients")

	// ErrSendFailed возвращается, если SMTP-сервер не принял письмо
	ErrSendFailed = errors.New("mailer: send failed")

	// ErrTimeout возвращается, если отправка не уложилась в дедлайн контекста
	ErrTimeout = errors.New("mailer: send timed out")
)
