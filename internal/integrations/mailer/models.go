package mailer

// Message письмо в формате text/plain
type Message struct {
	Kind    string // тип уведомления, используется в логах и метриках
	To      []string
	Bcc     []string
	Subject string
	Text    string
}

// Recipients все адресаты письма, включая скрытые копии
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Bcc...)
	return out
}
