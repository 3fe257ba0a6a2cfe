package notifications

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
)

const confirmationText = `Hola {{.Name}}, estos son los detalles{{if .IsShipping}} registrados{{end}}:

{{if .IsShipping -}}
Fecha de solicitud: {{.Date}}
Producto: {{.Product}}
Ciudad: {{.City}}
Dirección: {{.Address}}
Barrio: {{.Neighbor}}
Transportadora: {{.Carrier}}
Modalidad: No contraentrega

Te contactaremos para confirmar el pago y coordinar el despacho.
Al recibir, cancela el costo de envío a la transportadora (si aplica).
{{- else -}}
Tipo: {{.TypeLabel}}
Fecha: {{.Date}}
Horario: {{.TimeRange}}
Producto: {{.Product}}
Estado: CONFIRMADA
{{if .IsTryout}}
Llega unos minutos antes para aprovechar tu bloque.
{{- else}}
Te enviaremos los videos de prueba antes de la entrega.
{{- end}}
{{- end}}

Si hay un dato incorrecto, responde a este correo con la corrección.

{{.Brand}}
`

const adminNewText = `{{if .IsShipping}}Nuevo envío registrado{{else}}Nueva cita programada{{end}}

Tipo: {{.TypeLabel}}
Fecha: {{.Date}}
Horario: {{.TimeRange}}
Estado: {{.Status}}
Producto: {{.Product}}
Nombre: {{.Name}}
Cédula: {{.IDNumber}}
Correo: {{.Email}}
Teléfono: {{.Phone}}
{{- if .IsShipping}}
Ciudad: {{.City}}
Dirección: {{.Address}}
Barrio: {{.Neighbor}}
Transportadora: {{.Carrier}}
{{- end}}
Notas: {{.Notes}}
`

const reminderText = `Hola {{.Name}}, te recordamos tu cita de hoy.

Tipo: {{.TypeLabel}}
Fecha: {{.Date}}
Horario: {{.TimeRange}}
Estado: CONFIRMADA

Tu cita empieza en {{.LeadMins}} minutos.
{{- if .IsTryout}}
Si quieres, trae tu equipo; también tenemos equipo de prueba.
{{- else}}
Ten listo tu medio de pago.
{{- end}}

{{.Brand}}
`

const shippedText = `Tu envío fue despachado.
Transportadora: {{.Carrier}}
{{- if and (not .IsPicap) .Tracking}}
Guía: {{.Tracking}}
{{- end}}
{{- if .Cost}}
Valor: {{.Cost}}
{{- end}}
{{- if and .IsPicap .TripLink}}
Link del viaje: {{.TripLink}}
{{- end}}

{{if .IsPicap}}Comparte el link del viaje para seguimiento.{{else}}Usa el número de guía para el seguimiento.{{end}}
Al recibir, cancelas el costo del envío (si aplica).

{{.Brand}}
`

var templates = map[string]*template.Template{
	KindConfirmation: template.Must(template.New(KindConfirmation).Parse(confirmationText)),
	KindAdminNew:     template.Must(template.New(KindAdminNew).Parse(adminNewText)),
	KindReminder:     template.Must(template.New(KindReminder).Parse(reminderText)),
	KindShipped:      template.Must(template.New(KindShipped).Parse(shippedText)),
}

// Composer собирает письма по записи
type Composer struct {
	brand       string
	adminNotify []string
	printer     *message.Printer
}

// NewComposer создает сборщик писем; adminNotify получает копии новых записей и отправок
func NewComposer(brand string, adminNotify []string) *Composer {
	admins := make([]string, 0, len(adminNotify))
	for _, a := range adminNotify {
		if a = strings.TrimSpace(a); a != "" {
			admins = append(admins, a)
		}
	}
	return &Composer{
		brand:       brand,
		adminNotify: admins,
		printer:     message.NewPrinter(language.Spanish),
	}
}

// Confirmation письмо клиенту о новой записи, админы получают скрытую копию
func (c *Composer) Confirmation(a *domain.Appointment) (mailer.Message, error) {
	subject := "¡Tu cita fue confirmada!"
	if a.TypeCode == domain.TypeShipping {
		subject = "¡Recibimos tus datos de envío!"
	}
	return c.render(KindConfirmation, a, 0, []string{a.Customer.Email}, c.adminNotify, subject)
}

// AdminNew уведомление администраторов о новой записи; ok=false если получателей нет
func (c *Composer) AdminNew(a *domain.Appointment) (mailer.Message, bool, error) {
	if len(c.adminNotify) == 0 {
		return mailer.Message{}, false, nil
	}
	subject := "Nueva cita programada: " + a.Date.Format(domain.DateFormat)
	if a.TypeCode == domain.TypeShipping {
		subject = "Nuevo envío registrado: " + a.Date.Format(domain.DateFormat)
	}
	msg, err := c.render(KindAdminNew, a, 0, c.adminNotify, nil, subject)
	return msg, err == nil, err
}

// Reminder напоминание клиенту о сегодняшней записи
func (c *Composer) Reminder(a *domain.Appointment, bucket domain.ReminderBucket) (mailer.Message, error) {
	start := ""
	if a.StartTime != nil {
		start = a.StartTime.String()
	}
	subject := fmt.Sprintf("Recordatorio: tu cita hoy a las %s | %s", start, c.brand)
	return c.render(KindReminder, a, bucket.LeadMinutes, []string{a.Customer.Email}, nil, subject)
}

// Shipped письмо клиенту об отправке заказа, админы получают скрытую копию
func (c *Composer) Shipped(a *domain.Appointment) (mailer.Message, error) {
	subject := "Tu paquete ha sido enviado | " + c.brand
	return c.render(KindShipped, a, 0, []string{a.Customer.Email}, c.adminNotify, subject)
}

func (c *Composer) render(kind string, a *domain.Appointment, leadMins int, to, bcc []string, subject string) (mailer.Message, error) {
	var buf bytes.Buffer
	if err := templates[kind].Execute(&buf, c.viewOf(a, leadMins)); err != nil {
		return mailer.Message{}, fmt.Errorf("%w: %s: %v", ErrRender, kind, err)
	}
	return mailer.Message{
		Kind:    kind,
		To:      to,
		Bcc:     bcc,
		Subject: subject,
		Text:    buf.String(),
	}, nil
}

func (c *Composer) viewOf(a *domain.Appointment, leadMins int) view {
	v := view{
		Brand:      c.brand,
		TypeLabel:  typeLabel(a),
		Date:       a.Date.Format(domain.DateFormat),
		TimeRange:  "-",
		Status:     string(a.Status),
		Product:    orDash(a.Product),
		Notes:      "-",
		Name:       a.Customer.Name,
		Email:      a.Customer.Email,
		Phone:      a.Customer.Phone,
		IDNumber:   orDash(a.Customer.IDNumber),
		City:       orDash(a.Shipping.City),
		Address:    orDash(a.Shipping.Address),
		Neighbor:   orDash(a.Shipping.Neighborhood),
		Carrier:    orDash(a.Shipping.Carrier),
		LeadMins:   leadMins,
		IsShipping: a.TypeCode == domain.TypeShipping,
		IsTryout:   a.TypeCode == domain.TypeTryout,
		IsPicap:    strings.EqualFold(a.Shipping.Carrier, domain.CarrierPicap),
	}
	if slot, ok := a.Slot(); ok {
		v.StartTime = slot.Start.String()
		v.TimeRange = slot.Start.String() + " - " + slot.End.String()
	}
	if a.Notes != nil && *a.Notes != "" {
		v.Notes = *a.Notes
	}
	if a.Shipping.TrackingNumber != nil {
		v.Tracking = *a.Shipping.TrackingNumber
	}
	if a.Shipping.TripLink != nil {
		v.TripLink = *a.Shipping.TripLink
	}
	if a.Shipping.Cost != nil {
		v.Cost = c.printer.Sprintf("$ %d COP", int64(*a.Shipping.Cost))
	}
	return v
}

func typeLabel(a *domain.Appointment) string {
	mins := 0
	if slot, ok := a.Slot(); ok {
		mins = slot.Minutes()
	}
	switch a.TypeCode {
	case domain.TypeTryout:
		return withMinutes("Ensayo presencial", mins)
	case domain.TypePickup:
		return withMinutes("Sin ensayo", mins)
	default:
		return "Envío (no contraentrega)"
	}
}

func withMinutes(label string, mins int) string {
	if mins <= 0 {
		return label
	}
	return fmt.Sprintf("%s (%d min)", label, mins)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
