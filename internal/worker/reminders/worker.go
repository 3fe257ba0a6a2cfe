package reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	defaultInterval    = time.Minute
	defaultSendTimeout = 15 * time.Second
)

// Config параметры воркера напоминаний
type Config struct {
	Buckets     []domain.ReminderBucket
	Interval    time.Duration
	SendTimeout time.Duration
	Location    *time.Location
	RunOnStart  bool
}

// Worker по тикеру забирает записи, подошедшие к порогу напоминания, и отправляет письма.
// Доставка не более одного раза: пометка ставится до отправки и не снимается при ошибке.
type Worker struct {
	store    AppointmentStore
	builder  MessageBuilder
	gateway  Gateway
	metrics  Metrics
	clock    TimeProvider
	log      Logger
	buckets  []domain.ReminderBucket
	interval time.Duration
	timeout  time.Duration
	loc      *time.Location
	runFirst bool
}

// NewWorker создает воркер напоминаний
func NewWorker(
	store AppointmentStore,
	builder MessageBuilder,
	gateway Gateway,
	metrics Metrics,
	clock TimeProvider,
	log Logger,
	cfg Config,
) *Worker {
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = domain.DefaultReminderBuckets
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Worker{
		store:    store,
		builder:  builder,
		gateway:  gateway,
		metrics:  metrics,
		clock:    clock,
		log:      log,
		buckets:  cfg.Buckets,
		interval: cfg.Interval,
		timeout:  cfg.SendTimeout,
		loc:      cfg.Location,
		runFirst: cfg.RunOnStart,
	}
}

// Start крутит цикл до отмены контекста
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("Reminder worker started: interval=%s, buckets=%d", w.interval, len(w.buckets))

	if w.runFirst {
		w.Tick(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick один проход по всем бакетам. Возвращает число успешно отправленных напоминаний.
func (w *Worker) Tick(ctx context.Context) int {
	now := w.clock.Now().In(w.loc).Truncate(time.Minute)

	sent := 0
	for _, bucket := range w.buckets {
		if ctx.Err() != nil {
			return sent
		}
		sent += w.processBucket(ctx, bucket, now)
	}
	return sent
}

func (w *Worker) processBucket(ctx context.Context, bucket domain.ReminderBucket, now time.Time) int {
	claimed, err := w.store.ClaimDue(ctx, bucket, now)
	if err != nil {
		// ошибка claim прерывает только этот бакет в этом тике
		w.metrics.IncReminderClaimError(bucket.Name)
		w.log.Error("Reminder bucket %s: failed to claim due appointments: %v", bucket.Name, err)
		return 0
	}

	w.metrics.ObserveRemindersClaimed(bucket.Name, len(claimed))
	if len(claimed) == 0 {
		return 0
	}
	w.log.Info("Reminder bucket %s: claimed %d appointments at %s", bucket.Name, len(claimed), now.Format(domain.TimeFormat))

	sent := 0
	for _, a := range claimed {
		if w.send(ctx, bucket, a) {
			sent++
		}
	}
	return sent
}

func (w *Worker) send(ctx context.Context, bucket domain.ReminderBucket, a *domain.Appointment) bool {
	msg, err := w.builder.Reminder(a, bucket)
	if err != nil {
		w.metrics.IncNotificationFailed("reminder")
		w.log.Error("Reminder bucket %s: failed to compose message for appointment %s: %v", bucket.Name, a.ID, err)
		return false
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.gateway.Send(sendCtx, msg); err != nil {
		w.metrics.IncNotificationFailed(msg.Kind)
		w.log.Error("Reminder bucket %s: failed to send reminder for appointment %s to %s: %v",
			bucket.Name, a.ID, a.Customer.Email, err)
		return false
	}

	w.metrics.IncNotificationSent(msg.Kind)
	return true
}

type noopMetrics struct{}

func (noopMetrics) ObserveRemindersClaimed(string, int) {}
func (noopMetrics) IncReminderClaimError(string)        {}
func (noopMetrics) IncNotificationSent(string)          {}
func (noopMetrics) IncNotificationFailed(string)        {}
