package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
)

const (
	defaultQueueSize   = 100
	defaultWorkers     = 2
	defaultSendTimeout = 15 * time.Second
)

// Options параметры очереди исходящих писем
type Options struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

// Service очередь исходящих писем с пулом отправителей.
// Постановка в очередь никогда не блокирует вызывающего: при переполнении письмо отбрасывается.
type Service struct {
	gateway  Gateway
	composer *Composer
	metrics  Metrics
	log      Logger

	queue       chan mailer.Message
	workers     int
	sendTimeout time.Duration

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// NewService создает очередь уведомлений
func NewService(gateway Gateway, composer *Composer, metrics Metrics, log Logger, opts Options) *Service {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = defaultSendTimeout
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Service{
		gateway:     gateway,
		composer:    composer,
		metrics:     metrics,
		log:         log,
		queue:       make(chan mailer.Message, opts.QueueSize),
		workers:     opts.Workers,
		sendTimeout: opts.SendTimeout,
	}
}

// Start запускает воркеры отправки. Повторный вызов ничего не делает.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return
	}
	s.started = true

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
	s.log.Info("Notification outbox started: workers=%d, queue=%d", s.workers, cap(s.queue))
}

// Shutdown закрывает очередь и ждет, пока воркеры отправят оставшиеся письма
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	started := s.started
	s.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("Notification outbox drained")
		return nil
	case <-ctx.Done():
		s.log.Warn("Notification outbox shutdown interrupted, pending=%d", len(s.queue))
		return ctx.Err()
	}
}

// Enqueue ставит письмо в очередь без ожидания
func (s *Service) Enqueue(msg mailer.Message) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.metrics.IncNotificationDropped(msg.Kind)
		return ErrClosed
	}

	select {
	case s.queue <- msg:
		return nil
	default:
		s.metrics.IncNotificationDropped(msg.Kind)
		return ErrQueueFull
	}
}

// AppointmentCreated ставит в очередь подтверждение клиенту и уведомление администраторам
func (s *Service) AppointmentCreated(a *domain.Appointment) {
	msg, err := s.composer.Confirmation(a)
	if err != nil {
		s.log.Error("Failed to compose confirmation for appointment %s: %v", a.ID, err)
	} else {
		s.enqueue(a, msg)
	}

	adminMsg, ok, err := s.composer.AdminNew(a)
	if err != nil {
		s.log.Error("Failed to compose admin notification for appointment %s: %v", a.ID, err)
		return
	}
	if ok {
		s.enqueue(a, adminMsg)
	}
}

// AppointmentShipped ставит в очередь письмо об отправке заказа
func (s *Service) AppointmentShipped(a *domain.Appointment) {
	msg, err := s.composer.Shipped(a)
	if err != nil {
		s.log.Error("Failed to compose shipped notification for appointment %s: %v", a.ID, err)
		return
	}
	s.enqueue(a, msg)
}

func (s *Service) enqueue(a *domain.Appointment, msg mailer.Message) {
	if err := s.Enqueue(msg); err != nil {
		s.log.Warn("Notification dropped: kind=%s, appointment=%s: %v", msg.Kind, a.ID, err)
	}
}

func (s *Service) worker(id int) {
	defer s.wg.Done()

	for msg := range s.queue {
		s.deliver(id, msg)
	}
}

func (s *Service) deliver(worker int, msg mailer.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	if err := s.gateway.Send(ctx, msg); err != nil {
		s.metrics.IncNotificationFailed(msg.Kind)
		if errors.Is(err, mailer.ErrTimeout) {
			s.log.Warn("Worker %d: notification timed out: kind=%s: %v", worker, msg.Kind, err)
			return
		}
		s.log.Error("Worker %d: failed to deliver notification: kind=%s: %v", worker, msg.Kind, err)
		return
	}
	s.metrics.IncNotificationSent(msg.Kind)
}

type noopMetrics struct{}

func (noopMetrics) IncNotificationSent(string)    {}
func (noopMetrics) IncNotificationFailed(string)  {}
func (noopMetrics) IncNotificationDropped(string) {}
