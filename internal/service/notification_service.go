package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ijpettengill/jobly/internal/config"
	"github.com/ijpettengill/jobly/internal/events"
)

const (
	notificationQueueSize = 256
	deliveryTimeout       = 5 * time.Second
)

// ErrNotificationQueueFull is returned by event handlers when the delivery queue is saturated.
var ErrNotificationQueueFull = errors.New("notification queue full")

// NotificationService forwards job board events to the configured channels.
// Handlers only enqueue; Run delivers in the background.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	client     *http.Client
	queue      chan events.Event
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		client:     &http.Client{Timeout: deliveryTimeout},
		queue:      make(chan events.Event, notificationQueueSize),
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventJobPosted, n.enqueue)
	n.dispatcher.Subscribe(events.EventJobRemoved, n.enqueue)
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.enqueue)
}

// Run delivers queued events until ctx is cancelled. Each delivery gets its own timeout,
// detached from the request that published the event.
func (n *NotificationService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-n.queue:
			deliverCtx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
			if err := n.deliver(deliverCtx, event); err != nil {
				n.logger.Warn("notification delivery failed",
					zap.String("event_id", event.ID),
					zap.String("event_type", string(event.Type)),
					zap.Error(err))
			}
			cancel()
		}
	}
}

func (n *NotificationService) enqueue(_ context.Context, event events.Event) error {
	select {
	case n.queue <- event:
		return nil
	default:
		return fmt.Errorf("%w: dropping %s %s", ErrNotificationQueueFull, event.Type, event.ID)
	}
}

func (n *NotificationService) deliver(ctx context.Context, event events.Event) error {
	n.logger.Info("notification",
		zap.String("event_type", string(event.Type)),
		zap.String("actor", event.Actor),
		zap.Any("payload", event.Payload))

	if event.Type == events.EventApplicationSubmitted {
		n.sendEmailNotificationStub(event)
	}
	return n.sendWebhook(ctx, event)
}

func (n *NotificationService) sendEmailNotificationStub(event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", event.Actor),
		zap.String("event_type", string(event.Type)))
}

// sendWebhook POSTs the event as JSON. Non-2xx responses are errors.
func (n *NotificationService) sendWebhook(ctx context.Context, event events.Event) error {
	url := strings.TrimSpace(n.cfg.WebhookURL)
	if url == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
