package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/kirillkom/scheme-advisor/internal/infrastructure/resilience"
)

const DefaultCensusSubject = "census.reload"

// ReloadBus broadcasts census reload requests. Every subscriber receives every
// message, so each API replica rebuilds its own table.
type ReloadBus struct {
	conn     *nats.Conn
	publish  func(subject string, data []byte) error
	subject  string
	executor *resilience.Executor
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
}

type reloadMessage struct {
	RequestID   string    `json:"request_id"`
	RequestedAt time.Time `json:"requested_at"`
}

func New(url, subject string, options Options) (*ReloadBus, error) {
	if subject == "" {
		subject = DefaultCensusSubject
	}
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}

	conn, err := nats.Connect(
		url,
		nats.Name("scheme-advisor"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &ReloadBus{
		conn:     conn,
		publish:  conn.Publish,
		subject:  subject,
		executor: options.ResilienceExecutor,
	}, nil
}

func (b *ReloadBus) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}

func (b *ReloadBus) PublishCensusReload(ctx context.Context) error {
	msg := reloadMessage{
		RequestID:   uuid.NewString(),
		RequestedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal reload message: %w", err)
	}

	call := func(_ context.Context) error {
		if err := b.publish(b.subject, payload); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	if b.executor != nil {
		err = b.executor.Execute(ctx, "nats.publish", call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return wrapTemporaryIfNeeded(err)
	}
	slog.Info("census_reload_published", "request_id", msg.RequestID, "subject", b.subject)
	return nil
}

// SubscribeCensusReload blocks until ctx is done, running handler for every
// reload request. Handler errors are logged; the subscription stays up.
func (b *ReloadBus) SubscribeCensusReload(ctx context.Context, handler func(context.Context) error) error {
	sub, err := b.conn.Subscribe(b.subject, func(m *nats.Msg) {
		if ctx.Err() != nil {
			return
		}

		var msg reloadMessage
		if err := json.Unmarshal(m.Data, &msg); err != nil {
			slog.Warn("census_reload_message_invalid", "error", err)
		}
		if err := handler(ctx); err != nil {
			slog.Error("census_reload_handler_failed", "request_id", msg.RequestID, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := b.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := b.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}
