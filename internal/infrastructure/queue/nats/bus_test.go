package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/resilience"
)

type publishRecorder struct {
	failures int
	calls    int
	subject  string
	payload  []byte
}

func (r *publishRecorder) publish(subject string, data []byte) error {
	r.calls++
	r.subject = subject
	r.payload = data
	if r.calls <= r.failures {
		return nats.ErrNoServers
	}
	return nil
}

func newTestBus(rec *publishRecorder, maxAttempts int) *ReloadBus {
	return &ReloadBus{
		publish: rec.publish,
		subject: DefaultCensusSubject,
		executor: resilience.NewExecutor(resilience.Config{
			RetryMaxAttempts:    maxAttempts,
			RetryInitialBackoff: time.Millisecond,
			RetryMaxBackoff:     2 * time.Millisecond,
			BreakerEnabled:      true,
		}, nil),
	}
}

func TestPublishCensusReloadRetriesConnectivityErrors(t *testing.T) {
	rec := &publishRecorder{failures: 2}
	bus := newTestBus(rec, 3)

	if err := bus.PublishCensusReload(context.Background()); err != nil {
		t.Fatalf("PublishCensusReload() error = %v", err)
	}
	if rec.calls != 3 {
		t.Fatalf("expected 3 publish attempts, got %d", rec.calls)
	}
	if rec.subject != DefaultCensusSubject {
		t.Fatalf("unexpected subject %q", rec.subject)
	}

	var msg reloadMessage
	if err := json.Unmarshal(rec.payload, &msg); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if msg.RequestID == "" || msg.RequestedAt.IsZero() {
		t.Fatalf("expected request id and timestamp, got %+v", msg)
	}
}

func TestPublishCensusReloadExhaustedRetriesAreTemporary(t *testing.T) {
	rec := &publishRecorder{failures: 10}
	bus := newTestBus(rec, 3)

	err := bus.PublishCensusReload(context.Background())
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
	if !errors.Is(err, nats.ErrNoServers) {
		t.Fatalf("expected cause to be kept, got %v", err)
	}
	if rec.calls != 3 {
		t.Fatalf("expected 3 publish attempts, got %d", rec.calls)
	}
}

func TestPublishCensusReloadWithoutExecutorTriesOnce(t *testing.T) {
	rec := &publishRecorder{failures: 1}
	bus := &ReloadBus{publish: rec.publish, subject: DefaultCensusSubject}

	err := bus.PublishCensusReload(context.Background())
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
	if rec.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", rec.calls)
	}
}
