package postal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/resilience"
)

const successBody = `[{"Message":"Number of pincode(s) found:2","Status":"Success","PostOffice":[
{"Name":"Adyar","BranchType":"Sub Post Office","DeliveryStatus":"Delivery","Circle":"Tamilnadu","District":"Chennai","Division":"Chennai City South","Region":"Chennai City","State":"Tamil Nadu","Country":"India","Pincode":"600020"},
{"Name":"Gandhinagar","BranchType":"Branch Post Office","DeliveryStatus":"Delivery","Circle":"Tamilnadu","District":"Chennai","Division":"Chennai City South","Region":"Chennai City","State":"Tamil Nadu","Country":"India","Pincode":"600020"}]}]`

type observerFake struct {
	statuses []domain.PostalStatus
	cached   int
}

func (o *observerFake) ObservePostalLookup(status domain.PostalStatus, _ domain.PostalFailure, cached bool) {
	o.statuses = append(o.statuses, status)
	if cached {
		o.cached++
	}
}

func TestLocateReturnsOffices(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(successBody))
	}))
	defer server.Close()

	lookup := New(server.URL, Options{}).Locate(context.Background(), "600020")
	if path != "/pincode/600020" {
		t.Fatalf("unexpected request path %q", path)
	}
	if lookup.Status != domain.PostalFound {
		t.Fatalf("expected found, got %+v", lookup)
	}
	if len(lookup.Offices) != 2 {
		t.Fatalf("expected 2 offices, got %d", len(lookup.Offices))
	}
	want := "Adyar (Sub Post Office Branch), Chennai City South, Chennai, Tamil Nadu - 600020"
	if got := lookup.Lines()[0]; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLocateTreatsErrorStatusAsNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"Message":"No records found","Status":"Error","PostOffice":null}]`))
	}))
	defer server.Close()

	lookup := New(server.URL, Options{}).Locate(context.Background(), "999999")
	if lookup.Status != domain.PostalNoResults {
		t.Fatalf("expected no results, got %+v", lookup)
	}
	if lines := lookup.Lines(); len(lines) != 1 || lines[0] != domain.NoPostOfficesNotice {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestLocateClassifiesFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    domain.PostalFailure
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusBadGateway)
			},
			want: domain.PostalFailureUnavailable,
		},
		{
			name: "client error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad pincode", http.StatusBadRequest)
			},
			want: domain.PostalFailureRejected,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>maintenance</html>"))
			},
			want: domain.PostalFailureMalformed,
		},
		{
			name: "empty array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("[]"))
			},
			want: domain.PostalFailureMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			lookup := New(server.URL, Options{}).Locate(context.Background(), "600020")
			if lookup.Status != domain.PostalFailed {
				t.Fatalf("expected failed, got %+v", lookup)
			}
			if lookup.Failure != tt.want {
				t.Fatalf("expected failure %q, got %q", tt.want, lookup.Failure)
			}
		})
	}
}

func TestLocateTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	lookup := New(server.URL, Options{Timeout: 20 * time.Millisecond}).Locate(context.Background(), "600020")
	if lookup.Status != domain.PostalFailed || lookup.Failure != domain.PostalFailureTimeout {
		t.Fatalf("expected timeout failure, got %+v", lookup)
	}
	if lines := lookup.Lines(); !strings.Contains(lines[0], "timeout") {
		t.Fatalf("expected timeout in message, got %v", lines)
	}
}

func TestLocateCachesDefinitiveAnswersOnly(t *testing.T) {
	var calls atomic.Int32
	failing := atomic.Bool{}
	failing.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if failing.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(successBody))
	}))
	defer server.Close()

	observer := &observerFake{}
	client := New(server.URL, Options{CacheTTL: time.Minute, Observer: observer})

	if lookup := client.Locate(context.Background(), "600020"); lookup.Status != domain.PostalFailed {
		t.Fatalf("expected failed lookup, got %+v", lookup)
	}
	failing.Store(false)
	for i := 0; i < 2; i++ {
		if lookup := client.Locate(context.Background(), "600020"); lookup.Status != domain.PostalFound {
			t.Fatalf("expected found lookup on call %d, got %+v", i, lookup)
		}
	}

	if calls.Load() != 2 {
		t.Fatalf("expected failure to bypass cache and success to be cached, got %d upstream calls", calls.Load())
	}
	if observer.cached != 1 || len(observer.statuses) != 3 {
		t.Fatalf("unexpected observations: %+v", observer)
	}
}

func TestLocateStopsCallingWhenCircuitOpen(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	executor := resilience.NewExecutor(resilience.Config{
		BreakerEnabled:      true,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	}, nil)
	client := New(server.URL, Options{Executor: executor})

	for i := 0; i < 3; i++ {
		lookup := client.Locate(context.Background(), "600020")
		if lookup.Failure != domain.PostalFailureUnavailable {
			t.Fatalf("expected unavailable on call %d, got %+v", i, lookup)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected open circuit to short-circuit the third call, got %d upstream calls", calls.Load())
	}
}

func TestRejectedRequestsDoNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusNotFound)
	}))
	defer server.Close()

	executor := resilience.NewExecutor(resilience.Config{
		BreakerEnabled:      true,
		BreakerMinRequests:  1,
		BreakerFailureRatio: 0.1,
	}, nil)
	client := New(server.URL, Options{Executor: executor})
	for i := 0; i < 3; i++ {
		if lookup := client.Locate(context.Background(), "600020"); lookup.Failure != domain.PostalFailureRejected {
			t.Fatalf("expected rejected on call %d, got %+v", i, lookup)
		}
	}
}
