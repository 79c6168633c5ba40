// Package postal resolves Indian pincodes to post offices through the public
// India Post lookup API.
package postal

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/resilience"
)

const (
	DefaultBaseURL = "https://api.postalpincode.in"
	DefaultTimeout = 5 * time.Second

	lookupOperation = "postal.lookup"
)

// LookupObserver records the outcome of every Locate call.
type LookupObserver interface {
	ObservePostalLookup(status domain.PostalStatus, failure domain.PostalFailure, cached bool)
}

type Options struct {
	Timeout    time.Duration
	CacheTTL   time.Duration
	HTTPClient *http.Client
	Executor   *resilience.Executor
	Observer   LookupObserver
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
	cache      *cache.Cache
	observer   LookupObserver
}

func New(baseURL string, opts Options) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var lookups *cache.Cache
	if opts.CacheTTL > 0 {
		lookups = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		executor:   opts.Executor,
		cache:      lookups,
		observer:   opts.Observer,
	}
}

// Locate never fails: transport, status and decoding problems are folded into
// a PostalFailed result. Only definitive answers are cached.
func (c *Client) Locate(ctx context.Context, pincode string) domain.PostalLookup {
	if c.cache != nil {
		if cached, ok := c.cache.Get(pincode); ok {
			lookup := cached.(domain.PostalLookup)
			c.observe(lookup, true)
			return lookup
		}
	}

	var lookup domain.PostalLookup
	call := func(ctx context.Context) error {
		var err error
		lookup, err = c.fetch(ctx, pincode)
		return err
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, lookupOperation, call, classifyPostalError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		failure := failureOf(err)
		slog.Warn("postal_lookup_failed",
			"pincode", pincode,
			"failure", string(failure),
			"error", err,
		)
		lookup = domain.PostalLookup{Status: domain.PostalFailed, Failure: failure}
		c.observe(lookup, false)
		return lookup
	}

	if c.cache != nil {
		c.cache.SetDefault(pincode, lookup)
	}
	c.observe(lookup, false)
	return lookup
}

func (c *Client) observe(lookup domain.PostalLookup, cached bool) {
	if c.observer != nil {
		c.observer.ObservePostalLookup(lookup.Status, lookup.Failure, cached)
	}
}
