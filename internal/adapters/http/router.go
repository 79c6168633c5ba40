package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kirillkom/scheme-advisor/internal/config"
	"github.com/kirillkom/scheme-advisor/internal/core/ports"
	"github.com/kirillkom/scheme-advisor/internal/observability/metrics"
)

const serviceName = "scheme-advisor-api"

// CensusStatus reports how many districts are currently loaded.
type CensusStatus interface {
	Len() int
}

type Dependencies struct {
	Districts ports.DistrictAdvisor
	Profiles  ports.ProfileAdvisor
	Accounts  ports.AccountService
	Census    ports.CensusAdmin
	Status    CensusStatus
	Metrics   *metrics.HTTPServerMetrics
}

type Router struct {
	cfg  config.Config
	deps Dependencies
}

func NewRouter(cfg config.Config, deps Dependencies) *Router {
	return &Router{
		cfg:  cfg,
		deps: deps,
	}
}

func (rt *Router) Handler() (http.Handler, error) {
	validator, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("GET /openapi.yaml", serveOpenAPISpec)
	if rt.deps.Metrics != nil {
		mux.Handle("GET /metrics", rt.deps.Metrics.Handler())
	}
	mux.HandleFunc("POST /v1/districts/recommend", rt.recommendDistrict)
	mux.HandleFunc("POST /v1/profiles/recommend", rt.recommendProfile)
	mux.HandleFunc("POST /v1/accounts/signup", rt.signup)
	mux.HandleFunc("POST /v1/accounts/login", rt.login)
	mux.HandleFunc("POST /v1/admin/census", rt.uploadCensus)
	mux.HandleFunc("POST /v1/admin/census/reload", rt.reloadCensus)

	var handler http.Handler = validator.Middleware(mux)
	handler = backpressureMiddleware(handler, rt.cfg.APIBackpressureMaxInFlight, time.Duration(rt.cfg.APIBackpressureWaitMS)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = corsMiddleware(handler, rt.cfg.CORSAllowedOrigins)
	if rt.deps.Metrics != nil {
		handler = rt.deps.Metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler), nil
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	districts := 0
	if rt.deps.Status != nil {
		districts = rt.deps.Status.Len()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"districts_loaded": districts,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": publicErrorMessage(status, err)})
}
