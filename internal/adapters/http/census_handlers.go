package httpadapter

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const maxCensusUploadBytes = 32 << 20

func (rt *Router) uploadCensus(w http.ResponseWriter, r *http.Request) {
	if !rt.authorizeAdmin(w, r) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCensusUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	districts, err := rt.deps.Census.Replace(r.Context(), file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":    "reload_requested",
		"districts": districts,
	})
}

func (rt *Router) reloadCensus(w http.ResponseWriter, r *http.Request) {
	if !rt.authorizeAdmin(w, r) {
		return
	}
	if err := rt.deps.Census.RequestReload(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reload_requested"})
}

// authorizeAdmin rejects every request when no admin key is configured.
func (rt *Router) authorizeAdmin(w http.ResponseWriter, r *http.Request) bool {
	if rt.deps.Census == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "census administration is disabled"})
		return false
	}
	if !isAuthorizedBearerHeader(r.Header.Get("Authorization"), rt.cfg.AdminAPIKey) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return false
	}
	return true
}

func isAuthorizedBearerHeader(headerValue, expectedToken string) bool {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" || expectedToken == "" {
		return false
	}
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(headerValue, bearerPrefix))
	return subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) == 1
}
