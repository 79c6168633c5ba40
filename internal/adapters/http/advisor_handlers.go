package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

func (rt *Router) recommendDistrict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		District string `json:"district"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	report, err := rt.deps.Districts.Recommend(r.Context(), req.District)
	if err != nil {
		if domain.IsKind(err, domain.ErrDistrictNotFound) {
			rt.recordDistrict("not_found", 0)
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "District not found"})
			return
		}
		rt.recordDistrict("error", 0)
		writeError(w, r, err)
		return
	}

	rt.recordDistrict("found", len(report.Schemes))
	writeJSON(w, http.StatusOK, report)
}

type profileRequest struct {
	Name       string       `json:"name"`
	Age        flexibleInt  `json:"age"`
	Gender     string       `json:"gender"`
	Occupation string       `json:"occupation"`
	District   string       `json:"district"`
	Pincode    flexibleText `json:"pincode"`
}

func (rt *Router) recommendProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}

	report, err := rt.deps.Profiles.Recommend(r.Context(), domain.ProfileInput{
		Name:       req.Name,
		Age:        int(req.Age),
		Gender:     req.Gender,
		Occupation: req.Occupation,
		District:   req.District,
		Pincode:    string(req.Pincode),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if rt.deps.Metrics != nil {
		rt.deps.Metrics.RecordProfileRecommendation(serviceName, len(report.RecommendedSchemes))
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) recordDistrict(outcome string, schemes int) {
	if rt.deps.Metrics != nil {
		rt.deps.Metrics.RecordDistrictRecommendation(serviceName, outcome, schemes)
	}
}

// flexibleInt accepts 30, 30.9 or "30". Fractions are truncated.
type flexibleInt int

func (v *flexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*v = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("age %q is not a whole number", s)
		}
		*v = flexibleInt(n)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("age must be a number or numeric string")
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("age out of range")
	}
	*v = flexibleInt(int(f))
	return nil
}

// flexibleText accepts a string or a bare JSON number, kept as written.
type flexibleText string

func (v *flexibleText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = flexibleText(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("pincode must be a number or string")
		}
		*v = flexibleText(n.String())
		return nil
	}
}
