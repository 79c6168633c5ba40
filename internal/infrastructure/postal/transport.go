package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

type pincodeResponse struct {
	Message    string            `json:"Message"`
	Status     string            `json:"Status"`
	PostOffice []postOfficeEntry `json:"PostOffice"`
}

type postOfficeEntry struct {
	Name       string `json:"Name"`
	BranchType string `json:"BranchType"`
	Division   string `json:"Division"`
	District   string `json:"District"`
	State      string `json:"State"`
	Pincode    string `json:"Pincode"`
}

func (c *Client) fetch(ctx context.Context, pincode string) (domain.PostalLookup, error) {
	endpoint := c.baseURL + "/pincode/" + url.PathEscape(pincode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.PostalLookup{}, fmt.Errorf("create postal request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PostalLookup{}, fmt.Errorf("postal request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.PostalLookup{}, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var payload []pincodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.PostalLookup{}, &MalformedResponseError{Reason: "decode body", Err: err}
	}
	if len(payload) == 0 {
		return domain.PostalLookup{}, &MalformedResponseError{Reason: "empty result array"}
	}

	first := payload[0]
	if !strings.EqualFold(strings.TrimSpace(first.Status), "Success") || len(first.PostOffice) == 0 {
		return domain.PostalLookup{Status: domain.PostalNoResults}, nil
	}

	offices := make([]domain.PostOffice, 0, len(first.PostOffice))
	for _, entry := range first.PostOffice {
		offices = append(offices, domain.PostOffice{
			Name:       entry.Name,
			BranchType: entry.BranchType,
			Division:   entry.Division,
			District:   entry.District,
			State:      entry.State,
			Pincode:    entry.Pincode,
		})
	}
	return domain.PostalLookup{Status: domain.PostalFound, Offices: offices}, nil
}
