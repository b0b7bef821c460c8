// Package api holds the HTTP calls against the remote storefront backend.
// Functions are free-standing and take the http.Client plus baseURL so tests
// can point them at a fake server; authorization is added by the client's
// transport wrapper, never here.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListServices fetches the full service catalog.
func ListServices(ctx context.Context, httpClient *http.Client, baseURL string) ([]Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/servicios/listar/", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list services: status %d", resp.StatusCode)
	}

	var lr ListServicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Services, nil
}
