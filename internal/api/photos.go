package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListPhotos fetches the photo URLs for one service, in the order the
// backend returns them.
func ListPhotos(ctx context.Context, httpClient *http.Client, baseURL, serviceID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/fotos/servicios/%s", baseURL, serviceID)
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
		return nil, fmt.Errorf("list photos: status %d", resp.StatusCode)
	}

	var pr ListPhotosResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(pr.Photos))
	for _, p := range pr.Photos {
		urls = append(urls, p.URL)
	}
	return urls, nil
}
