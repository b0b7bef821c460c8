package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	errs "github.com/reservat/storefront-go/internal/errors"
)

// CreateReservation posts one reservation record. Failures are classified
// so the checkout pool can retry transient ones and fail fast on rejections.
func CreateReservation(ctx context.Context, httpClient *http.Client, baseURL string, req CreateReservationRequest) (*ReservationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/reservas/crear", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.NewNetworkError("create reservation", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errs.NewHTTPError(resp.StatusCode, string(b), "create reservation")
	}

	var rec ReservationRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		// Record created but unreadable; report what we know.
		rec = ReservationRecord{ServiceID: req.ServiceID, Status: req.Status}
	}
	return &rec, nil
}

// ListReservations fetches the reservations belonging to accountID.
func ListReservations(ctx context.Context, httpClient *http.Client, baseURL, accountID string) ([]ReservationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/reservas/listar/%s", baseURL, accountID)
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
		return nil, fmt.Errorf("list reservations: status %d", resp.StatusCode)
	}

	var lr ListReservationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Reservations, nil
}
