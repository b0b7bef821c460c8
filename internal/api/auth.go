package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	errs "github.com/reservat/storefront-go/internal/errors"
)

// Login exchanges credentials for a bearer token. Non-2xx responses come
// back as a typed *errs.AuthError carrying the user-facing reason for the
// status; transport failures come back as a connection AuthError.
func Login(ctx context.Context, httpClient *http.Client, baseURL, email, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/usuarios/login", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return "", errs.NewConnectionAuthError()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb ErrorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return "", errs.NewAuthError(resp.StatusCode, eb.Reason())
	}

	var lr LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", errs.NewConnectionAuthError()
	}
	return lr.AccessToken, nil
}

// GetUser fetches the account profile for userID.
func GetUser(ctx context.Context, httpClient *http.Client, baseURL, userID string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/mayorista/consultar/%s", baseURL, userID)
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
		return nil, fmt.Errorf("get user: status %d", resp.StatusCode)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
