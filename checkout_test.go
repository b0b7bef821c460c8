package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservat/storefront-go/internal/types"
	"github.com/reservat/storefront-go/storage"
)

// checkoutBackend fakes login, profile and reservation creation. Reservation
// requests for ids in failIDs are rejected with 400.
type checkoutBackend struct {
	srv     *httptest.Server
	failIDs map[string]bool

	mu       sync.Mutex
	requests []types.CreateReservationRequest
}

func newCheckoutBackend(t *testing.T, failIDs ...string) *checkoutBackend {
	t.Helper()
	b := &checkoutBackend{failIDs: map[string]bool{}}
	for _, id := range failIDs {
		b.failIDs[id] = true
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/usuarios/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": signed})
	})
	mux.HandleFunc("/mayorista/consultar/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.User{ID: "u1", Name: "Ana", Active: true})
	})
	mux.HandleFunc("/reservas/crear", func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateReservationRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		b.requests = append(b.requests, req)
		b.mu.Unlock()

		if b.failIDs[req.ServiceID] {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.ReservationRecord{
			ID: "r-" + req.ServiceID, ServiceID: req.ServiceID, Status: req.Status,
		})
	})
	mux.HandleFunc("/reservas/listar/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reservas":[{"id_reserva":"r1","estado":"pendiente"}]}`))
	})

	b.srv = httptest.NewServer(mux)
	return b
}

func (b *checkoutBackend) seen() []types.CreateReservationRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]types.CreateReservationRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

func loggedInClient(t *testing.T, b *checkoutBackend) *Client {
	t.Helper()
	c := New(b.srv.URL,
		WithStorage(storage.NewMemory()),
		WithCheckoutRetry(1, time.Millisecond),
	)
	_, err := c.Login(context.Background(), "ana@correo.co", "secreta")
	require.NoError(t, err)
	return c
}

func fillCart(c *Client) {
	c.AddToCart(types.Service{ID: "s1", Name: "Hotel", Price: 100}, types.AddOptions{
		Reservation: &types.Reservation{CheckIn: "2026-09-01", CheckOut: "2026-09-05"},
	})
	c.AddToCart(types.Service{ID: "s2", Name: "Tour", Price: 40}, types.AddOptions{Quantity: 2})
	c.AddToCart(types.Service{ID: "s3", Name: "Bus", Price: 15}, types.AddOptions{})
}

func TestCheckoutFullSuccessClearsCart(t *testing.T) {
	b := newCheckoutBackend(t)
	defer b.srv.Close()

	c := loggedInClient(t, b)
	defer func() { _ = c.Close() }()
	fillCart(c)

	res, err := c.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CheckoutFullSuccess, res.Outcome)
	assert.Len(t, res.Lines, 3)
	for _, line := range res.Lines {
		assert.NoError(t, line.Err)
		require.NotNil(t, line.Reservation)
	}
	assert.Empty(t, c.State().Cart, "full success clears the cart")
	assert.Len(t, b.seen(), 3, "one request per line item")
}

func TestCheckoutPartialSuccessKeepsCart(t *testing.T) {
	b := newCheckoutBackend(t, "s2")
	defer b.srv.Close()

	c := loggedInClient(t, b)
	defer func() { _ = c.Close() }()
	fillCart(c)

	res, err := c.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CheckoutPartialSuccess, res.Outcome)

	var failed int
	for _, line := range res.Lines {
		if line.Err != nil {
			failed++
			assert.Equal(t, "s2", line.ServiceID)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Len(t, c.State().Cart, 3, "partial success must NOT clear the cart")
}

func TestCheckoutFullFailure(t *testing.T) {
	b := newCheckoutBackend(t, "s1", "s2", "s3")
	defer b.srv.Close()

	c := loggedInClient(t, b)
	defer func() { _ = c.Close() }()
	fillCart(c)

	res, err := c.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CheckoutFailure, res.Outcome)
	assert.Len(t, c.State().Cart, 3)
}

func TestCheckoutPostsPendingStatusWithReservationFields(t *testing.T) {
	b := newCheckoutBackend(t)
	defer b.srv.Close()

	c := loggedInClient(t, b)
	defer func() { _ = c.Close() }()
	fillCart(c)

	_, err := c.Checkout(context.Background())
	require.NoError(t, err)

	byID := map[string]types.CreateReservationRequest{}
	for _, req := range b.seen() {
		byID[req.ServiceID] = req
		assert.Equal(t, "pendiente", req.Status)
		assert.NotEmpty(t, req.IdempotencyKey)
		assert.Equal(t, "u1", req.AccountID)
	}
	assert.Equal(t, "2026-09-01", byID["s1"].CheckIn)
	assert.Equal(t, 2, byID["s2"].Quantity)
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	b := newCheckoutBackend(t)
	defer b.srv.Close()

	c := New(b.srv.URL, WithStorage(storage.NewMemory()))
	defer func() { _ = c.Close() }()
	c.AddToCart(types.Service{ID: "s1", Price: 10}, types.AddOptions{})

	_, err := c.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	b := newCheckoutBackend(t)
	defer b.srv.Close()

	c := loggedInClient(t, b)
	defer func() { _ = c.Close() }()

	_, err := c.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestReservationsRequiresAuthentication(t *testing.T) {
	b := newCheckoutBackend(t)
	defer b.srv.Close()

	c := New(b.srv.URL, WithStorage(storage.NewMemory()))
	defer func() { _ = c.Close() }()

	_, err := c.Reservations(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestReservationsListsByAccount(t *testing.T) {
	b := newCheckoutBackend(t)
	defer b.srv.Close()

	c := loggedInClient(t, b)
	defer func() { _ = c.Close() }()

	recs, err := c.Reservations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "r1", recs[0].ID)
}
