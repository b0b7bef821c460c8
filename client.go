// Package storefront is the state and data core of the ReservaT tourism
// storefront: session lifecycle, cart semantics, photo-fetch caching and
// catalog filtering over the remote services API. The UI layer reads state
// snapshots and issues actions; every network or persistence effect runs
// here, outside the reducer.
package storefront

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/reservat/storefront-go/internal/api"
	"github.com/reservat/storefront-go/internal/cart"
	"github.com/reservat/storefront-go/internal/catalog"
	"github.com/reservat/storefront-go/internal/fanout"
	"github.com/reservat/storefront-go/internal/messages"
	"github.com/reservat/storefront-go/internal/photocache"
	"github.com/reservat/storefront-go/internal/session"
	"github.com/reservat/storefront-go/internal/types"
	"github.com/reservat/storefront-go/storage"
)

// Client composes the storefront core behind one dispatch surface.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	port    storage.Port
	tokens  *storage.TokenStore
	store   *store
	session *session.Manager
	photos  *photocache.Cache
	pool    *fanout.Pool

	poolCfg fanout.Config

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given API base URL. Additional options can
// be provided via functional arguments; storage defaults to in-memory.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zerolog.Nop(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	if c.port == nil {
		c.port = storage.NewMemory()
	}
	c.tokens = storage.NewTokenStore(c.port)
	c.store = newStore(storage.NewCartStore(c.port, c.log), c.log)
	c.session = session.New(c.http, c.baseURL, c.tokens, c.log)
	c.photos = photocache.New(
		func(ctx context.Context, serviceID string) ([]string, error) {
			return api.ListPhotos(ctx, c.http, c.baseURL, serviceID)
		},
		func(serviceID string, urls []string) {
			c.store.Dispatch(SetServicePhotos{ServiceID: serviceID, Photos: urls})
		},
		c.log,
	)
	c.pool = fanout.New(c.poolCfg, c.log)

	// Wrap HTTP transport to attach the bearer token when a session exists.
	c.wrapTransportWithBearer()

	return c
}

// wrapTransportWithBearer installs the transport that adds the Authorization
// header from the persisted token to every outgoing request.
func (c *Client) wrapTransportWithBearer() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &bearerTransport{
		base:   baseTransport,
		tokens: c.tokens,
	}
}

// bearerTransport wraps an http.RoundTripper to add the Authorization header
// whenever a valid token is stored. Requests go out bare otherwise.
type bearerTransport struct {
	base   http.RoundTripper
	tokens *storage.TokenStore
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := t.tokens.Load(req.Context())
	if !ok {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(cloned)
}

// Close releases the client. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// State returns a snapshot of the application state.
func (c *Client) State() State { return c.store.State() }

// Dispatch applies a raw action. Most callers use the named operations
// below; this is the escape hatch for UI layers that drive actions directly.
func (c *Client) Dispatch(a Action) State { return c.store.Dispatch(a) }

// --------------------------------------------------------------------
// Session operations
// --------------------------------------------------------------------

// RestoreSession re-establishes the session from a persisted token on app
// start. No token, an expired token or an undecodable one yields (nil, nil)
// with no state change; a profile-fetch failure forces logout and surfaces
// an error state.
func (c *Client) RestoreSession(ctx context.Context) (*types.User, error) {
	if _, ok := c.tokens.Load(ctx); !ok {
		return nil, nil
	}

	c.store.Dispatch(SetLoading{Loading: true})
	user, err := c.session.Restore(ctx)
	if err != nil {
		c.store.Dispatch(SetError{Message: messages.Lookup("user_load_failed")})
		c.store.Dispatch(Logout{})
		return nil, err
	}
	c.store.Dispatch(SetUser{User: user}) // user may be nil: no session
	return user, nil
}

// Login authenticates and establishes a session. On failure the returned
// error is a typed *AuthError whose Message is already localized and has
// been surfaced through the error state.
func (c *Client) Login(ctx context.Context, email, password string) (*types.User, error) {
	c.store.Dispatch(SetLoading{Loading: true})
	c.store.Dispatch(SetError{Message: ""})

	user, err := c.session.Login(ctx, email, password)
	if err != nil {
		msg := messages.Lookup("auth_generic")
		if ae, ok := AsAuthError(err); ok {
			msg = ae.Message
		}
		c.store.Dispatch(SetError{Message: msg})
		return nil, err
	}
	c.store.Dispatch(SetUser{User: user})
	return user, nil
}

// Logout clears the persisted token and the authenticated identity.
// Idempotent.
func (c *Client) Logout(ctx context.Context) {
	c.session.Logout(ctx)
	c.store.Dispatch(Logout{})
}

// --------------------------------------------------------------------
// Catalog operations
// --------------------------------------------------------------------

// FetchServices loads the full service catalog into state.
func (c *Client) FetchServices(ctx context.Context) ([]types.Service, error) {
	c.store.Dispatch(SetLoading{Loading: true})
	services, err := api.ListServices(ctx, c.http, c.baseURL)
	if err != nil {
		c.log.Error().Err(err).Msg("service catalog fetch failed")
		c.store.Dispatch(SetError{Message: messages.Lookup("services_load_failed")})
		return nil, err
	}
	c.store.Dispatch(SetServices{Services: services})
	return services, nil
}

// FilteredServices applies the current category and search filters to the
// fetched catalog.
func (c *Client) FilteredServices() []types.Service {
	s := c.store.State()
	return catalog.Filter(s.Services, s.Category, s.Filters)
}

// SetCategory switches the active category ("all" disables the filter).
func (c *Client) SetCategory(category string) { c.store.Dispatch(SetCategory{Category: category}) }

// SetSearchFilters replaces the active search filters.
func (c *Client) SetSearchFilters(f types.SearchFilters) {
	c.store.Dispatch(SetSearchFilters{Filters: f})
}

// --------------------------------------------------------------------
// Photo operations
// --------------------------------------------------------------------

// ServicePhotos returns the photo URLs for a service. Results are memoized
// for the session; a concurrent fetch for the same id yields an empty
// sequence immediately instead of a duplicate request. Never errors.
func (c *Client) ServicePhotos(ctx context.Context, serviceID string) []string {
	return c.photos.Photos(ctx, serviceID)
}

// --------------------------------------------------------------------
// Cart operations
// --------------------------------------------------------------------

// AddToCart merges a service into the cart; the resulting cart is persisted
// before this returns.
func (c *Client) AddToCart(svc types.Service, opts types.AddOptions) State {
	return c.store.Dispatch(AddToCart{Service: svc, Options: opts})
}

// RemoveFromCart drops the line for serviceID.
func (c *Client) RemoveFromCart(serviceID string) State {
	return c.store.Dispatch(RemoveFromCart{ServiceID: serviceID})
}

// SetCartQuantity sets a line's quantity exactly; <= 0 removes the line.
func (c *Client) SetCartQuantity(serviceID string, quantity int) State {
	return c.store.Dispatch(SetCartQuantity{ServiceID: serviceID, Quantity: quantity})
}

// ClearCart empties the cart.
func (c *Client) ClearCart() State { return c.store.Dispatch(ClearCart{}) }

// CartTotal is the sum of price*quantity over the cart.
func (c *Client) CartTotal() float64 { return cart.Total(c.store.State().Cart) }

// CartItemCount is the sum of quantities, not the number of lines.
func (c *Client) CartItemCount() int { return cart.ItemCount(c.store.State().Cart) }

// --------------------------------------------------------------------
// Reservation operations
// --------------------------------------------------------------------

// Reservations lists the authenticated account's reservations.
func (c *Client) Reservations(ctx context.Context) ([]types.ReservationRecord, error) {
	sess, ok := c.session.Current()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return api.ListReservations(ctx, c.http, c.baseURL, sess.UserID)
}
