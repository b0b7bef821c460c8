package storefront

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/reservat/storefront-go/internal/cart"
	"github.com/reservat/storefront-go/internal/catalog"
	"github.com/reservat/storefront-go/internal/types"
	"github.com/reservat/storefront-go/storage"
)

// State is the single authoritative application state. Values returned to
// callers are snapshots; mutating them never touches the store.
type State struct {
	User          *types.User
	Authenticated bool
	Cart          []types.CartItem
	Services      []types.Service
	ServicePhotos map[string][]string
	Loading       bool
	Err           string
	Category      string
	Filters       types.SearchFilters
}

// Action is one discrete state transition. The set is closed: every action
// applies atomically with respect to readers, none partially.
type Action interface{ actionName() string }

type SetLoading struct{ Loading bool }

type SetError struct{ Message string }

type SetUser struct{ User *types.User }

// Logout clears the in-memory identity. Token removal is a side effect the
// client runs alongside the dispatch, outside the reducer.
type Logout struct{}

type SetServices struct{ Services []types.Service }

type SetServicePhotos struct {
	ServiceID string
	Photos    []string
}

type AddToCart struct {
	Service types.Service
	Options types.AddOptions
}

type RemoveFromCart struct{ ServiceID string }

type SetCartQuantity struct {
	ServiceID string
	Quantity  int
}

type ClearCart struct{}

type SetCategory struct{ Category string }

type SetSearchFilters struct{ Filters types.SearchFilters }

func (SetLoading) actionName() string       { return "set-loading" }
func (SetError) actionName() string         { return "set-error" }
func (SetUser) actionName() string          { return "set-user" }
func (Logout) actionName() string           { return "logout" }
func (SetServices) actionName() string      { return "set-services" }
func (SetServicePhotos) actionName() string { return "set-service-photos" }
func (AddToCart) actionName() string        { return "add-cart" }
func (RemoveFromCart) actionName() string   { return "remove-cart" }
func (SetCartQuantity) actionName() string  { return "update-cart" }
func (ClearCart) actionName() string        { return "clear-cart" }
func (SetCategory) actionName() string      { return "set-category" }
func (SetSearchFilters) actionName() string { return "set-search-filters" }

// reduce is a pure function from current state and action to next state.
// All I/O lives outside, in the effect layer around Dispatch.
func reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetLoading:
		s.Loading = act.Loading

	case SetError:
		s.Err = act.Message
		s.Loading = false

	case SetUser:
		s.User = act.User
		s.Authenticated = act.User != nil
		s.Loading = false

	case Logout:
		s.User = nil
		s.Authenticated = false

	case SetServices:
		services := make([]types.Service, len(act.Services))
		copy(services, act.Services)
		s.Services = services
		s.Loading = false

	case SetServicePhotos:
		photos := make(map[string][]string, len(s.ServicePhotos)+1)
		for k, v := range s.ServicePhotos {
			photos[k] = v
		}
		urls := make([]string, len(act.Photos))
		copy(urls, act.Photos)
		photos[act.ServiceID] = urls
		s.ServicePhotos = photos

	case AddToCart:
		s.Cart = cart.Add(s.Cart, act.Service, act.Options)

	case RemoveFromCart:
		s.Cart = cart.Remove(s.Cart, act.ServiceID)

	case SetCartQuantity:
		s.Cart = cart.SetQuantity(s.Cart, act.ServiceID, act.Quantity)

	case ClearCart:
		s.Cart = nil

	case SetCategory:
		s.Category = act.Category

	case SetSearchFilters:
		s.Filters = act.Filters
	}
	return s
}

// store guards the state and runs the cart-persistence effect. Dispatches
// never interleave: each holds the lock through its persistence side effect,
// so a crash right after a mutation leaves durable state matching memory.
type store struct {
	mu    sync.RWMutex
	state State
	carts *storage.CartStore
	log   zerolog.Logger
}

func newStore(carts *storage.CartStore, log zerolog.Logger) *store {
	s := &store{
		carts: carts,
		log:   log,
		state: State{Category: catalog.CategoryAll},
	}
	if carts != nil {
		s.state.Cart = carts.Load(context.Background())
	}
	return s
}

func (s *store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = reduce(s.state, a)

	switch a.(type) {
	case AddToCart, RemoveFromCart, SetCartQuantity, ClearCart:
		if s.carts != nil {
			s.carts.Save(context.Background(), s.state.Cart)
		}
	}
	return snapshot(s.state)
}

func (s *store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.state)
}

func snapshot(s State) State {
	s.Cart = cart.Clone(s.Cart)

	services := make([]types.Service, len(s.Services))
	copy(services, s.Services)
	s.Services = services

	photos := make(map[string][]string, len(s.ServicePhotos))
	for k, v := range s.ServicePhotos {
		urls := make([]string, len(v))
		copy(urls, v)
		photos[k] = urls
	}
	s.ServicePhotos = photos

	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
