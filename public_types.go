package storefront

import "github.com/reservat/storefront-go/internal/types"

// Public type aliases so SDK consumers can import only this package.
type (
	// Domain entities
	Service           = types.Service
	CartItem          = types.CartItem
	Reservation       = types.Reservation
	User              = types.User
	Session           = types.Session
	ReservationRecord = types.ReservationRecord

	// Inputs
	AddOptions    = types.AddOptions
	SearchFilters = types.SearchFilters
)

// Service type values.
const (
	TypeLodging    = types.TypeLodging
	TypeRestaurant = types.TypeRestaurant
	TypeTransport  = types.TypeTransport
	TypeExperience = types.TypeExperience
)

// CategoryAll disables category filtering.
const CategoryAll = "all"
