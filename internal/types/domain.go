package types

import "time"

// Service type values as delivered by the catalog API.
const (
	TypeLodging    = "alojamiento"
	TypeRestaurant = "restaurante"
	TypeTransport  = "transporte"
	TypeExperience = "experiencias"
)

// Service is one bookable tourism service from the remote catalog.
// Instances are immutable once fetched; the catalog owns them.
type Service struct {
	ID          string  `json:"id_servicio"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	City        string  `json:"ciudad"`
	Department  string  `json:"departamento"`
	Type        string  `json:"tipo_servicio"`
	Price       float64 `json:"precio"`
	Currency    string  `json:"moneda"`
	Relevance   string  `json:"relevancia"`
	// Details is an opaque JSON blob rendered by the UI layer; the core
	// never inspects it.
	Details    string `json:"detalles_del_servicio,omitempty"`
	CreatedAt  string `json:"fecha_creacion,omitempty"`
	ProviderID string `json:"id_proveedor,omitempty"`
	Active     bool   `json:"activo"`
}

// Reservation carries the optional booking metadata attached to a cart line.
// Empty fields mean "not set"; merges treat them as absent.
type Reservation struct {
	CheckIn  string `json:"fecha_inicio,omitempty"`
	CheckOut string `json:"fecha_fin,omitempty"`
	Time     string `json:"hora,omitempty"`
}

// CartItem is one cart line: a denormalized service snapshot plus the
// requested quantity and optional reservation metadata.
// Quantity is always >= 1; a line reaching zero is removed, never kept.
type CartItem struct {
	Service
	Quantity    int          `json:"quantity"`
	Reservation *Reservation `json:"reservation,omitempty"`
}

// AddOptions tunes a cart add. Zero Quantity means 1.
type AddOptions struct {
	Quantity    int
	Reservation *Reservation
}

// User is the authenticated account profile fetched after login.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"nombre"`
	Email  string `json:"email"`
	Active bool   `json:"activo"`
}

// Session is the authenticated identity derived from the bearer token.
// The token claim is the source of truth for expiry; User is fetched lazily.
type Session struct {
	UserID    string
	ExpiresAt time.Time
	User      *User
}

// Expired reports whether the session's token expiry is in the past.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SearchFilters narrows the category-filtered service list. All fields are
// optional and compose with AND semantics.
type SearchFilters struct {
	Query       string `json:"query"`
	City        string `json:"ciudad"`
	ServiceType string `json:"tipo_servicio"`
	Relevance   string `json:"relevancia"`
}

// ReservationRecord is a reservation as echoed back by the backend.
type ReservationRecord struct {
	ID        string `json:"id_reserva"`
	ServiceID string `json:"id_servicio"`
	AccountID string `json:"id_mayorista"`
	Quantity  int    `json:"cantidad"`
	Status    string `json:"estado"`
	CheckIn   string `json:"fecha_inicio,omitempty"`
	CheckOut  string `json:"fecha_fin,omitempty"`
	Time      string `json:"hora,omitempty"`
	CreatedAt string `json:"fecha_creacion,omitempty"`
}

// StatusPending is the only status this client ever writes; checkout posts
// pending reservations and performs no payment.
const StatusPending = "pendiente"
