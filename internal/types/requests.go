package types

// LoginRequest carries the credential pair posted to the auth endpoint.
// The password field name matches the backend's Spanish schema.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"contraseña"`
}

// CreateReservationRequest is the body posted once per cart line during
// checkout. IdempotencyKey lets the backend drop duplicate submissions.
type CreateReservationRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	ServiceID      string `json:"id_servicio"`
	AccountID      string `json:"id_mayorista"`
	Quantity       int    `json:"cantidad"`
	Status         string `json:"estado"`
	CheckIn        string `json:"fecha_inicio,omitempty"`
	CheckOut       string `json:"fecha_fin,omitempty"`
	Time           string `json:"hora,omitempty"`
}
