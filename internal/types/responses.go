package types

// Wire shapes the remote API responds with. Only the envelopes the core
// depends on are modelled; everything else stays opaque.

// ListServicesResponse wraps the catalog listing.
type ListServicesResponse struct {
	Services []Service `json:"servicios"`
}

// LoginResponse carries the bearer token on successful authentication.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// Photo is one photo entry; only the URL is consumed.
type Photo struct {
	URL string `json:"url"`
}

// ListPhotosResponse wraps the photo listing for one service.
type ListPhotosResponse struct {
	Photos []Photo `json:"fotos"`
}

// ListReservationsResponse wraps the reservation listing for one account.
type ListReservationsResponse struct {
	Reservations []ReservationRecord `json:"reservas"`
}

// ErrorBody is the optional payload on non-2xx responses. Either field may
// carry the server's human-readable reason.
type ErrorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Reason returns whichever of the two fields is populated, message first.
func (e ErrorBody) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Detail
}
