package api

import "github.com/reservat/storefront-go/internal/types"

// Local aliases keep call sites in this package terse.
type (
	Service                  = types.Service
	User                     = types.User
	LoginRequest             = types.LoginRequest
	LoginResponse            = types.LoginResponse
	ListServicesResponse     = types.ListServicesResponse
	ListPhotosResponse       = types.ListPhotosResponse
	ReservationRecord        = types.ReservationRecord
	ListReservationsResponse = types.ListReservationsResponse
	CreateReservationRequest = types.CreateReservationRequest
	ErrorBody                = types.ErrorBody
)
