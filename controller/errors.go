package controller

import "errors"

var (
	ErrParseRequest = errors.New("failed to parse request")

	ErrUserRegister  = errors.New("failed to register user")
	ErrGenerateToken = errors.New("failed to generate token")
	ErrUserLogin     = errors.New("failed to login")

	ErrCreateSession      = errors.New("failed to create an agent session")
	ErrGetSessions        = errors.New("failed to get agent sessions")
	ErrDeleteSession      = errors.New("failed to delete an agent session")
	ErrGetSessionMessages = errors.New("failed to get session messages")
	ErrUpdateSessionTitle = errors.New("failed to update session title")
	ErrClearSession       = errors.New("failed to clear session messages")

	ErrSessionNotFound = errors.New("session not found")
	ErrCallAgent       = errors.New("error while calling agent")

	ErrCreateListing = errors.New("failed to create listing")
	ErrGetListings   = errors.New("failed to get listings")
	ErrDeleteListing = errors.New("failed to delete listing")

	ErrCreateReserva       = errors.New("failed to create reserva")
	ErrGetReservas         = errors.New("failed to get reservas")
	ErrUpdateReservaStatus = errors.New("failed to update reserva status")

	ErrGetNotifications = errors.New("failed to get notifications")
	ErrMarkNotification = errors.New("failed to mark notification as read")

	ErrMediaDisabled   = errors.New("media storage is not configured")
	ErrGetPreSignedURL = errors.New("failed to get presigned url")
)
