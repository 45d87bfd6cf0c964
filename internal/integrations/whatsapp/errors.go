package whatsapp

import "errors"

var (
	// ErrNotConnected is returned when the gateway session is not paired.
	ErrNotConnected = errors.New("whatsapp client: session not connected")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("whatsapp client: internal error")

	// ErrInvalidResponse is returned on a malformed gateway response.
	ErrInvalidResponse = errors.New("whatsapp client: invalid response")
)
