package cancel_booking

// CancelBookingRequest is the HTTP request body for both cancel endpoints.
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}
