package update_booking_status

// UpdateStatusRequest is the HTTP request body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
