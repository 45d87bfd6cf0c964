package send_blast

// SendBlastRequest is the HTTP request body.
type SendBlastRequest struct {
	Message string `json:"message"`
}
