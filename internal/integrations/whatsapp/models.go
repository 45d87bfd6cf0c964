package whatsapp

// SessionStatus is the gateway's report of the WhatsApp session state.
type SessionStatus struct {
	State   string `json:"state"` // disconnected | pairing | connected
	Number  string `json:"number,omitempty"`
	Pairing bool   `json:"pairing"`
}

// QRCode carries the pairing QR as a base64 PNG.
type QRCode struct {
	Image     string `json:"image"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
