package send_blast

// Request is a staff-initiated broadcast to every past customer.
type Request struct {
	UserID   int64
	StudioID int64
	Message  string
}

// Response summarizes delivery. Sent plus Failed equals Recipients unless
// the blast was aborted by a disconnected session.
type Response struct {
	StudioID   int64 `json:"studioId"`
	Recipients int   `json:"recipients"`
	Sent       int   `json:"sent"`
	Failed     int   `json:"failed"`
}
