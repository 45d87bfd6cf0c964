package staff

// AddStaffRequest is the HTTP request body.
type AddStaffRequest struct {
	UserID int64 `json:"userId"`
}
