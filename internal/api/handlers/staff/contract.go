package staff

import "context"

type StudioService interface {
	AddStaff(ctx context.Context, studioID, ownerID, newStaffID int64) error
	RemoveStaff(ctx context.Context, studioID, ownerID, staffID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
