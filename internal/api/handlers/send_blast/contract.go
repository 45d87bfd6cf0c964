package send_blast

import (
	"context"

	sendBlast "github.com/studiokita/booking-service/internal/usecase/send_blast"
)

type SendBlastUseCase interface {
	Execute(ctx context.Context, req *sendBlast.Request) (*sendBlast.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
