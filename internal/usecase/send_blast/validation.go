package send_blast

import (
	"fmt"
	"strings"

	"github.com/studiokita/booking-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studio id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(req.Message) > domain.MaxBlastMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, domain.MaxBlastMessageLength)
	}
	return nil
}
