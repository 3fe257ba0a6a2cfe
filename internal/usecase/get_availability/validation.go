package get_availability

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	// SHIPPING не привязан к окнам
	if !req.Type.IsTimed() {
		return fmt.Errorf("%w: %q", ErrInvalidType, req.Type)
	}

	return nil
}
