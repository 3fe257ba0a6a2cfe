package create_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFields возвращается, когда не заполнены обязательные поля
	ErrMissingFields = errors.New("create_appointment: missing required fields")

	// ErrInvalidEmail возвращается при некорректном email
	ErrInvalidEmail = errors.New("create_appointment: invalid email")

	// ErrInvalidPhone возвращается, если в телефоне нет цифр
	ErrInvalidPhone = errors.New("create_appointment: invalid phone")

	// ErrInvalidID возвращается, если в номере документа нет цифр
	ErrInvalidID = errors.New("create_appointment: invalid id number")

	// ErrInvalidType возвращается при неизвестном типе записи
	ErrInvalidType = errors.New("create_appointment: invalid appointment type")

	// ErrInvalidDate возвращается, если дата не разбирается как YYYY-MM-DD
	ErrInvalidDate = errors.New("create_appointment: invalid date")

	// ErrMissingSlot возвращается, когда для TRYOUT/PICKUP не указано время начала
	ErrMissingSlot = errors.New("create_appointment: start time is required")

	// ErrOutsideWindow возвращается, когда слот не помещается ни в одно окно
	ErrOutsideWindow = errors.New("create_appointment: slot is outside of availability windows")

	// ErrInvalidSlotSize возвращается, когда длина слота не равна шагу окна
	ErrInvalidSlotSize = errors.New("create_appointment: invalid slot size")

	// ErrSlotTaken возвращается, когда слот уже занят
	ErrSlotTaken = errors.New("create_appointment: slot already taken")

	// ErrUserLimitReached возвращается при превышении лимитов на клиента
	ErrUserLimitReached = errors.New("create_appointment: user limit reached")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// SlotSizeError длина слота не совпала с шагом окна
type SlotSizeError struct {
	Expected int
	Got      int
}

func (e *SlotSizeError) Error() string {
	return fmt.Sprintf("%v: expected %d minutes, got %d", ErrInvalidSlotSize, e.Expected, e.Got)
}

func (e *SlotSizeError) Unwrap() error {
	return ErrInvalidSlotSize
}

// LimitScope область анти-абьюз лимита
type LimitScope string

const (
	ScopeDay  LimitScope = "DAY"
	ScopeWeek LimitScope = "WEEK"
)

// LimitError превышен лимит записей на клиента
type LimitError struct {
	Scope LimitScope
	Limit int // только для WEEK
}

func (e *LimitError) Error() string {
	if e.Scope == ScopeWeek {
		return fmt.Sprintf("%v: scope=%s limit=%d", ErrUserLimitReached, e.Scope, e.Limit)
	}
	return fmt.Sprintf("%v: scope=%s", ErrUserLimitReached, e.Scope)
}

func (e *LimitError) Unwrap() error {
	return ErrUserLimitReached
}

// Kind возвращает код ошибки для ответа клиенту
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFields):
		return "MISSING_FIELDS"
	case errors.Is(err, ErrInvalidEmail):
		return "INVALID_EMAIL"
	case errors.Is(err, ErrInvalidPhone):
		return "INVALID_PHONE"
	case errors.Is(err, ErrInvalidID):
		return "INVALID_ID"
	case errors.Is(err, ErrInvalidType):
		return "INVALID_TYPE"
	case errors.Is(err, ErrInvalidDate):
		return "INVALID_DATE"
	case errors.Is(err, ErrMissingSlot):
		return "MISSING_SLOT"
	case errors.Is(err, ErrOutsideWindow):
		return "OUTSIDE_WINDOW"
	case errors.Is(err, ErrInvalidSlotSize):
		return "INVALID_SLOT_SIZE"
	case errors.Is(err, ErrSlotTaken):
		return "SLOT_TAKEN"
	case errors.Is(err, ErrUserLimitReached):
		return "USER_LIMIT_REACHED"
	default:
		return "SERVER_ERROR"
	}
}
