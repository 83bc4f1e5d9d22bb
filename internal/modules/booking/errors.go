package booking

import (
	"errors"

	"hotelbooking/internal/domain"
)

var (
	ErrNoTariff            = errors.New("no tariff selected")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomUnavailable     = errors.New("room is not available")
	ErrIncompleteSelection = errors.New("booking selection is incomplete")
	ErrTotalMissing        = errors.New("total has not been calculated")
	ErrInvalidDates        = errors.New("start must be before end")
	ErrUnauthenticated     = errors.New("authentication required")
)

const (
	CodeInvalidDates  = "INVALID_DATES"
	CodeUnknownTariff = "UNKNOWN_TARIFF"
	CodeHourSpansDays = "HOUR_SPANS_DAYS"
	CodeDayTooShort   = "DAY_TOO_SHORT"
	CodeNightTooShort = "NIGHT_TOO_SHORT"
	CodeWeekTooShort  = "WEEK_TOO_SHORT"
)

// ValidationError rejects a tariff/date combination. Suggested is set when
// another kind fits the same stay; the caller may switch to it once.
type ValidationError struct {
	Code      string
	Message   string
	Suggested domain.TariffKind
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}
