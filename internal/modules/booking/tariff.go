package booking

import (
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/domain"
)

// Elapsed is the stay length in whole units. Hours, Days and Weeks round up
// and are never below 1. Nights counts calendar dates crossed.
type Elapsed struct {
	Hours  int64 `json:"hours"`
	Days   int64 `json:"days"`
	Weeks  int64 `json:"weeks"`
	Nights int64 `json:"nights"`
}

// Units returns how many priced units of kind the stay covers.
func (e Elapsed) Units(kind domain.TariffKind) int64 {
	switch kind {
	case domain.TariffHour:
		return e.Hours
	case domain.TariffDay:
		return e.Days
	case domain.TariffNight:
		return e.Nights
	case domain.TariffWeek:
		return e.Weeks
	default:
		return 0
	}
}

func Measure(start, end time.Time, loc *time.Location) Elapsed {
	d := end.Sub(start)
	return Elapsed{
		Hours:  ceilUnits(d, time.Hour),
		Days:   ceilUnits(d, 24*time.Hour),
		Weeks:  ceilUnits(d, 7*24*time.Hour),
		Nights: calendarDays(start.In(loc), end.In(loc)),
	}
}

func ceilUnits(d, unit time.Duration) int64 {
	n := int64(d / unit)
	if d%unit > 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

func calendarDays(start, end time.Time) int64 {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	from := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int64(to.Sub(from) / (24 * time.Hour))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type ValidatedSelection struct {
	Start   time.Time         `json:"start"`
	End     time.Time         `json:"end"`
	Kind    domain.TariffKind `json:"kind"`
	Elapsed Elapsed           `json:"elapsed"`
}

type TariffSelector struct {
	loc *time.Location
}

func NewTariffSelector(loc *time.Location) *TariffSelector {
	if loc == nil {
		loc = time.UTC
	}
	return &TariffSelector{loc: loc}
}

func (s *TariffSelector) Location() *time.Location {
	return s.loc
}

// ValidateAndCalculate checks that kind fits the stay between startRaw and
// endRaw. An empty kind returns ErrNoTariff and nothing else is checked.
// Any other failure is a *ValidationError.
func (s *TariffSelector) ValidateAndCalculate(startRaw, endRaw string, kind domain.TariffKind) (*ValidatedSelection, error) {
	if kind == "" {
		return nil, ErrNoTariff
	}

	start, err := s.parse(startRaw)
	if err != nil {
		return nil, invalidDates()
	}
	end, err := s.parse(endRaw)
	if err != nil {
		return nil, invalidDates()
	}
	if !start.Before(end) {
		return nil, invalidDates()
	}

	if !kind.Valid() {
		return nil, &ValidationError{
			Code:    CodeUnknownTariff,
			Message: fmt.Sprintf("Unknown tariff %q", string(kind)),
		}
	}

	elapsed := Measure(start, end, s.loc)

	switch kind {
	case domain.TariffHour:
		if !sameDay(start.In(s.loc), end.In(s.loc)) {
			return nil, &ValidationError{
				Code:      CodeHourSpansDays,
				Message:   "Hourly rate requires check-in and check-out on the same day. Switched to the daily rate.",
				Suggested: domain.TariffDay,
			}
		}
	case domain.TariffDay:
		if elapsed.Hours < 24 {
			return nil, &ValidationError{
				Code:      CodeDayTooShort,
				Message:   fmt.Sprintf("Daily rate needs at least 24 hours, the stay is %d. Switched to the hourly rate.", elapsed.Hours),
				Suggested: domain.TariffHour,
			}
		}
	case domain.TariffNight:
		if elapsed.Nights < 1 {
			return nil, &ValidationError{
				Code:      CodeNightTooShort,
				Message:   "Nightly rate needs check-out on a later day. Switched to the hourly rate.",
				Suggested: domain.TariffHour,
			}
		}
	case domain.TariffWeek:
		if elapsed.Days < 7 {
			return nil, &ValidationError{
				Code:      CodeWeekTooShort,
				Message:   fmt.Sprintf("Weekly rate needs at least 7 days, the stay is %d. Switched to the daily rate.", elapsed.Days),
				Suggested: domain.TariffDay,
			}
		}
	}

	return &ValidatedSelection{
		Start:   start,
		End:     end,
		Kind:    kind,
		Elapsed: elapsed,
	}, nil
}

func (s *TariffSelector) parse(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrIncompleteSelection
	}
	return backend.ParseDate(raw, s.loc)
}

func invalidDates() *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidDates,
		Message: "Invalid dates: check-out must be after check-in",
	}
}
