package domain

import (
	"fmt"
	"strings"
)

type TariffKind string

const (
	TariffHour  TariffKind = "hora"
	TariffDay   TariffKind = "dia"
	TariffNight TariffKind = "noche"
	TariffWeek  TariffKind = "semana"
)

var TariffKinds = []TariffKind{TariffHour, TariffDay, TariffNight, TariffWeek}

// ParseTariffKind accepts the wire values plus English and accented aliases.
// An empty string parses to the empty kind.
func ParseTariffKind(s string) (TariffKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "hora", "hour":
		return TariffHour, nil
	case "dia", "día", "day":
		return TariffDay, nil
	case "noche", "night":
		return TariffNight, nil
	case "semana", "week":
		return TariffWeek, nil
	default:
		return "", fmt.Errorf("unknown tariff kind %q", s)
	}
}

func (k TariffKind) Valid() bool {
	switch k {
	case TariffHour, TariffDay, TariffNight, TariffWeek:
		return true
	}
	return false
}
