package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// ErrInvalidDate возвращается при некорректной календарной дате
var ErrInvalidDate = errors.New("scheduling: invalid date")

// ParseCivilDate разбирает дату YYYY-MM-DD как полночь в указанной зоне
func ParseCivilDate(value string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected %s", ErrInvalidDate, value, domain.DateFormat)
	}
	return date, nil
}

// StartOfDay возвращает полночь календарного дня t в зоне loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayBounds возвращает границы календарного дня [start, end) в зоне loc
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(date, loc)
	return start, start.AddDate(0, 0, 1)
}

// IsDateInPast проверяет, что календарная дата строго раньше сегодняшней в зоне loc
func IsDateInPast(date, now time.Time, loc *time.Location) bool {
	y, m, d := date.Date()
	dateOnly := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return dateOnly.Before(StartOfDay(now, loc))
}

// IsSameDay проверяет, что now приходится на тот же календарный день, что и date, в зоне loc
func IsSameDay(date, now time.Time, loc *time.Location) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
