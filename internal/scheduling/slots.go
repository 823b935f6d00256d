package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// GenerateSlots раскладывает рабочие интервалы дня на слоты длительностью durationMinutes.
// Слоты идут встык от начала интервала; последний слот, выходящий за конец интервала, отбрасывается.
// Время считается по часам в date.Location(), поэтому переход на летнее время не сдвигает сетку.
// В день перехода слот, попавший на пропущенный или повторенный час, не равен длительности и отбрасывается.
func GenerateSlots(week *domain.WeeklyAvailability, weekday time.Weekday, date time.Time, durationMinutes int) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if durationMinutes <= 0 {
		return slots
	}

	ranges := week.RangesFor(weekday)
	if len(ranges) == 0 {
		return slots
	}

	loc := date.Location()
	year, month, day := date.Date()
	duration := time.Duration(durationMinutes) * time.Minute

	for _, r := range ranges {
		open := r.Start.Minutes()
		closeAt := r.End.Minutes()
		if open < 0 || closeAt < 0 || open >= closeAt {
			continue
		}

		for cursor := open; cursor+durationMinutes <= closeAt; cursor += durationMinutes {
			slot := domain.Slot{
				Start: time.Date(year, month, day, 0, cursor, 0, 0, loc),
				End:   time.Date(year, month, day, 0, cursor+durationMinutes, 0, 0, loc),
			}
			if slot.Duration() != duration {
				continue
			}
			slots = append(slots, slot)
		}
	}

	return slots
}

// RemoveBusy оставляет только кандидатов, не пересекающихся ни с одним занятым интервалом.
// Порядок кандидатов сохраняется.
func RemoveBusy(candidates []domain.Slot, busy []domain.Slot) []domain.Slot {
	free := make([]domain.Slot, 0, len(candidates))

	for _, candidate := range candidates {
		taken := false
		for _, b := range busy {
			if candidate.Overlaps(b) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, candidate)
		}
	}

	return free
}

// DropStartingBefore убирает слоты, начинающиеся раньше cutoff
func DropStartingBefore(slots []domain.Slot, cutoff time.Time) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if !s.Start.Before(cutoff) {
			result = append(result, s)
		}
	}
	return result
}

// ContainsSlot проверяет, что слот совпадает с одним из сгенерированных
func ContainsSlot(slots []domain.Slot, target domain.Slot) bool {
	for _, s := range slots {
		if s.Equal(target) {
			return true
		}
	}
	return false
}

// BusyIntervals собирает занятые интервалы: активные бронирования и блокировки.
// Бронирования в неактивных статусах время не занимают.
func BusyIntervals(appointments []*domain.Appointment, blocks []*domain.Block) []domain.Slot {
	busy := make([]domain.Slot, 0, len(appointments)+len(blocks))

	for _, a := range appointments {
		if a == nil || !a.IsOccupying() {
			continue
		}
		busy = append(busy, a.Interval())
	}

	for _, b := range blocks {
		if b == nil {
			continue
		}
		busy = append(busy, b.Interval())
	}

	return busy
}
