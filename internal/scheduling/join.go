package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// JoinWindow отступы окна подключения к видеосессии
type JoinWindow struct {
	NotBefore time.Duration // за сколько до начала можно подключиться
	NotAfter  time.Duration // сколько после конца можно подключиться
}

// DefaultJoinWindow окно по умолчанию: за 5 минут до начала и 10 минут после конца
func DefaultJoinWindow() JoinWindow {
	return NewJoinWindow(domain.DefaultJoinNotBeforeMinutes, domain.DefaultJoinNotAfterMinutes)
}

// NewJoinWindow создает окно из отступов в минутах
func NewJoinWindow(notBeforeMinutes, notAfterMinutes int) JoinWindow {
	return JoinWindow{
		NotBefore: time.Duration(notBeforeMinutes) * time.Minute,
		NotAfter:  time.Duration(notAfterMinutes) * time.Minute,
	}
}

// Bounds возвращает момент открытия и закрытия окна
func (w JoinWindow) Bounds(startsAt, endsAt time.Time) (time.Time, time.Time) {
	return startsAt.Add(-w.NotBefore), endsAt.Add(w.NotAfter)
}

// IsJoinWindowOpen проверяет now ∈ [startsAt - NotBefore, endsAt + NotAfter], границы включены
func IsJoinWindowOpen(startsAt, endsAt, now time.Time, w JoinWindow) bool {
	opensAt, closesAt := w.Bounds(startsAt, endsAt)
	return !now.Before(opensAt) && !now.After(closesAt)
}

// RoomPath внутренний путь комнаты для встроенной видеосессии
func RoomPath(appointmentID fmt.Stringer) string {
	return fmt.Sprintf("/appointments/%s/room", appointmentID)
}

// ResolveJoinAction выбирает, куда отправить клиента при открытом окне
func ResolveJoinAction(a *domain.Appointment) domain.JoinAction {
	switch NormalizeVideoProvider(string(a.VideoProvider)) {
	case domain.VideoWhatsApp:
		if a.VideoJoinURL == nil {
			break
		}
		if url := strings.TrimSpace(*a.VideoJoinURL); url != "" {
			return domain.JoinAction{Kind: domain.JoinActionRedirect, URL: url}
		}
	case domain.VideoJitsi:
		return domain.JoinAction{Kind: domain.JoinActionInternal, Path: RoomPath(a.ID)}
	}
	return domain.JoinAction{Kind: domain.JoinActionNone}
}

// NormalizeVideoProvider приводит значение из БД к известному провайдеру, неизвестное - к none
func NormalizeVideoProvider(value string) domain.VideoProvider {
	switch domain.VideoProvider(strings.ToLower(strings.TrimSpace(value))) {
	case domain.VideoWhatsApp:
		return domain.VideoWhatsApp
	case domain.VideoJitsi:
		return domain.VideoJitsi
	default:
		return domain.VideoNone
	}
}
