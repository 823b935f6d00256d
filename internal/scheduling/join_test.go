package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	"github.com/m04kA/SMC-AgendaService/pkg/ptr"
)

func TestIsJoinWindowOpen(t *testing.T) {
	startsAt := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	endsAt := startsAt.Add(time.Hour)
	w := DefaultJoinWindow()

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"exactly five minutes before start", startsAt.Add(-5 * time.Minute), true},
		{"one second too early", startsAt.Add(-5*time.Minute - time.Second), false},
		{"during the session", startsAt.Add(30 * time.Minute), true},
		{"exactly ten minutes after end", endsAt.Add(10 * time.Minute), true},
		{"one second too late", endsAt.Add(10*time.Minute + time.Second), false},
		{"day before", startsAt.AddDate(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJoinWindowOpen(startsAt, endsAt, tt.now, w))
		})
	}
}

func TestIsJoinWindowOpen_CustomMargins(t *testing.T) {
	startsAt := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	endsAt := startsAt.Add(30 * time.Minute)
	w := NewJoinWindow(0, 0)

	assert.True(t, IsJoinWindowOpen(startsAt, endsAt, startsAt, w))
	assert.True(t, IsJoinWindowOpen(startsAt, endsAt, endsAt, w))
	assert.False(t, IsJoinWindowOpen(startsAt, endsAt, startsAt.Add(-time.Second), w))
}

func TestResolveJoinAction(t *testing.T) {
	id := uuid.MustParse("6f1d2c9e-8d0a-4f57-9a43-3b5c1e0f7a21")

	t.Run("whatsapp with link redirects", func(t *testing.T) {
		a := &domain.Appointment{ID: id, VideoProvider: domain.VideoWhatsApp, VideoJoinURL: ptr.Ptr("https://wa.me/33600000000")}
		action := ResolveJoinAction(a)
		assert.Equal(t, domain.JoinActionRedirect, action.Kind)
		assert.Equal(t, "https://wa.me/33600000000", action.URL)
	})

	t.Run("whatsapp without link", func(t *testing.T) {
		a := &domain.Appointment{ID: id, VideoProvider: domain.VideoWhatsApp}
		assert.Equal(t, domain.JoinActionNone, ResolveJoinAction(a).Kind)
	})

	t.Run("jitsi uses the internal room", func(t *testing.T) {
		a := &domain.Appointment{ID: id, VideoProvider: domain.VideoJitsi}
		action := ResolveJoinAction(a)
		assert.Equal(t, domain.JoinActionInternal, action.Kind)
		assert.Equal(t, "/appointments/6f1d2c9e-8d0a-4f57-9a43-3b5c1e0f7a21/room", action.Path)
	})

	t.Run("provider value is normalized", func(t *testing.T) {
		a := &domain.Appointment{ID: id, VideoProvider: " WhatsApp ", VideoJoinURL: ptr.Ptr(" https://wa.me/1 ")}
		action := ResolveJoinAction(a)
		assert.Equal(t, domain.JoinActionRedirect, action.Kind)
		assert.Equal(t, "https://wa.me/1", action.URL)
	})

	t.Run("no video configured", func(t *testing.T) {
		a := &domain.Appointment{ID: id, VideoProvider: domain.VideoNone}
		assert.Equal(t, domain.JoinActionNone, ResolveJoinAction(a).Kind)
	})
}
