package mark_confirmation_email

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AgendaService/internal/service/appointments"
	"github.com/m04kA/SMC-AgendaService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) MarkConfirmationEmailSent(_ context.Context, _ uuid.UUID) error {
	return f.err
}

const appointmentID = "9f1c2d3e-4b5a-4c6d-8e7f-0a1b2c3d4e5f"

func serve(svc *fakeService, id string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r = mux.SetURLVars(r, map[string]string{"appointmentId": id})
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
		want int
	}{
		{name: "marked", id: appointmentID, want: http.StatusNoContent},
		{name: "invalid id", id: "bad", want: http.StatusBadRequest},
		{name: "not found", id: appointmentID, err: appointments.ErrAppointmentNotFound, want: http.StatusNotFound},
		{name: "not confirmed", id: appointmentID, err: appointments.ErrNotConfirmed, want: http.StatusConflict},
		{name: "already sent", id: appointmentID, err: appointments.ErrConfirmationEmailAlreadySent, want: http.StatusConflict},
		{name: "internal", id: appointmentID, err: appointments.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&fakeService{err: tt.err}, tt.id).Code)
		})
	}
}
