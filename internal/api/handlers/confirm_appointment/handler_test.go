package confirm_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AgendaService/internal/service/appointments"
	"github.com/m04kA/SMC-AgendaService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AgendaService/pkg/logger"
)

type fakeService struct {
	req *models.ConfirmAppointmentRequest
	err error
}

func (f *fakeService) Confirm(_ context.Context, _ uuid.UUID, req *models.ConfirmAppointmentRequest) error {
	f.req = req
	return f.err
}

func serve(svc *fakeService, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"appointmentId": id})
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, r)
	return w
}

func TestHandle_Confirmed(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, uuid.New().String(), `{"settlementRef":"pi_123"}`)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, svc.req.SettlementRef)
	assert.Equal(t, "pi_123", *svc.req.SettlementRef)
}

func TestHandle_Errors(t *testing.T) {
	id := uuid.New().String()

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "x", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, id, "[").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: appointments.ErrAppointmentNotFound}, id, "").Code)
	assert.Equal(t, http.StatusConflict, serve(&fakeService{err: appointments.ErrCannotConfirm}, id, "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("boom")}, id, "").Code)
}
