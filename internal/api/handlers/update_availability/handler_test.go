package update_availability

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AgendaService/internal/api/middleware"
	"github.com/m04kA/SMC-AgendaService/internal/service/availability"
	"github.com/m04kA/SMC-AgendaService/internal/service/availability/models"
	"github.com/m04kA/SMC-AgendaService/pkg/logger"
)

type fakeService struct {
	raw []byte
	err error
}

func (f *fakeService) Update(_ context.Context, providerID uuid.UUID, raw []byte) (*models.AvailabilityResponse, error) {
	f.raw = raw
	if f.err != nil {
		return nil, f.err
	}
	return &models.AvailabilityResponse{ProviderID: providerID, Version: 2}, nil
}

var providerID = uuid.MustParse("0b8d7c6e-5f4a-4b3c-9d2e-1f0a9b8c7d6e")

const body = `{"version":2,"timezone":"Europe/Paris","week":{"mon":[{"start":"09:00","end":"12:00"}]}}`

func serve(svc *fakeService, caller uuid.UUID, payload string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(payload))
	r = mux.SetURLVars(r, map[string]string{"providerId": providerID.String()})
	r = r.WithContext(middleware.WithProviderID(r.Context(), caller))
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, r)
	return w
}

func TestHandle_Updated(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, providerID, body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, string(svc.raw))
}

func TestHandle_OtherProvider(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, uuid.New(), body)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, svc.raw)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, providerID, "").Code)

	invalid := fmt.Errorf("%w: mon: start must be before end", availability.ErrInvalidInput)
	w := serve(&fakeService{err: invalid}, providerID, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "start must be before end")

	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: availability.ErrProviderNotFound}, providerID, body).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: availability.ErrInternal}, providerID, body).Code)
}
