package delete_block

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AgendaService/internal/api/middleware"
	"github.com/m04kA/SMC-AgendaService/internal/service/availability"
	"github.com/m04kA/SMC-AgendaService/pkg/logger"
)

type fakeService struct {
	blockID uuid.UUID
	err     error
}

func (f *fakeService) DeleteBlock(_ context.Context, _, blockID uuid.UUID) error {
	f.blockID = blockID
	return f.err
}

var providerID = uuid.MustParse("0b8d7c6e-5f4a-4b3c-9d2e-1f0a9b8c7d6e")

func serve(svc *fakeService, caller uuid.UUID, blockID string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodDelete, "/", nil)
	r = mux.SetURLVars(r, map[string]string{"providerId": providerID.String(), "blockId": blockID})
	r = r.WithContext(middleware.WithProviderID(r.Context(), caller))
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	blockID := uuid.New()
	svc := &fakeService{}

	w := serve(svc, providerID, blockID.String())
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, blockID, svc.blockID)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, providerID, "x").Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{}, uuid.New(), blockID.String()).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: availability.ErrBlockNotFound}, providerID, blockID.String()).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: availability.ErrInternal}, providerID, blockID.String()).Code)
}
