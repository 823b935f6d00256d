package delete_block

import (
	"context"

	"github.com/google/uuid"
)

type AvailabilityService interface {
	DeleteBlock(ctx context.Context, providerID, blockID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
