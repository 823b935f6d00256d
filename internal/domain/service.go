package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable product of a provider
type Service struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	Name            string
	DurationMinutes *int
	PriceCents      *int64
	Currency        string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BelongsTo returns true if the service is owned by the provider
func (s *Service) BelongsTo(providerID uuid.UUID) bool {
	return s.ProviderID == providerID
}

// IsBookable returns true if the service can be offered to clients of the provider
func (s *Service) IsBookable(providerID uuid.UUID) bool {
	return s.Active && s.BelongsTo(providerID)
}

// HasPrice returns true if a positive price is configured
func (s *Service) HasPrice() bool {
	return s.PriceCents != nil && *s.PriceCents > 0
}

// Duration resolves the slot length in minutes: the service duration, or the
// provider's slot granularity when the service has none
func (s *Service) Duration(fallbackMinutes int) int {
	if s.DurationMinutes != nil && *s.DurationMinutes > 0 {
		return *s.DurationMinutes
	}
	return fallbackMinutes
}
