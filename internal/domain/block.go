package domain

import (
	"time"

	"github.com/google/uuid"
)

// Block is an ad-hoc unavailable range of a provider (lunch break, day off)
type Block struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Reason     *string
	CreatedAt  time.Time
}

// Interval returns the block as a slot-shaped interval
func (b *Block) Interval() Slot {
	return Slot{Start: b.StartAt, End: b.EndAt}
}

// BlocksFilter filter for listing blocks
type BlocksFilter struct {
	ProviderID uuid.UUID
	From       *time.Time // blocks ending after From
	To         *time.Time // blocks starting before To
	Limit      int        // 0 means no limit
}
