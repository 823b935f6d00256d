package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "pending"
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusCancelledByProvider AppointmentStatus = "cancelled_by_provider"
	StatusExpired             AppointmentStatus = "expired"
)

// VideoProvider identifies how the client joins the session
type VideoProvider string

const (
	VideoNone     VideoProvider = "none"
	VideoWhatsApp VideoProvider = "whatsapp"
	VideoJitsi    VideoProvider = "jitsi"
)

// Appointment represents a client booking of a provider's service
type Appointment struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	ServiceID   uuid.UUID
	StartAt     time.Time
	EndAt       time.Time
	Status      AppointmentStatus
	ClientName  *string
	ClientEmail string
	ClientPhone string

	JoinToken     *string
	VideoProvider VideoProvider
	VideoJoinURL  *string
	VideoRoomID   *string

	SettlementRef           *string
	ConfirmationEmailSentAt *time.Time
	CancellationReason      *string
	CancelledAt             *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupyingStatuses statuses that hold a time slot
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// IsOccupying returns true if the status holds a time slot
func (s AppointmentStatus) IsOccupying() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsKnown returns true for statuses this service understands
func (s AppointmentStatus) IsKnown() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelledByProvider, StatusExpired:
		return true
	}
	return false
}

// IsOccupying returns true if the appointment currently holds its slot
func (a *Appointment) IsOccupying() bool {
	return a.Status.IsOccupying()
}

// CanBeCancelled returns true if the provider may still cancel the appointment
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeConfirmed returns true if a settlement event may confirm the appointment
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// IsJoinable returns true if the client may be handed off to the video session
func (a *Appointment) IsJoinable() bool {
	return a.Status.IsOccupying()
}

// Interval returns the booked time range
func (a *Appointment) Interval() Slot {
	return Slot{Start: a.StartAt, End: a.EndAt}
}

// AppointmentsFilter filter for listing appointments of a provider
type AppointmentsFilter struct {
	ProviderID      uuid.UUID
	From            *time.Time // appointments ending after From
	To              *time.Time // appointments starting before To
	Status          *AppointmentStatus
	IncludeInactive bool // include cancelled/expired rows
}

// JoinActionKind what the join page should do
type JoinActionKind string

const (
	JoinActionNone     JoinActionKind = "none"
	JoinActionRedirect JoinActionKind = "redirect"
	JoinActionInternal JoinActionKind = "internal"
)

// JoinAction routing decision for the video hand-off
type JoinAction struct {
	Kind JoinActionKind
	URL  string // for redirect
	Path string // for internal
}
