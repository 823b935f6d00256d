package domain

// Default configuration values
const (
	DefaultTimezone                 = "Europe/Paris"
	DefaultSlotMinutes              = 30
	DefaultJoinNotBeforeMinutes     = 5
	DefaultJoinNotAfterMinutes      = 10
	DefaultPendingTTLMinutes        = 30
	DefaultMinBookingNoticeMinutes  = 0
	AvailabilitySchemaVersion       = 2
	LegacyAvailabilitySchemaVersion = 1
)

// Business validation constants
const (
	MinSlotMinutes              = 5
	MaxSlotMinutes              = 480 // 8 hours
	MaxBlockReasonLength        = 200
	MaxCancellationReasonLength = 500
	JoinTokenLength             = 32
	JoinTokenAttempts           = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
