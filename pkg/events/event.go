package events

import "time"

// Subjects published under the "events." prefix
const (
	TypeHaircutRedeemed       = "HAIRCUT_REDEEMED"
	TypeSubscriptionActivated = "SUBSCRIPTION_ACTIVATED"
	TypeSubscriptionCancelled = "SUBSCRIPTION_CANCELLED"
	TypePaymentConfirmed      = "PAYMENT_CONFIRMED"
	TypeWithdrawalRequested   = "WITHDRAWAL_REQUESTED"
	TypeWithdrawalUpdated     = "WITHDRAWAL_STATUS_CHANGED"
	TypeSalonUpdated          = "SALON_STATUS_CHANGED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "HAIRCUT_REDEEMED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
