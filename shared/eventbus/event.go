package eventbus

import "strconv"

const (
	TopicUserEvents = "user-events"

	EventUserCreated = "USER_CREATED"
	EventUserUpdated = "USER_UPDATED"
	EventUserDeleted = "USER_DELETED"
)

// UserEvent is the identity-change event published by auth-service and
// consumed by user-service. Field names are part of the wire contract.
type UserEvent struct {
	EventType string `json:"eventType"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// PartitionKey keys the event by principal so per-user ordering holds.
func (e UserEvent) PartitionKey() string {
	return strconv.FormatInt(e.UserID, 10)
}
