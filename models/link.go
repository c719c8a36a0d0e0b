package models

// LinkStatus is the state of a consumer-supplier link
type LinkStatus string

const (
	LinkStatusPending  LinkStatus = "pending"
	LinkStatusAccepted LinkStatus = "accepted"
	LinkStatusDenied   LinkStatus = "denied"
	LinkStatusBlocked  LinkStatus = "blocked"
	LinkStatusUnlinked LinkStatus = "unlinked"
)

// IsValid returns true for statuses the backend recognises
func (s LinkStatus) IsValid() bool {
	switch s {
	case LinkStatusPending, LinkStatusAccepted, LinkStatusDenied, LinkStatusBlocked, LinkStatusUnlinked:
		return true
	}
	return false
}

// Link is a consumer's request to trade with the supplier
type Link struct {
	ID         int64      `json:"id"`
	ConsumerID int64      `json:"consumer_id"`
	SupplierID int64      `json:"supplier_id"`
	Status     LinkStatus `json:"status"`
	Message    *string    `json:"message,omitempty"`
	CreatedAt  Timestamp  `json:"created_at"`
	Consumer   *Consumer  `json:"consumer,omitempty"`
}

// ConsumerName returns the consumer's display name
func (l *Link) ConsumerName() string {
	return ConsumerDisplayName(l.Consumer, l.ConsumerID)
}

// LinkStatusUpdate is the body of PATCH /links/{id}/status
type LinkStatusUpdate struct {
	Status LinkStatus `json:"status"`
}
