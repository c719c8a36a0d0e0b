package models

import "fmt"

// ComplaintStatus is the handling state of a complaint
type ComplaintStatus string

const (
	ComplaintStatusOpen      ComplaintStatus = "open"
	ComplaintStatusEscalated ComplaintStatus = "escalated"
	ComplaintStatusResolved  ComplaintStatus = "resolved"
)

const complaintSubjectLength = 50

// Complaint is a consumer complaint about an order or the supplier
type Complaint struct {
	ID               int64           `json:"id"`
	ConsumerID       int64           `json:"consumer_id"`
	OrderID          *int64          `json:"order_id,omitempty"`
	Status           ComplaintStatus `json:"status"`
	Description      string          `json:"description"`
	Resolution       *string         `json:"resolution,omitempty"`
	ConsumerFeedback *bool           `json:"consumer_feedback,omitempty"`
	CreatedAt        Timestamp       `json:"created_at"`
	Consumer         *Consumer       `json:"consumer,omitempty"`
}

// Number returns the human facing complaint reference
func (c *Complaint) Number() string {
	return fmt.Sprintf("CMP-%d", c.ID)
}

// Subject returns a short headline taken from the description
func (c *Complaint) Subject() string {
	if c.Description == "" {
		return "No description"
	}
	runes := []rune(c.Description)
	if len(runes) > complaintSubjectLength {
		return string(runes[:complaintSubjectLength])
	}
	return c.Description
}

// ConsumerName returns the consumer's display name
func (c *Complaint) ConsumerName() string {
	return ConsumerDisplayName(c.Consumer, c.ConsumerID)
}

// ComplaintStatusUpdate is the body of PATCH /complaints/{id}/status
type ComplaintStatusUpdate struct {
	Status     ComplaintStatus `json:"status"`
	Resolution *string         `json:"resolution,omitempty"`
}
