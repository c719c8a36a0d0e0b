package models

import "fmt"

// Consumer is the consumer organisation nested in links, orders and complaints
type Consumer struct {
	ID               int64        `json:"id"`
	OrganizationName string       `json:"organization_name,omitempty"`
	User             *UserSummary `json:"user,omitempty"`
}

// ConsumerDisplayName picks the best label for a consumer
func ConsumerDisplayName(c *Consumer, consumerID int64) string {
	if c != nil {
		if name := c.User.FullName(); name != "" {
			return name
		}
		if c.OrganizationName != "" {
			return c.OrganizationName
		}
	}
	return fmt.Sprintf("Consumer %d", consumerID)
}
