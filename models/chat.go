package models

// ChatSession is a conversation between a consumer and a sales representative
type ChatSession struct {
	ID          int64        `json:"id"`
	ConsumerID  int64        `json:"consumer_id"`
	SalesRepID  int64        `json:"sales_rep_id"`
	OrderID     *int64       `json:"order_id,omitempty"`
	LastMessage *string      `json:"last_message,omitempty"`
	CreatedAt   Timestamp    `json:"created_at"`
	Consumer    *Consumer    `json:"consumer,omitempty"`
	SalesRep    *UserSummary `json:"sales_rep,omitempty"`
}

// ConsumerName returns the consumer's display name
func (s *ChatSession) ConsumerName() string {
	return ConsumerDisplayName(s.Consumer, s.ConsumerID)
}

// SalesRepName returns the representative's display name
func (s *ChatSession) SalesRepName() string {
	return summaryName(s.SalesRep, "Sales Rep")
}

// Preview returns the last message or a placeholder
func (s *ChatSession) Preview() string {
	if s.LastMessage == nil || *s.LastMessage == "" {
		return "No messages yet"
	}
	return *s.LastMessage
}

// ChatMessage is a single message inside a chat session
type ChatMessage struct {
	ID        int64        `json:"id"`
	SessionID int64        `json:"session_id"`
	SenderID  int64        `json:"sender_id"`
	Text      string       `json:"text"`
	FileURL   *string      `json:"file_url,omitempty"`
	CreatedAt Timestamp    `json:"created_at"`
	Sender    *UserSummary `json:"sender,omitempty"`
}

// IsOwn returns true if the message was sent by userID
func (m *ChatMessage) IsOwn(userID int64) bool {
	return userID != 0 && m.SenderID == userID
}

// SenderName returns the sender's display name
func (m *ChatMessage) SenderName() string {
	return summaryName(m.Sender, "User")
}

// NewChatMessage is the body of POST /chats/sessions/{id}/messages
type NewChatMessage struct {
	Text    string  `json:"text" validate:"required"`
	FileURL *string `json:"file_url,omitempty" validate:"omitempty,url"`
}

// NewChatSession is the body of POST /chats/sessions
type NewChatSession struct {
	SalesRepID int64  `json:"sales_rep_id" validate:"required,gt=0"`
	OrderID    *int64 `json:"order_id,omitempty"`
}

func summaryName(u *UserSummary, fallback string) string {
	if u == nil {
		return fallback
	}
	if u.FirstName != "" && u.LastName != "" {
		return u.FullName()
	}
	if u.Email != "" {
		return u.Email
	}
	return fallback
}
