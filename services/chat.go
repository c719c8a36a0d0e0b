package services

import (
	"context"
	"fmt"

	"github.com/supplykz/supplier-console/models"
)

// ChatMessagesPageSize is the default page size for message history
const ChatMessagesPageSize = 50

// ChatSessions lists the chat sessions visible to the user
func (s *DataService) ChatSessions(ctx context.Context, page models.PageRequest) (*models.Page[models.ChatSession], error) {
	var out models.Page[models.ChatSession]
	if err := s.api.Get(ctx, "/chats/sessions", listQuery(page, models.DefaultPageSize), &out); err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}
	return &out, nil
}

// ChatMessages lists the messages of a session
func (s *DataService) ChatMessages(ctx context.Context, sessionID int64, page models.PageRequest) (*models.Page[models.ChatMessage], error) {
	var out models.Page[models.ChatMessage]
	if err := s.api.Get(ctx, idPath("/chats/sessions/%d/messages", sessionID), listQuery(page, ChatMessagesPageSize), &out); err != nil {
		return nil, fmt.Errorf("list messages of session %d: %w", sessionID, err)
	}
	return &out, nil
}

// SendMessage posts a message to a session
func (s *DataService) SendMessage(ctx context.Context, sessionID int64, msg models.NewChatMessage) (*models.ChatMessage, error) {
	var out models.ChatMessage
	if err := s.api.Post(ctx, idPath("/chats/sessions/%d/messages", sessionID), msg, &out); err != nil {
		return nil, fmt.Errorf("send message to session %d: %w", sessionID, err)
	}
	return &out, nil
}

// CreateChatSession opens a session with a sales representative
func (s *DataService) CreateChatSession(ctx context.Context, req models.NewChatSession) (*models.ChatSession, error) {
	var out models.ChatSession
	if err := s.api.Post(ctx, "/chats/sessions", req, &out); err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	return &out, nil
}
