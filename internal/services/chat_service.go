package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"pdfchat-backend/internal/models"
	"pdfchat-backend/internal/store"

	"github.com/google/uuid"
)

// Chat service errors.
var (
	ErrQuestionRequired = errors.New("question is required")
	// ErrChatAccess covers both a missing conversation and one owned by a
	// different user. The two cases are deliberately merged so that
	// conversation ids cannot be enumerated by non-owners.
	ErrChatAccess = errors.New("chat not found or user not authorized")
)

// maxTitleLen is the number of leading characters of the first question kept
// as the conversation title.
const maxTitleLen = 40

// Completer defines the interface expected from the completion adapter.
// This promotes loose coupling and testability.
type Completer interface {
	Generate(ctx context.Context, question, docContext string) (string, error)
}

// ChatService orchestrates conversation turns: it combines a question, an
// optional existing conversation, and a context document into one completion
// call and commits the resulting turn through the store.
type ChatService struct {
	store     store.Store
	completer Completer
}

// NewChatService creates a new ChatService.
func NewChatService(s store.Store, completer Completer) *ChatService {
	return &ChatService{
		store:     s,
		completer: completer,
	}
}

// deriveTitle computes the immutable conversation title from the first
// question. Titles are never recomputed on later turns.
func deriveTitle(question string) string {
	runes := []rune(question)
	if len(runes) > maxTitleLen {
		return string(runes[:maxTitleLen]) + "..."
	}
	return question
}

// mapConversationToResponse converts a DB conversation model to an API response DTO.
func mapConversationToResponse(conv *models.Conversation) (*models.ConversationResponse, error) {
	var messages []models.Message
	if err := json.Unmarshal(conv.Messages, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse conversation messages: %w", err)
	}
	if messages == nil {
		messages = []models.Message{}
	}

	return &models.ConversationResponse{
		ID:        conv.ID,
		UserID:    conv.UserID,
		Title:     conv.Title,
		Messages:  messages,
		CreatedAt: conv.CreatedAt,
	}, nil
}

// Continue answers a question against the supplied document context and
// appends the resulting user/assistant turn to a conversation. When ChatID
// is nil a new conversation owned by userID is created implicitly, titled
// from the question. The completion call happens before any store mutation,
// so a failed completion never leaves a half-written turn: the conversation
// is either unchanged or advanced by exactly one complete turn.
func (s *ChatService) Continue(ctx context.Context, userID uuid.UUID, req models.ChatRequest) (*models.ConversationResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrQuestionRequired
	}

	answer, err := s.completer.Generate(ctx, req.Question, req.Context)
	if err != nil {
		return nil, err
	}

	userMsg := models.Message{Role: models.RoleUser, Content: req.Question}
	assistantMsg := models.Message{Role: models.RoleAssistant, Content: answer}

	if req.ChatID != nil {
		conv, err := s.store.GetConversation(ctx, *req.ChatID, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrChatAccess
			}
			return nil, fmt.Errorf("failed to get conversation: %w", err)
		}

		updated, err := s.store.AppendTurn(ctx, conv.ID, userID, userMsg, assistantMsg)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrChatAccess
			}
			return nil, fmt.Errorf("failed to append turn: %w", err)
		}
		return mapConversationToResponse(updated)
	}

	// New conversations are inserted together with their first turn in one
	// store call, so a failure here strands nothing.
	conv, err := s.store.CreateConversation(ctx, store.CreateConversationParams{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            deriveTitle(req.Question),
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	log.Printf("[ChatService] created conversation %s for user %s", conv.ID, userID)

	return mapConversationToResponse(conv)
}

// GetHistory returns the caller's conversations, newest first, without
// message bodies.
func (s *ChatService) GetHistory(ctx context.Context, userID uuid.UUID) ([]models.ConversationSummaryResponse, error) {
	summaries, err := s.store.ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	history := make([]models.ConversationSummaryResponse, 0, len(summaries))
	for _, item := range summaries {
		history = append(history, models.ConversationSummaryResponse{
			ID:        item.ID,
			Title:     item.Title,
			CreatedAt: item.CreatedAt,
		})
	}
	return history, nil
}

// GetConversation returns the full conversation if owned by the caller.
func (s *ChatService) GetConversation(ctx context.Context, userID, chatID uuid.UUID) (*models.ConversationResponse, error) {
	conv, err := s.store.GetConversation(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrChatAccess
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return mapConversationToResponse(conv)
}

// DeleteConversation removes the conversation if owned by the caller.
func (s *ChatService) DeleteConversation(ctx context.Context, userID, chatID uuid.UUID) error {
	if err := s.store.DeleteConversation(ctx, chatID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrChatAccess
		}
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	log.Printf("[ChatService] deleted conversation %s for user %s", chatID, userID)
	return nil
}
