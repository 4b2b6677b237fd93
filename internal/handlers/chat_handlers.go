package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"pdfchat-backend/internal/auth"
	"pdfchat-backend/internal/llm"
	api_models "pdfchat-backend/internal/models"
	"pdfchat-backend/internal/services"
	"pdfchat-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ChatService defines the interface expected from the chat service.
type ChatService interface {
	Continue(ctx context.Context, userID uuid.UUID, req api_models.ChatRequest) (*api_models.ConversationResponse, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]api_models.ConversationSummaryResponse, error)
	GetConversation(ctx context.Context, userID, chatID uuid.UUID) (*api_models.ConversationResponse, error)
	DeleteConversation(ctx context.Context, userID, chatID uuid.UUID) error
}

// Extractor defines the interface expected from the PDF extraction adapter.
type Extractor interface {
	Extract(data []byte) (string, error)
}

type ChatHandlers struct {
	chatService    ChatService
	extractor      Extractor
	maxUploadBytes int64
}

func NewChatHandlers(chatSvc ChatService, extractor Extractor, maxUploadBytes int64) *ChatHandlers {
	return &ChatHandlers{
		chatService:    chatSvc,
		extractor:      extractor,
		maxUploadBytes: maxUploadBytes,
	}
}

// getCallerID resolves the authenticated user from the request context.
// The id is only ever produced by the JWT middleware, never by client input.
func getCallerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		log.Println("ERROR: UserID missing from context in authenticated route")
		httputil.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// HandleUploadPDF handles POST /api/chat/upload. It extracts the text of the
// uploaded PDF and returns it to the client; nothing is persisted.
func (h *ChatHandlers) HandleUploadPDF(w http.ResponseWriter, r *http.Request) {
	if _, ok := getCallerID(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, _, err := r.FormFile("pdf")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "No file uploaded.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Upload handler failed to read file: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to read uploaded file.")
		return
	}

	text, err := h.extractor.Extract(data)
	if err != nil {
		log.Printf("Upload handler failed to extract PDF text: %v", err)
		httputil.RespondJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Error processing PDF file.",
			"error":   err.Error(),
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, api_models.UploadResponse{
		Message:     "PDF processed successfully.",
		TextContent: text,
	})
}

// HandleChat handles POST /api/chat/chat: one conversation turn.
func (h *ChatHandlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := getCallerID(w, r)
	if !ok {
		return
	}

	var req api_models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	conv, err := h.chatService.Continue(r.Context(), userID, req)
	if err != nil {
		log.Printf("Chat handler failed for user %s: %v", userID, err)
		switch {
		case errors.Is(err, services.ErrQuestionRequired):
			httputil.RespondError(w, http.StatusBadRequest, "Question is required.")
		case errors.Is(err, services.ErrChatAccess):
			httputil.RespondError(w, http.StatusForbidden, "Chat not found or user not authorized.")
		case errors.Is(err, llm.ErrUnavailable), errors.Is(err, llm.ErrEmptyResponse):
			httputil.RespondError(w, http.StatusInternalServerError, "Server error during chat processing.")
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Server error during chat processing.")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// HandleGetHistory handles GET /api/chat/history.
func (h *ChatHandlers) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := getCallerID(w, r)
	if !ok {
		return
	}

	history, err := h.chatService.GetHistory(r.Context(), userID)
	if err != nil {
		log.Printf("History handler failed for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error fetching history.")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, history)
}

// HandleGetChatMessages handles GET /api/chat/history/{chatID}.
func (h *ChatHandlers) HandleGetChatMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := getCallerID(w, r)
	if !ok {
		return
	}

	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		// A malformed id gets the same answer as a missing one.
		httputil.RespondError(w, http.StatusNotFound, "Chat not found or user not authorized.")
		return
	}

	conv, err := h.chatService.GetConversation(r.Context(), userID, chatID)
	if err != nil {
		if errors.Is(err, services.ErrChatAccess) {
			httputil.RespondError(w, http.StatusNotFound, "Chat not found or user not authorized.")
			return
		}
		log.Printf("Get chat handler failed for user %s, chat %s: %v", userID, chatID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error fetching messages.")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// HandleDeleteChat handles DELETE /api/chat/history/{chatID}.
func (h *ChatHandlers) HandleDeleteChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := getCallerID(w, r)
	if !ok {
		return
	}

	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Chat not found or user not authorized.")
		return
	}

	if err := h.chatService.DeleteConversation(r.Context(), userID, chatID); err != nil {
		if errors.Is(err, services.ErrChatAccess) {
			httputil.RespondError(w, http.StatusNotFound, "Chat not found or user not authorized.")
			return
		}
		log.Printf("Delete chat handler failed for user %s, chat %s: %v", userID, chatID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error while deleting chat.")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, api_models.MessageResponse{Message: "Chat deleted successfully."})
}
