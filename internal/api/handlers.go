package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fkalogeros/stream-ai-chat/internal/core"
	"github.com/fkalogeros/stream-ai-chat/internal/store"
)

type APIHandler struct {
	chatService *core.ChatService
}

func NewAPIHandler(cs *core.ChatService) *APIHandler {
	return &APIHandler{chatService: cs}
}

type RegisterUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

func (h *APIHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.chatService.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RegisterUserResponse{
		Message: "Success",
		UserID:  user.UserID,
		Email:   user.Email,
		Name:    user.Name,
	})
}

type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reply, err := h.chatService.Chat(r.Context(), req.UserID, req.Message)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

type ChatMessagesRequest struct {
	UserID string `json:"userId"`
}

type ChatMessagesResponse struct {
	Messages []store.ChatExchange `json:"messages"`
}

func (h *APIHandler) ChatMessagesHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatMessagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	messages, err := h.chatService.History(r.Context(), req.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatMessagesResponse{Messages: messages})
}

// writeServiceError maps tagged service errors onto status codes. Causes
// of internal failures are logged, never echoed to the caller.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Error handling %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
