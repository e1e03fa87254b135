// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/pkg/constants"
)

// AssistantAPI is the HTTP surface of the office assistant. Conversations
// are session state: they live in memory keyed by principal and
// conversation ID, and each request passes its conversation into the state
// machine explicitly.
type AssistantAPI struct {
	conversation *service.ConversationService
	natsConn     *nats.Conn

	mu       sync.Mutex
	sessions map[string]*models.Conversation
}

// NewAssistantAPI creates the HTTP API around the conversation service.
func NewAssistantAPI(conversation *service.ConversationService, natsConn *nats.Conn) *AssistantAPI {
	return &AssistantAPI{
		conversation: conversation,
		natsConn:     natsConn,
		sessions:     make(map[string]*models.Conversation),
	}
}

// chatRequest is the body of a chat turn.
type chatRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

// chatResponse is the reply to a chat turn.
type chatResponse struct {
	ConversationID string                   `json:"conversation_id"`
	Reply          string                   `json:"reply"`
	State          models.ConversationState `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// session returns the conversation for the principal and ID, creating it on
// first use.
func (api *AssistantAPI) session(principal, conversationID string) *models.Conversation {
	api.mu.Lock()
	defer api.mu.Unlock()

	key := principal + "/" + conversationID
	conv, ok := api.sessions[key]
	if !ok {
		conv = models.NewConversation()
		api.sessions[key] = conv
	}
	return conv
}

// handleChat processes one chat turn.
func (api *AssistantAPI) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.New().String()
	}

	principal, _ := ctx.Value(constants.PrincipalContextID).(string)
	if principal == "" {
		principal = middleware.DefaultPrincipal
	}

	conv := api.session(principal, req.ConversationID)
	reply, err := api.conversation.ProcessMessage(ctx, principal, conv, req.Message)
	if err != nil {
		slog.ErrorContext(ctx, "failed to process chat message", logging.ErrKey, err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ConversationID: req.ConversationID,
		Reply:          reply,
		State:          conv.State,
	})
}

// handleLivez reports process liveness.
func (api *AssistantAPI) handleLivez(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReadyz reports readiness to serve traffic.
func (api *AssistantAPI) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if api.natsConn == nil || !api.natsConn.IsConnected() {
		writeError(w, http.StatusServiceUnavailable, "NATS connection is not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// statusForError maps the domain error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		return http.StatusBadRequest
	case domain.ErrorTypeNotFound:
		return http.StatusNotFound
	case domain.ErrorTypeConflict:
		return http.StatusConflict
	case domain.ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// setupHTTPServer configures the router and returns the HTTP server.
func setupHTTPServer(flags flags, api *AssistantAPI) *http.Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.AuthorizationMiddleware())
	router.Use(middleware.RequestLoggerMiddleware())

	router.Post("/chat", api.handleChat)
	router.Get("/livez", api.handleLivez)
	router.Get("/readyz", api.handleReadyz)

	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
