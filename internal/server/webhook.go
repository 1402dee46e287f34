package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/taskbridge/internal/services"
	"github.com/desertthunder/taskbridge/internal/shared"
	"github.com/desertthunder/taskbridge/internal/tasks"
)

// EventSyncer mirrors a single Todoist record into its Notion page.
type EventSyncer interface {
	SyncEvent(ctx context.Context, src services.TodoistTask) (*tasks.EventResult, error)
}

// webhookPayload is the envelope Todoist posts for item events.
type webhookPayload struct {
	EventName string               `json:"event_name"`
	EventData services.TodoistTask `json:"event_data"`
}

// WebhookHandler receives Todoist item webhooks and drives the event-driven
// sync direction.
//
// Requests are authenticated by recomputing the HMAC-SHA256 of the raw body
// with the configured client secret and comparing it to the
// X-Todoist-Hmac-Sha256 header. item:added and item:updated events are
// mirrored; every other event is acknowledged without action so Todoist does
// not retry it.
type WebhookHandler struct {
	syncer EventSyncer
	secret string
	logger *log.Logger
}

// NewWebhookHandler creates a webhook handler. An empty secret disables
// signature verification; a nil logger falls back to stderr.
func NewWebhookHandler(syncer EventSyncer, secret string, logger *log.Logger) *WebhookHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &WebhookHandler{
		syncer: syncer,
		secret: secret,
		logger: logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *WebhookHandler) Routes() []string {
	return []string{"/api/todoist/webhook"}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Unable to read request", http.StatusBadRequest)
		return
	}

	if h.secret != "" && !validSignature(body, r.Header.Get("X-Todoist-Hmac-Sha256"), h.secret) {
		h.logger.Warn("webhook signature mismatch", "request_id", RequestIDFromContext(r.Context()))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "Malformed payload", http.StatusBadRequest)
		return
	}

	if payload.EventData.ID == "" {
		h.logger.Warn("webhook event without record id", "event", payload.EventName)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch payload.EventName {
	case "item:added", "item:updated":
	default:
		h.logger.Debug("ignoring event", "event", payload.EventName, "task", payload.EventData.ID)
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}

	res, err := h.syncer.SyncEvent(r.Context(), payload.EventData)
	if err != nil {
		h.logger.Error("webhook sync failed",
			"event", payload.EventName,
			"task", payload.EventData.ID,
			"error", err,
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("webhook processed",
		"event", payload.EventName,
		"task", payload.EventData.ID,
		"action", res.Action.String(),
		"page", res.PageID,
	)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// validSignature recomputes the body signature and compares it to the header
// value in constant time.
func validSignature(body []byte, header, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(header))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
