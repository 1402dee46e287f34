package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/taskbridge/internal/services"
	"github.com/desertthunder/taskbridge/internal/shared"
	"github.com/desertthunder/taskbridge/internal/tasks"
)

type mockSyncer struct {
	calls  []services.TodoistTask
	result *tasks.EventResult
	err    error
}

func (m *mockSyncer) SyncEvent(_ context.Context, src services.TodoistTask) (*tasks.EventResult, error) {
	m.calls = append(m.calls, src)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &tasks.EventResult{Action: tasks.ActionCreated, PageID: "page-1"}, nil
}

func eventBody(t *testing.T, eventName, taskID string) []byte {
	t.Helper()
	payload := map[string]any{
		"event_name": eventName,
		"event_data": map[string]any{"id": taskID, "content": "Buy milk"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return body
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(handler http.Handler, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/todoist/webhook", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Todoist-Hmac-Sha256", signature)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWebhookHandler(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("mirrors item events", func(t *testing.T) {
		for _, event := range []string{"item:added", "item:updated"} {
			syncer := &mockSyncer{}
			handler := NewWebhookHandler(syncer, "", logger)

			rec := postWebhook(handler, eventBody(t, event, "42"), "")

			if rec.Code != http.StatusOK {
				t.Errorf("%s: expected 200, got %d", event, rec.Code)
			}
			if len(syncer.calls) != 1 || syncer.calls[0].ID != "42" {
				t.Errorf("%s: expected one sync of task 42, got %+v", event, syncer.calls)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("%s: decode response: %v", event, err)
			}
			if body["status"] != "success" {
				t.Errorf("%s: unexpected body %v", event, body)
			}
		}
	})

	t.Run("acknowledges unmirrored events without syncing", func(t *testing.T) {
		for _, event := range []string{"item:deleted", "item:completed", "note:added"} {
			syncer := &mockSyncer{}
			handler := NewWebhookHandler(syncer, "", logger)

			rec := postWebhook(handler, eventBody(t, event, "42"), "")

			if rec.Code != http.StatusOK {
				t.Errorf("%s: expected 200, got %d", event, rec.Code)
			}
			if len(syncer.calls) != 0 {
				t.Errorf("%s: event must not reach the bridge", event)
			}
		}
	})

	t.Run("accepts a valid signature", func(t *testing.T) {
		syncer := &mockSyncer{}
		handler := NewWebhookHandler(syncer, "topsecret", logger)
		body := eventBody(t, "item:added", "42")

		rec := postWebhook(handler, body, sign(body, "topsecret"))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if len(syncer.calls) != 1 {
			t.Error("expected the event to be mirrored")
		}
	})

	t.Run("rejects a bad signature", func(t *testing.T) {
		syncer := &mockSyncer{}
		handler := NewWebhookHandler(syncer, "topsecret", logger)
		body := eventBody(t, "item:added", "42")

		rec := postWebhook(handler, body, sign(body, "wrong-secret"))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
		if len(syncer.calls) != 0 {
			t.Error("unverified event must not reach the bridge")
		}
	})

	t.Run("rejects a missing signature when a secret is configured", func(t *testing.T) {
		handler := NewWebhookHandler(&mockSyncer{}, "topsecret", logger)

		rec := postWebhook(handler, eventBody(t, "item:added", "42"), "")

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects an event without a record id", func(t *testing.T) {
		handler := NewWebhookHandler(&mockSyncer{}, "", logger)

		rec := postWebhook(handler, eventBody(t, "item:added", ""), "")

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects a malformed payload", func(t *testing.T) {
		handler := NewWebhookHandler(&mockSyncer{}, "", logger)

		rec := postWebhook(handler, []byte("{not json"), "")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("sync failure returns 500", func(t *testing.T) {
		syncer := &mockSyncer{err: errors.New("notion unreachable")}
		handler := NewWebhookHandler(syncer, "", logger)

		rec := postWebhook(handler, eventBody(t, "item:added", "42"), "")

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&HealthHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "OK" {
		t.Errorf("unexpected body %v", body)
	}
}
