package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func taskPageJSON(id, title, todoistID string) map[string]any {
	props := map[string]any{
		"Task Name": map[string]any{
			"title": []map[string]any{{"text": map[string]any{"content": title}}},
		},
	}
	if todoistID != "" {
		props["Task ID"] = map[string]any{
			"rich_text": []map[string]any{{"text": map[string]any{"content": todoistID}}},
		}
	}
	return map[string]any{"id": id, "properties": props}
}

func TestNotionClient(t *testing.T) {
	t.Run("CreatePage", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/pages" || r.Method != http.MethodPost {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			if v := r.Header.Get("Notion-Version"); v != notionVersion {
				t.Errorf("expected Notion-Version %s, got %s", notionVersion, v)
			}

			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}
			parent, _ := body["parent"].(map[string]any)
			if parent["database_id"] != "db123" {
				t.Errorf("expected parent database db123, got %v", parent["database_id"])
			}
			props, _ := body["properties"].(map[string]any)
			if _, ok := props["Task Name"]; !ok {
				t.Error("expected Task Name property group")
			}
			if _, ok := props["Project"]; !ok {
				t.Error("expected Project property group even when cleared")
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(taskPageJSON("page-1", "Buy milk", "77"))
		}))
		defer server.Close()

		c := NewNotionClient("key", "db123", server.URL, nil)
		props := &PageProperties{
			TaskName:    NewTitle("Buy milk"),
			Description: NewRichText(""),
			Priority:    NewSelect("p4"),
			Project:     NewSelect(""),
			DueDate:     NewDate(""),
			Time:        NewRichText(""),
			TaskID:      NewRichText("77"),
			Completed:   NewCheckbox(false),
		}

		page, err := c.CreatePage(context.Background(), props)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if page.ID != "page-1" {
			t.Errorf("expected page id page-1, got %s", page.ID)
		}
	})

	t.Run("UpdatePage omits nil groups", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/pages/page-1" || r.Method != http.MethodPatch {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}

			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			props, _ := body["properties"].(map[string]any)
			if len(props) != 1 {
				t.Errorf("expected exactly one property group, got %d", len(props))
			}
			if _, ok := props["Task ID"]; !ok {
				t.Error("expected Task ID group in write-back update")
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(taskPageJSON("page-1", "Buy milk", "77"))
		}))
		defer server.Close()

		c := NewNotionClient("key", "db123", server.URL, nil)
		if _, err := c.UpdatePage(context.Background(), "page-1", &PageProperties{TaskID: NewRichText("77")}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("ArchivePage", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["archived"] != true {
				t.Errorf("expected archived=true, got %v", body["archived"])
			}
			if _, ok := body["properties"]; ok {
				t.Error("archive should not carry properties")
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"id": "page-1", "archived": true})
		}))
		defer server.Close()

		c := NewNotionClient("key", "db123", server.URL, nil)
		if err := c.ArchivePage(context.Background(), "page-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Query follows pagination", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/databases/db123/query" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			calls++

			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)

			w.Header().Set("Content-Type", "application/json")
			if calls == 1 {
				if _, ok := body["start_cursor"]; ok {
					t.Error("first query should not carry a cursor")
				}
				json.NewEncoder(w).Encode(map[string]any{
					"results":     []any{taskPageJSON("page-1", "First", "")},
					"has_more":    true,
					"next_cursor": "cursor-2",
				})
				return
			}

			if body["start_cursor"] != "cursor-2" {
				t.Errorf("expected cursor-2, got %v", body["start_cursor"])
			}
			json.NewEncoder(w).Encode(map[string]any{
				"results":  []any{taskPageJSON("page-2", "Second", "55")},
				"has_more": false,
			})
		}))
		defer server.Close()

		c := NewNotionClient("key", "db123", server.URL, nil)
		pages, err := c.Query(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 2 {
			t.Errorf("expected 2 query calls, got %d", calls)
		}
		if len(pages) != 2 {
			t.Fatalf("expected 2 pages, got %d", len(pages))
		}
		if pages[1].Properties.TaskID.Text() != "55" {
			t.Errorf("expected task id 55, got %q", pages[1].Properties.TaskID.Text())
		}
	})

	t.Run("FindByTaskID", func(t *testing.T) {
		t.Run("returns matching page", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]any
				json.NewDecoder(r.Body).Decode(&body)
				filter, _ := body["filter"].(map[string]any)
				if filter["property"] != "Task ID" {
					t.Errorf("expected Task ID filter, got %v", filter["property"])
				}
				rich, _ := filter["rich_text"].(map[string]any)
				if rich["equals"] != "77" {
					t.Errorf("expected equals 77, got %v", rich["equals"])
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"results":  []any{taskPageJSON("page-1", "Buy milk", "77")},
					"has_more": false,
				})
			}))
			defer server.Close()

			c := NewNotionClient("key", "db123", server.URL, nil)
			page, err := c.FindByTaskID(context.Background(), "77")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if page == nil || page.ID != "page-1" {
				t.Fatalf("expected page-1, got %+v", page)
			}
		})

		t.Run("absence is not an error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"results": []any{}, "has_more": false})
			}))
			defer server.Close()

			c := NewNotionClient("key", "db123", server.URL, nil)
			page, err := c.FindByTaskID(context.Background(), "unknown")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if page != nil {
				t.Errorf("expected nil page, got %+v", page)
			}
		})
	})

	t.Run("APIError surfaces message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"message": "validation_error"})
		}))
		defer server.Close()

		c := NewNotionClient("key", "db123", server.URL, nil)
		_, err := c.Query(context.Background())
		if err == nil {
			t.Fatal("expected error for 400 response")
		}
	})
}

func TestPropertyAccessors(t *testing.T) {
	t.Run("nil safety", func(t *testing.T) {
		var title *TitleProperty
		var rich *RichTextProperty
		var sel *SelectProperty
		var date *DateProperty
		var box *CheckboxProperty

		if title.Text() != "" || rich.Text() != "" || sel.Name() != "" || date.Start() != "" || box.Value() {
			t.Error("nil property groups should read as empty values")
		}
	})

	t.Run("constructors clear empty optionals", func(t *testing.T) {
		if NewSelect("").Select != nil {
			t.Error("empty select should be cleared")
		}
		if NewDate("").Date != nil {
			t.Error("empty date should be cleared")
		}
		if NewSelect("Work").Name() != "Work" {
			t.Error("select name lost")
		}
		if NewDate("2024-03-01").Start() != "2024-03-01" {
			t.Error("date start lost")
		}
	})
}
