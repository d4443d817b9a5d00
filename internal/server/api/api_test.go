package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEventsHandler_ListAndStats(t *testing.T) {
	s := newTestStore(t)
	h := NewEventsHandler(s)

	for i, label := range []string{"fist", "fist", "peace"} {
		err := s.Events().Create(&store.Event{
			ID:    string(rune('a' + i)),
			Label: label,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	rec := doJSON(t, h, http.MethodGet, "/api/events?limit=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}

	var list struct {
		Events []eventResponse `json:"events"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Events) != 2 {
		t.Errorf("len(events) = %d, want 2", len(list.Events))
	}

	rec = doJSON(t, h, http.MethodGet, "/api/events/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}

	var stats struct {
		Counts map[string]int `json:"counts"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Counts["fist"] != 2 || stats.Counts["peace"] != 1 {
		t.Errorf("counts = %v", stats.Counts)
	}
}

func TestEventsHandler_Clear(t *testing.T) {
	s := newTestStore(t)
	h := NewEventsHandler(s)

	if err := s.Events().Create(&store.Event{ID: "e1", Label: "fist"}); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, h, http.MethodDelete, "/api/events", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}

	var resp map[string]int64
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["deleted"] != 1 {
		t.Errorf("deleted = %d, want 1", resp["deleted"])
	}
}

func TestEventsHandler_InvalidLimit(t *testing.T) {
	h := NewEventsHandler(newTestStore(t))

	rec := doJSON(t, h, http.MethodGet, "/api/events?limit=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestBindingsHandler_CRUD(t *testing.T) {
	changes := 0
	h := NewBindingsHandler(newTestStore(t), func() { changes++ })

	// Create
	rec := doJSON(t, h, http.MethodPost, "/api/bindings", map[string]interface{}{
		"gesture":     "fist",
		"plugin_name": "media-control",
		"action_name": "play_pause",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var created bindingResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || !created.Enabled {
		t.Errorf("created = %+v, want generated id and enabled default true", created)
	}

	// Duplicate gesture rejected
	rec = doJSON(t, h, http.MethodPost, "/api/bindings", map[string]interface{}{
		"gesture":     "fist",
		"plugin_name": "media-control",
		"action_name": "next_track",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate create status = %d, want %d", rec.Code, http.StatusConflict)
	}

	// Get
	rec = doJSON(t, h, http.MethodGet, "/api/bindings/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// Update
	enabled := false
	rec = doJSON(t, h, http.MethodPut, "/api/bindings/"+created.ID, map[string]interface{}{
		"action_name": "next_track",
		"enabled":     enabled,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var updated bindingResponse
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.ActionName != "next_track" || updated.Enabled {
		t.Errorf("updated = %+v", updated)
	}

	// List
	rec = doJSON(t, h, http.MethodGet, "/api/bindings", nil)
	var list listBindingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list.Bindings) != 1 {
		t.Errorf("len(bindings) = %d, want 1", len(list.Bindings))
	}

	// Delete
	rec = doJSON(t, h, http.MethodDelete, "/api/bindings/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/bindings/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	// Create, update and delete each notify; rejected writes and reads do not.
	if changes != 3 {
		t.Errorf("change notifications = %d, want 3", changes)
	}
}

func TestBindingsHandler_Validation(t *testing.T) {
	h := NewBindingsHandler(newTestStore(t), nil)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing gesture", map[string]interface{}{"plugin_name": "p", "action_name": "a"}},
		{"missing plugin", map[string]interface{}{"gesture": "fist", "action_name": "a"}},
		{"missing action", map[string]interface{}{"gesture": "fist", "plugin_name": "p"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/bindings", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestSettingsHandler(t *testing.T) {
	h := NewSettingsHandler(newTestStore(t))

	// Set
	rec := doJSON(t, h, http.MethodPut, "/api/settings/hud_color", map[string]string{"value": "cyan"})
	if rec.Code != http.StatusOK {
		t.Fatalf("set status = %d", rec.Code)
	}

	// Get
	rec = doJSON(t, h, http.MethodGet, "/api/settings/hud_color", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got settingResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Value != "cyan" {
		t.Errorf("value = %q, want %q", got.Value, "cyan")
	}

	// List
	rec = doJSON(t, h, http.MethodGet, "/api/settings", nil)
	var list struct {
		Settings map[string]string `json:"settings"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if list.Settings["hud_color"] != "cyan" {
		t.Errorf("settings = %v", list.Settings)
	}

	// Delete then 404 on get
	rec = doJSON(t, h, http.MethodDelete, "/api/settings/hud_color", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/settings/hud_color", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}
