package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)

	if s.DB() == nil {
		t.Fatal("DB() returned nil")
	}

	// Migrations must be idempotent.
	if err := s.runMigrations(); err != nil {
		t.Errorf("second runMigrations() error = %v", err)
	}
}

func TestEventRepository(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	t.Run("create and list", func(t *testing.T) {
		base := time.Now().Add(-time.Minute)
		for i, label := range []string{"fist", "open_hand", "fist"} {
			err := events.Create(&Event{
				ID:         uuid.NewString(),
				Label:      label,
				Handedness: "Right",
				Score:      0.9,
				Rotation:   270,
				Openness:   float64(i * 40),
				DetectedAt: base.Add(time.Duration(i) * time.Second),
			})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}

		list, err := events.List(10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("len(list) = %d, want 3", len(list))
		}

		// Newest first.
		if list[0].Label != "fist" || list[0].Openness != 80 {
			t.Errorf("newest event = %+v, want the last-created fist", list[0])
		}
	})

	t.Run("list respects limit", func(t *testing.T) {
		list, err := events.List(2)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 2 {
			t.Errorf("len(list) = %d, want 2", len(list))
		}
	})

	t.Run("count by label", func(t *testing.T) {
		counts, err := events.CountByLabel()
		if err != nil {
			t.Fatalf("CountByLabel() error = %v", err)
		}
		if counts["fist"] != 2 || counts["open_hand"] != 1 {
			t.Errorf("counts = %v, want fist:2 open_hand:1", counts)
		}
	})

	t.Run("clear", func(t *testing.T) {
		removed, err := events.Clear()
		if err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if removed != 3 {
			t.Errorf("Clear() removed = %d, want 3", removed)
		}

		list, err := events.List(10)
		if err != nil {
			t.Fatalf("List() after Clear error = %v", err)
		}
		if len(list) != 0 {
			t.Errorf("len(list) after Clear = %d, want 0", len(list))
		}
	})
}

func TestBindingRepository(t *testing.T) {
	s := newTestStore(t)
	bindings := s.Bindings()

	binding := &Binding{
		ID:         uuid.NewString(),
		Gesture:    "thumbs_up",
		PluginName: "media-control",
		ActionName: "play_pause",
		Enabled:    true,
	}

	t.Run("create and get", func(t *testing.T) {
		if err := bindings.Create(binding); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		got, err := bindings.GetByID(binding.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.Gesture != "thumbs_up" || got.PluginName != "media-control" {
			t.Errorf("GetByID() = %+v", got)
		}
		if string(got.Config) != "{}" {
			t.Errorf("Config = %s, want default {}", got.Config)
		}
	})

	t.Run("get by gesture", func(t *testing.T) {
		got, err := bindings.GetByGesture("thumbs_up")
		if err != nil {
			t.Fatalf("GetByGesture() error = %v", err)
		}
		if got == nil || got.ID != binding.ID {
			t.Errorf("GetByGesture() = %+v, want binding %s", got, binding.ID)
		}
	})

	t.Run("unbound gesture is nil nil", func(t *testing.T) {
		got, err := bindings.GetByGesture("peace")
		if err != nil {
			t.Fatalf("GetByGesture() error = %v", err)
		}
		if got != nil {
			t.Errorf("GetByGesture(unbound) = %+v, want nil", got)
		}
	})

	t.Run("duplicate gesture rejected", func(t *testing.T) {
		err := bindings.Create(&Binding{
			ID:         uuid.NewString(),
			Gesture:    "thumbs_up",
			PluginName: "media-control",
			ActionName: "next_track",
		})
		if err == nil {
			t.Error("expected unique constraint error for duplicate gesture")
		}
	})

	t.Run("update", func(t *testing.T) {
		binding.ActionName = "next_track"
		binding.Config = json.RawMessage(`{"hold":true}`)
		if err := bindings.Update(binding); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		got, err := bindings.GetByID(binding.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.ActionName != "next_track" || string(got.Config) != `{"hold":true}` {
			t.Errorf("after update: %+v", got)
		}
	})

	t.Run("update missing binding", func(t *testing.T) {
		err := bindings.Update(&Binding{ID: "missing"})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Update(missing) error = %v, want %v", err, ErrNotFound)
		}
	})

	t.Run("list", func(t *testing.T) {
		list, err := bindings.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 1 {
			t.Errorf("len(list) = %d, want 1", len(list))
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := bindings.Delete(binding.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := bindings.Delete(binding.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("second Delete() error = %v, want %v", err, ErrNotFound)
		}
	})
}

func TestSettingRepository(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	t.Run("missing key", func(t *testing.T) {
		if _, err := settings.Get("absent"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(absent) error = %v, want %v", err, ErrNotFound)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		if err := settings.Set("hud_enabled", "true"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := settings.Get("hud_enabled")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "true" {
			t.Errorf("Get() = %q, want %q", got, "true")
		}
	})

	t.Run("set replaces", func(t *testing.T) {
		if err := settings.Set("hud_enabled", "false"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, _ := settings.Get("hud_enabled")
		if got != "false" {
			t.Errorf("Get() = %q, want %q", got, "false")
		}
	})

	t.Run("all", func(t *testing.T) {
		settings.Set("debounce", "3")
		all, err := settings.All()
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(all) != 2 {
			t.Errorf("len(all) = %d, want 2", len(all))
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := settings.Delete("debounce"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := settings.Delete("debounce"); err != nil {
			t.Errorf("Delete() of missing key error = %v, want nil", err)
		}
	})
}
