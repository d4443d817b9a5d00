package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Binding maps a gesture label to a plugin action. At most one binding
// exists per gesture label.
type Binding struct {
	ID         string
	Gesture    string
	PluginName string
	ActionName string
	Config     json.RawMessage
	Enabled    bool
	CreatedAt  time.Time
}

// BindingRepository provides CRUD operations for bindings.
type BindingRepository struct {
	db *sql.DB
}

// Bindings returns the binding repository for this store.
func (s *Store) Bindings() *BindingRepository {
	return &BindingRepository{db: s.db}
}

// Create inserts a new binding into the database.
func (r *BindingRepository) Create(b *Binding) error {
	b.CreatedAt = time.Now()

	config := b.Config
	if config == nil {
		config = json.RawMessage("{}")
	}

	_, err := r.db.Exec(
		`INSERT INTO bindings (id, gesture, plugin_name, action_name, config, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Gesture, b.PluginName, b.ActionName, string(config), b.Enabled, b.CreatedAt,
	)
	return err
}

// GetByID retrieves a binding by its ID.
func (r *BindingRepository) GetByID(id string) (*Binding, error) {
	return r.get(`SELECT id, gesture, plugin_name, action_name, config, enabled, created_at
		 FROM bindings WHERE id = ?`, id)
}

// GetByGesture retrieves the binding for a gesture label.
// Returns nil, nil when no binding exists, so an unbound gesture is a
// silent skip rather than an error.
func (r *BindingRepository) GetByGesture(gesture string) (*Binding, error) {
	b, err := r.get(`SELECT id, gesture, plugin_name, action_name, config, enabled, created_at
		 FROM bindings WHERE gesture = ?`, gesture)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

func (r *BindingRepository) get(query, arg string) (*Binding, error) {
	b := &Binding{}
	var config string
	var enabled int

	err := r.db.QueryRow(query, arg).
		Scan(&b.ID, &b.Gesture, &b.PluginName, &b.ActionName, &config, &enabled, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b.Config = json.RawMessage(config)
	b.Enabled = enabled != 0
	return b, nil
}

// List returns all bindings ordered by gesture label.
func (r *BindingRepository) List() ([]Binding, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, plugin_name, action_name, config, enabled, created_at
		 FROM bindings ORDER BY gesture`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bindings []Binding
	for rows.Next() {
		var b Binding
		var config string
		var enabled int
		if err := rows.Scan(&b.ID, &b.Gesture, &b.PluginName, &b.ActionName, &config, &enabled, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Config = json.RawMessage(config)
		b.Enabled = enabled != 0
		bindings = append(bindings, b)
	}

	return bindings, rows.Err()
}

// Update modifies an existing binding.
func (r *BindingRepository) Update(b *Binding) error {
	config := b.Config
	if config == nil {
		config = json.RawMessage("{}")
	}

	result, err := r.db.Exec(
		`UPDATE bindings SET gesture = ?, plugin_name = ?, action_name = ?, config = ?, enabled = ?
		 WHERE id = ?`,
		b.Gesture, b.PluginName, b.ActionName, string(config), b.Enabled, b.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a binding by its ID.
func (r *BindingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bindings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
