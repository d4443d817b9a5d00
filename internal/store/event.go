package store

import (
	"database/sql"
	"time"
)

// Event represents one recorded gesture recognition, written when the
// debounced label changes.
type Event struct {
	ID         string
	Label      string
	Handedness string
	Score      float64
	Rotation   float64
	Openness   float64
	DetectedAt time.Time
}

// EventRepository provides access to the gesture event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts a new event into the database.
func (r *EventRepository) Create(e *Event) error {
	if e.DetectedAt.IsZero() {
		e.DetectedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO gesture_events (id, label, handedness, score, rotation, openness, detected_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Label, e.Handedness, e.Score, e.Rotation, e.Openness, e.DetectedAt,
	)
	return err
}

// List returns the most recent events, newest first, up to limit.
// A non-positive limit returns up to 100 events.
func (r *EventRepository) List(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(
		`SELECT id, label, handedness, score, rotation, openness, detected_at
		 FROM gesture_events ORDER BY detected_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Label, &e.Handedness, &e.Score, &e.Rotation, &e.Openness, &e.DetectedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountByLabel returns the number of recorded events per label.
func (r *EventRepository) CountByLabel() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT label, COUNT(*) FROM gesture_events GROUP BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}

	return counts, rows.Err()
}

// Clear deletes all recorded events and returns how many were removed.
func (r *EventRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM gesture_events`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
