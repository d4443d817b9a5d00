package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Gesture events - one row per debounced label change
		`CREATE TABLE IF NOT EXISTS gesture_events (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			handedness TEXT NOT NULL DEFAULT '',
			score REAL NOT NULL DEFAULT 0,
			rotation REAL NOT NULL DEFAULT 0,
			openness REAL NOT NULL DEFAULT 0,
			detected_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Bindings - maps a gesture label to a plugin action
		`CREATE TABLE IF NOT EXISTS bindings (
			id TEXT PRIMARY KEY,
			gesture TEXT NOT NULL UNIQUE,
			plugin_name TEXT NOT NULL,
			action_name TEXT NOT NULL,
			config TEXT NOT NULL DEFAULT '{}',
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_gesture_events_detected_at ON gesture_events(detected_at)`,
		`CREATE INDEX IF NOT EXISTS idx_gesture_events_label ON gesture_events(label)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
