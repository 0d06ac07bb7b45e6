package store

// migrations run in order. Statements stay within the SQL shared by SQLite
// and Postgres so the same list serves both drivers.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS climbing_sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		location TEXT NOT NULL,
		style TEXT NOT NULL,
		notes TEXT,
		source_file TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS climb_entries (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES climbing_sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT,
		grade TEXT NOT NULL,
		attempts INTEGER NOT NULL,
		sent BOOLEAN NOT NULL,
		reached_top BOOLEAN NOT NULL,
		lead BOOLEAN NOT NULL,
		rests INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS workout_sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		notes TEXT,
		source_file TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS exercise_entries (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES workout_sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		sets INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		weight_lb INTEGER NOT NULL,
		rpe INTEGER,
		is_main_lift BOOLEAN
	)`,
	`CREATE TABLE IF NOT EXISTS climbing_metrics (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		finger_strength_percent_bw REAL,
		max_pullup_percent_bw REAL,
		notes TEXT,
		source_file TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_climbing_sessions_date ON climbing_sessions(date)`,
	`CREATE INDEX IF NOT EXISTS idx_workout_sessions_date ON workout_sessions(date)`,
	`CREATE INDEX IF NOT EXISTS idx_climbing_metrics_date ON climbing_metrics(date)`,
	`CREATE INDEX IF NOT EXISTS idx_climb_entries_session ON climb_entries(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exercise_entries_session ON exercise_entries(session_id)`,
}
