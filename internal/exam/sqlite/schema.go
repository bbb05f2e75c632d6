package sqlite

import (
	"context"
)

func (s *Store) initSchema(ctx context.Context) error {
	// No FK constraints: catalog reseeding at startup replaces test rows and
	// must not cascade into user history.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			state TEXT NOT NULL,
			current_test TEXT NOT NULL DEFAULT '',
			current_question_index INTEGER NOT NULL DEFAULT 0,
			completed_tests_json TEXT NOT NULL DEFAULT '[]',
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tests (
			test_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			-- seq preserves catalog load order across upserts.
			seq INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			test_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			question_id TEXT NOT NULL,
			prompt TEXT NOT NULL,
			options_json TEXT NOT NULL,
			correct TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (test_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			result_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			test_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			answers_json TEXT NOT NULL DEFAULT '{}',
			score INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			started_at_unix INTEGER NOT NULL,
			completed_at_unix INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_user_started ON results(user_id, started_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_results_test ON results(test_id);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
