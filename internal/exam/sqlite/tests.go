package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"drivetest-bot/internal/exam"
)

type TestStore struct {
	db *sql.DB
}

func (s *TestStore) GetByID(ctx context.Context, testID string) (*exam.Test, error) {
	var test exam.Test
	err := s.db.QueryRowContext(
		ctx,
		`SELECT test_id, title, description FROM tests WHERE test_id = ?`,
		testID,
	).Scan(&test.ID, &test.Title, &test.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, exam.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.questionsFor(ctx, testID)
	if err != nil {
		return nil, err
	}
	test.Questions = questions
	return &test, nil
}

// GetAll returns tests in catalog load order.
func (s *TestStore) GetAll(ctx context.Context) ([]*exam.Test, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT test_id, title, description FROM tests ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tests := make([]*exam.Test, 0)
	for rows.Next() {
		var test exam.Test
		if err := rows.Scan(&test.ID, &test.Title, &test.Description); err != nil {
			return nil, err
		}
		tests = append(tests, &test)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, test := range tests {
		questions, err := s.questionsFor(ctx, test.ID)
		if err != nil {
			return nil, err
		}
		test.Questions = questions
	}
	return tests, nil
}

// Upsert replaces the test and its questions in one transaction. A test seen
// for the first time is appended to the load order; re-upserting keeps its
// original position.
func (s *TestStore) Upsert(ctx context.Context, test *exam.Test) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM tests WHERE test_id = ?`, test.ID).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM tests`).Scan(&seq); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO tests (test_id, title, description, seq) VALUES (?, ?, ?, ?)`,
		test.ID, test.Title, test.Description, seq,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE test_id = ?`, test.ID); err != nil {
		return err
	}

	for position, question := range test.Questions {
		options, err := json.Marshal(question.Options)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO questions (test_id, position, question_id, prompt, options_json, correct, image_url)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			test.ID, position, question.ID, question.Prompt, string(options), question.Correct, question.ImageURL,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *TestStore) Delete(ctx context.Context, testID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE test_id = ?`, testID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tests WHERE test_id = ?`, testID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *TestStore) questionsFor(ctx context.Context, testID string) ([]exam.Question, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question_id, prompt, options_json, correct, image_url
		 FROM questions WHERE test_id = ? ORDER BY position ASC`,
		testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]exam.Question, 0)
	for rows.Next() {
		var (
			question    exam.Question
			optionsJSON string
		)
		if err := rows.Scan(&question.ID, &question.Prompt, &optionsJSON, &question.Correct, &question.ImageURL); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}
