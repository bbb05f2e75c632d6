package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"drivetest-bot/internal/exam"
)

type ResultStore struct {
	db *sql.DB
}

const resultColumns = `result_id, user_id, test_id, user_name, answers_json, score, total, started_at_unix, completed_at_unix`

func (s *ResultStore) GetByID(ctx context.Context, resultID string) (*exam.Result, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+resultColumns+` FROM results WHERE result_id = ?`,
		resultID,
	)
	result, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, exam.ErrResultNotFound
	}
	return result, err
}

// GetByUserID returns the user's attempts, most recently started first.
func (s *ResultStore) GetByUserID(ctx context.Context, userID string) ([]*exam.Result, error) {
	return s.query(
		ctx,
		`SELECT `+resultColumns+` FROM results WHERE user_id = ? ORDER BY started_at_unix DESC`,
		userID,
	)
}

func (s *ResultStore) GetByTestID(ctx context.Context, testID string) ([]*exam.Result, error) {
	return s.query(
		ctx,
		`SELECT `+resultColumns+` FROM results WHERE test_id = ? ORDER BY started_at_unix DESC`,
		testID,
	)
}

func (s *ResultStore) Upsert(ctx context.Context, result *exam.Result) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return err
	}

	var completed sql.NullInt64
	if result.Completed() {
		completed = sql.NullInt64{Int64: result.CompletedAt.UnixNano(), Valid: true}
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO results (result_id, user_id, test_id, user_name, answers_json, score, total, started_at_unix, completed_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(result_id) DO UPDATE SET
			answers_json = excluded.answers_json,
			score = excluded.score,
			total = excluded.total,
			completed_at_unix = excluded.completed_at_unix`,
		result.ID,
		result.UserID,
		result.TestID,
		result.UserName,
		string(answers),
		result.Score,
		result.Total,
		result.StartedAt.UnixNano(),
		completed,
	)
	return err
}

func (s *ResultStore) Delete(ctx context.Context, resultID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE result_id = ?`, resultID)
	return err
}

func (s *ResultStore) query(ctx context.Context, stmt string, arg any) ([]*exam.Result, error) {
	rows, err := s.db.QueryContext(ctx, stmt, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*exam.Result, 0)
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func scanResult(row rowScanner) (*exam.Result, error) {
	var (
		result      exam.Result
		answersJSON string
		startedNs   int64
		completedNs sql.NullInt64
	)
	if err := row.Scan(
		&result.ID,
		&result.UserID,
		&result.TestID,
		&result.UserName,
		&answersJSON,
		&result.Score,
		&result.Total,
		&startedNs,
		&completedNs,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(answersJSON), &result.Answers); err != nil {
		return nil, err
	}
	result.StartedAt = time.Unix(0, startedNs).UTC()
	if completedNs.Valid {
		result.CompletedAt = time.Unix(0, completedNs.Int64).UTC()
	}
	return &result, nil
}
