package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"drivetest-bot/internal/exam"
)

type UserStore struct {
	db *sql.DB
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (*exam.User, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT user_id, name, state, current_test, current_question_index, completed_tests_json, created_at_unix
		 FROM users WHERE user_id = ?`,
		userID,
	)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, exam.ErrUserNotFound
	}
	return user, err
}

func (s *UserStore) GetAll(ctx context.Context) ([]*exam.User, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT user_id, name, state, current_test, current_question_index, completed_tests_json, created_at_unix
		 FROM users ORDER BY created_at_unix ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*exam.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *UserStore) Upsert(ctx context.Context, user *exam.User) error {
	completed, err := json.Marshal(user.CompletedTests)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO users (user_id, name, state, current_test, current_question_index, completed_tests_json, created_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			state = excluded.state,
			current_test = excluded.current_test,
			current_question_index = excluded.current_question_index,
			completed_tests_json = excluded.completed_tests_json`,
		user.ID,
		user.Name,
		user.State,
		user.CurrentTest,
		user.CurrentQuestionIndex,
		string(completed),
		user.CreatedAt.UnixNano(),
	)
	return err
}

func (s *UserStore) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*exam.User, error) {
	var (
		user          exam.User
		completedJSON string
		createdNs     int64
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.State,
		&user.CurrentTest,
		&user.CurrentQuestionIndex,
		&completedJSON,
		&createdNs,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(completedJSON), &user.CompletedTests); err != nil {
		return nil, err
	}
	user.CreatedAt = time.Unix(0, createdNs).UTC()
	return &user, nil
}
