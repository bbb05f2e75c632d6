package exam

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTestNotFound     = errors.New("test not found")
	ErrResultNotFound   = errors.New("result not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAttemptCompleted = errors.New("attempt already completed")
	ErrInvalidAnswer    = errors.New("answer does not reference an option")
)

// UserStore persists conversational sessions. Upsert is atomic per user id
// and a read following a write from the same caller observes the write.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Upsert(ctx context.Context, user *User) error
	Delete(ctx context.Context, userID string) error
}

// TestStore persists catalog content.
type TestStore interface {
	GetByID(ctx context.Context, testID string) (*Test, error)
	GetAll(ctx context.Context) ([]*Test, error)
	Upsert(ctx context.Context, test *Test) error
	Delete(ctx context.Context, testID string) error
}

// ResultStore persists attempts. GetByUserID returns the most recently
// started attempts first.
type ResultStore interface {
	GetByID(ctx context.Context, resultID string) (*Result, error)
	GetByUserID(ctx context.Context, userID string) ([]*Result, error)
	GetByTestID(ctx context.Context, testID string) ([]*Result, error)
	Upsert(ctx context.Context, result *Result) error
	Delete(ctx context.Context, resultID string) error
}
