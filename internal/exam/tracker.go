package exam

import (
	"context"
	"fmt"
	"time"
)

// DefaultPassingPercentage is the pass threshold when none is configured.
const DefaultPassingPercentage = 75

// Tracker creates, updates, and finalizes attempts and computes scores.
// It owns every mutation of Result records and the User progress pointers
// tied to them; callers never write those fields directly.
type Tracker struct {
	catalog *Catalog
	users   UserStore
	results ResultStore
	passPct int
	now     func() time.Time
}

func NewTracker(catalog *Catalog, users UserStore, results ResultStore, passingPercentage int) *Tracker {
	if passingPercentage <= 0 {
		passingPercentage = DefaultPassingPercentage
	}
	return &Tracker{
		catalog: catalog,
		users:   users,
		results: results,
		passPct: passingPercentage,
		now:     time.Now,
	}
}

// StartAttempt creates a fresh attempt record for the user/test pair and
// points the user's session at question 0. A prior open attempt for the same
// test is deliberately left in place; the new record supersedes it.
func (t *Tracker) StartAttempt(ctx context.Context, user *User, testID string) (*Result, error) {
	test, err := t.catalog.ByID(testID)
	if err != nil {
		return nil, err
	}

	result := NewResult(user.ID, testID, user.Name, t.now().UTC())
	result.Total = len(test.Questions)
	if err := t.results.Upsert(ctx, result); err != nil {
		return nil, fmt.Errorf("persist attempt: %w", err)
	}

	user.StartTest(testID)
	if err := t.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}

	return result, nil
}

// OpenAttempt returns the most recently started incomplete attempt for the
// user/test pair, or ErrResultNotFound when there is none.
func (t *Tracker) OpenAttempt(ctx context.Context, userID, testID string) (*Result, error) {
	results, err := t.results.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, result := range results {
		if result.TestID == testID && !result.Completed() {
			return result, nil
		}
	}
	return nil, fmt.Errorf("open attempt for user %s test %s: %w", userID, testID, ErrResultNotFound)
}

// RecordAnswer normalizes and stores the answer, overwriting any prior answer
// for the question, then advances the user's question index by exactly one.
// The result is persisted before the user, so a failed user write leaves the
// index unchanged and a resend of the same letter is harmless.
func (t *Tracker) RecordAnswer(ctx context.Context, user *User, attemptID, questionID, rawAnswer string) error {
	result, err := t.results.GetByID(ctx, attemptID)
	if err != nil {
		return err
	}
	if result.Completed() {
		return fmt.Errorf("attempt %s: %w", attemptID, ErrAttemptCompleted)
	}

	letter := NormalizeAnswer(rawAnswer)
	if letter == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAnswer, rawAnswer)
	}

	result.RecordAnswer(questionID, letter)
	if err := t.results.Upsert(ctx, result); err != nil {
		return fmt.Errorf("persist answer: %w", err)
	}

	user.AdvanceQuestion()
	if err := t.users.Upsert(ctx, user); err != nil {
		user.CurrentQuestionIndex--
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Finalize scores the attempt against its test and stamps the completion
// time. A second call is a no-op returning the already-finalized result.
// The user's session returns to the menu and the test joins their history.
func (t *Tracker) Finalize(ctx context.Context, user *User, attemptID string) (*Result, error) {
	result, err := t.results.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if result.Completed() {
		return result, nil
	}

	test, err := t.catalog.ByID(result.TestID)
	if err != nil {
		return nil, err
	}

	score := 0
	for _, question := range test.Questions {
		answer, answered := result.Answers[question.ID]
		if answered && question.IsCorrect(answer) {
			score++
		}
	}

	result.Score = score
	result.Total = len(test.Questions)
	result.CompletedAt = t.now().UTC()
	if err := t.results.Upsert(ctx, result); err != nil {
		result.CompletedAt = time.Time{}
		return nil, fmt.Errorf("persist result: %w", err)
	}

	user.CompleteTest(result.TestID)
	if err := t.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}

	return result, nil
}

// Passed derives pass/fail from the configured threshold. Never stored.
func (t *Tracker) Passed(result *Result) bool {
	return result.Percentage() >= t.passPct
}

func (t *Tracker) PassingPercentage() int {
	return t.passPct
}
