package exam

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// In-memory stores used across the package tests. Error fields let tests
// inject store failures on specific operations.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]User

	getErr    error
	upsertErr error

	upsertCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]User)}
}

func (f *fakeUserStore) GetByID(_ context.Context, userID string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := user
	copied.CompletedTests = append([]string(nil), user.CompletedTests...)
	return &copied, nil
}

func (f *fakeUserStore) GetAll(_ context.Context) ([]*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]*User, 0, len(f.users))
	for _, user := range f.users {
		copied := user
		users = append(users, &copied)
	}
	return users, nil
}

func (f *fakeUserStore) Upsert(_ context.Context, user *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	copied := *user
	copied.CompletedTests = append([]string(nil), user.CompletedTests...)
	f.users[user.ID] = copied
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, userID)
	return nil
}

func (f *fakeUserStore) stored(userID string) User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID]
}

type fakeResultStore struct {
	mu      sync.Mutex
	results map[string]Result

	getErr    error
	upsertErr error
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{results: make(map[string]Result)}
}

func copyResult(result Result) *Result {
	copied := result
	copied.Answers = make(map[string]string, len(result.Answers))
	for questionID, answer := range result.Answers {
		copied.Answers[questionID] = answer
	}
	return &copied
}

func (f *fakeResultStore) GetByID(_ context.Context, resultID string) (*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	result, ok := f.results[resultID]
	if !ok {
		return nil, ErrResultNotFound
	}
	return copyResult(result), nil
}

func (f *fakeResultStore) GetByUserID(_ context.Context, userID string) ([]*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	results := make([]*Result, 0)
	for _, result := range f.results {
		if result.UserID == userID {
			results = append(results, copyResult(result))
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].StartedAt.After(results[j].StartedAt)
	})
	return results, nil
}

func (f *fakeResultStore) GetByTestID(_ context.Context, testID string) ([]*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	results := make([]*Result, 0)
	for _, result := range f.results {
		if result.TestID == testID {
			results = append(results, copyResult(result))
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].StartedAt.After(results[j].StartedAt)
	})
	return results, nil
}

func (f *fakeResultStore) Upsert(_ context.Context, result *Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.results[result.ID] = *copyResult(*result)
	return nil
}

func (f *fakeResultStore) Delete(_ context.Context, resultID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.results, resultID)
	return nil
}

func (f *fakeResultStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.results)
}

// stepClock hands out strictly increasing timestamps so derived attempt ids
// never collide inside a test.
type stepClock struct {
	mu      sync.Mutex
	current time.Time
}

func newStepClock() *stepClock {
	return &stepClock{current: time.Unix(1700000000, 0).UTC()}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(time.Second)
	return c.current
}

// catalogWithTests builds n tests of questionsPerTest questions each. Every
// question's correct option is A, so tests can steer scores precisely.
func catalogWithTests(n, questionsPerTest int) *Catalog {
	tests := make([]*Test, 0, n)
	for testNum := 1; testNum <= n; testNum++ {
		test := &Test{
			ID:          fmt.Sprintf("%d", testNum),
			Title:       fmt.Sprintf("Test %d", testNum),
			Description: fmt.Sprintf("Practice test %d", testNum),
		}
		for questionNum := 1; questionNum <= questionsPerTest; questionNum++ {
			test.Questions = append(test.Questions, Question{
				ID:      fmt.Sprintf("%d-%d", testNum, questionNum),
				Prompt:  fmt.Sprintf("Prompt %d-%d", testNum, questionNum),
				Options: []string{"right", "wrong", "wrong", "wrong"},
				Correct: "A",
			})
		}
		tests = append(tests, test)
	}

	catalog, err := NewCatalog(tests, questionsPerTest)
	if err != nil {
		panic(err)
	}
	return catalog
}
