package exam

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Session states a user moves through while talking to the bot.
const (
	StateMenu          = "MENU"
	StateSelectingTest = "SELECTING_TEST"
	StateTakingTest    = "TAKING_TEST"
)

// OptionsPerQuestion is fixed by the A-D answer grammar.
const OptionsPerQuestion = 4

// User is the per-user conversational session plus progress pointers.
// CurrentTest is set only while State is StateTakingTest.
type User struct {
	ID                   string
	Name                 string
	State                string
	CurrentTest          string
	CurrentQuestionIndex int
	CompletedTests       []string
	CreatedAt            time.Time
}

func NewUser(id, name string, now time.Time) *User {
	return &User{
		ID:        id,
		Name:      name,
		State:     StateMenu,
		CreatedAt: now,
	}
}

func (u *User) StartTest(testID string) {
	u.CurrentTest = testID
	u.CurrentQuestionIndex = 0
	u.State = StateTakingTest
}

func (u *User) AdvanceQuestion() {
	u.CurrentQuestionIndex++
}

// CompleteTest records the test in the user's history and resets the session
// back to the menu. Completing the same test twice keeps a single history entry.
func (u *User) CompleteTest(testID string) {
	if !u.HasCompleted(testID) {
		u.CompletedTests = append(u.CompletedTests, testID)
	}
	u.CurrentTest = ""
	u.CurrentQuestionIndex = 0
	u.State = StateMenu
}

func (u *User) HasCompleted(testID string) bool {
	for _, id := range u.CompletedTests {
		if id == testID {
			return true
		}
	}
	return false
}

// Test is an ordered set of questions. Immutable once loaded into the catalog.
type Test struct {
	ID          string
	Title       string
	Description string
	Questions   []Question
}

// Question holds one prompt with exactly four options. Correct is stored as a
// canonical letter A-D; ImageURL is an optional media reference delivered
// before the prompt text.
type Question struct {
	ID       string
	Prompt   string
	Options  []string
	Correct  string
	ImageURL string
}

func (q Question) HasImage() bool {
	return q.ImageURL != ""
}

// IsCorrect compares a recorded answer against the correct option. Both sides
// are normalized, so ordinal answers ("2") and lowercase letters match.
func (q Question) IsCorrect(answer string) bool {
	normalized := NormalizeAnswer(answer)
	return normalized != "" && normalized == NormalizeAnswer(q.Correct)
}

// NormalizeAnswer maps raw input to a canonical option letter. Numeric
// ordinals 0-3 become A-D and letters are uppercased. An empty string means
// the input does not reference an option.
func NormalizeAnswer(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != 1 {
		return ""
	}

	switch c := trimmed[0]; {
	case c >= '0' && c <= '3':
		return string(rune('A' + c - '0'))
	case c >= 'A' && c <= 'D':
		return string(c)
	case c >= 'a' && c <= 'd':
		return string(rune(c - 'a' + 'A'))
	}
	return ""
}

// Result is one user's run through one test: the attempt's answer map and,
// once finalized, its score. Score and Percentage are meaningful only after
// CompletedAt is set.
type Result struct {
	ID          string
	UserID      string
	TestID      string
	UserName    string
	Answers     map[string]string
	StartedAt   time.Time
	CompletedAt time.Time
	Score       int
	Total       int
}

// NewResult derives the attempt id from the user, test, and start time so a
// fresh attempt always gets a distinct record.
func NewResult(userID, testID, userName string, startedAt time.Time) *Result {
	return &Result{
		ID:        fmt.Sprintf("%s-%s-%d", userID, testID, startedAt.UnixNano()),
		UserID:    userID,
		TestID:    testID,
		UserName:  userName,
		Answers:   make(map[string]string),
		StartedAt: startedAt,
	}
}

// RecordAnswer overwrites any prior answer for the question, never appends.
func (r *Result) RecordAnswer(questionID, answer string) {
	if r.Answers == nil {
		r.Answers = make(map[string]string)
	}
	r.Answers[questionID] = answer
}

func (r *Result) Completed() bool {
	return !r.CompletedAt.IsZero()
}

func (r *Result) Percentage() int {
	if r.Total == 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) * 100 / float64(r.Total)))
}
