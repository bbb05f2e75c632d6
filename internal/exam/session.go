package exam

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Message is one outbound send. When ImageURL is set the channel delivers the
// media before the text.
type Message struct {
	Text     string
	ImageURL string
}

func text(s string) Message {
	return Message{Text: s}
}

// SessionController interprets one inbound text message for one user and
// produces the outbound replies plus the user's next session state. Handling
// is serialized per user id: the lock is held from state read until the
// resulting state is persisted, so concurrent sends from the same user
// cannot interleave.
type SessionController struct {
	catalog *Catalog
	tracker *Tracker
	users   UserStore
	results ResultStore
	locks   *userLocks
	log     *zap.Logger
}

func NewSessionController(catalog *Catalog, tracker *Tracker, users UserStore, results ResultStore, log *zap.Logger) *SessionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionController{
		catalog: catalog,
		tracker: tracker,
		users:   users,
		results: results,
		locks:   newUserLocks(),
		log:     log,
	}
}

// Greeting is the opening message for a channel that wants to prompt the
// user before any input arrives.
func (c *SessionController) Greeting() []Message {
	return []Message{text(renderMenu())}
}

// HandleMessage is the message-handling boundary: every error is converted to
// a user-facing reply here and nothing propagates to the channel loop. A
// store failure leaves the session state exactly as it was, so resending the
// same input is safe.
func (c *SessionController) HandleMessage(ctx context.Context, userID, displayName, input string) []Message {
	release := c.locks.acquire(userID)
	defer release()

	messages, err := c.dispatch(ctx, userID, displayName, strings.TrimSpace(input))
	if err != nil {
		c.log.Error("message handling failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return []Message{text(msgGenericError)}
	}
	return messages
}

func (c *SessionController) dispatch(ctx context.Context, userID, displayName, input string) ([]Message, error) {
	user, err := c.users.GetByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		user = NewUser(userID, displayName, c.tracker.now().UTC())
		if err := c.users.Upsert(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	switch user.State {
	case StateMenu:
		return c.handleMenu(ctx, user, input)
	case StateSelectingTest:
		return c.handleSelection(ctx, user, input)
	case StateTakingTest:
		return c.handleAnswer(ctx, user, input)
	default:
		// Unknown persisted state, self-heal back to the menu.
		c.log.Warn("unknown session state", zap.String("user_id", userID), zap.String("state", user.State))
		return c.resetSession(ctx, user)
	}
}

func (c *SessionController) handleMenu(ctx context.Context, user *User, input string) ([]Message, error) {
	switch strings.ToLower(input) {
	case "1":
		user.State = StateSelectingTest
		if err := c.users.Upsert(ctx, user); err != nil {
			user.State = StateMenu
			return nil, fmt.Errorf("persist user: %w", err)
		}
		return []Message{text(renderTestList(c.catalog.All()))}, nil

	case "2":
		results, err := c.results.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("load results: %w", err)
		}
		completed := make([]*Result, 0, len(results))
		for _, result := range results {
			if result.Completed() {
				completed = append(completed, result)
			}
		}

		messages := make([]Message, 0, 3)
		if len(completed) == 0 {
			messages = append(messages, text(msgNoResults))
		} else {
			messages = append(messages, text(renderHistory(completed, c.tracker.PassingPercentage())))
		}
		messages = append(messages, text(msgWhatNext), text(renderMenu()))
		return messages, nil

	case "3", "help":
		help := renderHelp(c.catalog.Len(), c.catalog.QuestionsPerTest(), c.tracker.PassingPercentage())
		return []Message{text(help)}, nil

	default:
		return []Message{text(msgInvalidOption), text(renderMenu())}, nil
	}
}

func (c *SessionController) handleSelection(ctx context.Context, user *User, input string) ([]Message, error) {
	number, ok := parseTestNumber(input, c.catalog.Len())
	if !ok {
		prompt := fmt.Sprintf("Invalid test number. Please enter a number between 1 and %d.", c.catalog.Len())
		return []Message{text(prompt)}, nil
	}

	test := c.catalog.All()[number-1]
	if _, err := c.tracker.StartAttempt(ctx, user, test.ID); err != nil {
		if errors.Is(err, ErrTestNotFound) {
			return c.resetSession(ctx, user)
		}
		return nil, fmt.Errorf("start attempt: %w", err)
	}

	messages := []Message{text(renderTestStarted(test))}
	return append(messages, questionMessages(test, 0)...), nil
}

func (c *SessionController) handleAnswer(ctx context.Context, user *User, input string) ([]Message, error) {
	if !isAnswerLetter(input) {
		return []Message{text(msgInvalidAnswer)}, nil
	}

	if user.CurrentTest == "" {
		return c.resetSession(ctx, user)
	}

	attempt, err := c.tracker.OpenAttempt(ctx, user.ID, user.CurrentTest)
	if errors.Is(err, ErrResultNotFound) {
		return c.resetSession(ctx, user)
	}
	if err != nil {
		return nil, fmt.Errorf("load attempt: %w", err)
	}

	test, err := c.catalog.ByID(user.CurrentTest)
	if errors.Is(err, ErrTestNotFound) {
		return c.resetSession(ctx, user)
	}
	if err != nil {
		return nil, err
	}

	// An index already past the last question means a finalize was
	// interrupted earlier; skip recording and complete the attempt now.
	if user.CurrentQuestionIndex < len(test.Questions) {
		question := test.Questions[user.CurrentQuestionIndex]
		if err := c.tracker.RecordAnswer(ctx, user, attempt.ID, question.ID, input); err != nil {
			if errors.Is(err, ErrAttemptCompleted) {
				return c.resetSession(ctx, user)
			}
			return nil, fmt.Errorf("record answer: %w", err)
		}
	}

	if user.CurrentQuestionIndex >= len(test.Questions) {
		result, err := c.tracker.Finalize(ctx, user, attempt.ID)
		if err != nil {
			return nil, fmt.Errorf("finalize attempt: %w", err)
		}
		return []Message{
			text(renderResult(result, c.tracker.Passed(result))),
			text(msgWhatNext),
			text(renderMenu()),
		}, nil
	}

	return questionMessages(test, user.CurrentQuestionIndex), nil
}

// resetSession is the self-healing path for a session whose attempt or test
// has gone missing: the user is told and dropped back to the menu.
func (c *SessionController) resetSession(ctx context.Context, user *User) ([]Message, error) {
	user.State = StateMenu
	user.CurrentTest = ""
	user.CurrentQuestionIndex = 0
	if err := c.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	return []Message{text(msgSessionLost), text(renderMenu())}, nil
}

func questionMessages(test *Test, index int) []Message {
	question := test.Questions[index]
	messages := make([]Message, 0, 2)
	if question.HasImage() {
		messages = append(messages, Message{
			ImageURL: question.ImageURL,
			Text:     fmt.Sprintf("Question %d image", index+1),
		})
	}
	return append(messages, text(renderQuestion(question, index+1, len(test.Questions))))
}

// isAnswerLetter reports whether input is a single letter A-D in either case.
// Ordinal digits are accepted by the tracker for other callers but are not
// part of the conversational answer grammar.
func isAnswerLetter(input string) bool {
	if len(input) != 1 {
		return false
	}
	c := input[0]
	return (c >= 'A' && c <= 'D') || (c >= 'a' && c <= 'd')
}

func parseTestNumber(input string, max int) (int, bool) {
	if input == "" {
		return 0, false
	}
	for idx := 0; idx < len(input); idx++ {
		if input[idx] < '0' || input[idx] > '9' {
			return 0, false
		}
	}
	number, err := strconv.Atoi(input)
	if err != nil || number < 1 || number > max {
		return 0, false
	}
	return number, true
}
