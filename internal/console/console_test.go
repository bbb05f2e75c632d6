package console

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"drivetest-bot/internal/content"
	"drivetest-bot/internal/exam"
	"drivetest-bot/internal/exam/sqlite"
)

func newTestController(t *testing.T) *exam.SessionController {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tests := content.Fixture(2, 4)
	catalog, err := exam.NewCatalog(tests, 4)
	require.NoError(t, err)

	tracker := exam.NewTracker(catalog, store.Users, store.Results, exam.DefaultPassingPercentage)
	return exam.NewSessionController(catalog, tracker, store.Users, store.Results, zaptest.NewLogger(t))
}

func TestRunScriptedSession(t *testing.T) {
	controller := newTestController(t)

	in := strings.NewReader("1\n1\nA\nB\nexit\n")
	var out bytes.Buffer
	err := Run(context.Background(), in, &out, controller, Config{UserID: "local", Name: "Alice"})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Driving School Bot")
	assert.Contains(t, output, "Available tests:")
	assert.Contains(t, output, "Test started:")
	assert.Contains(t, output, "Question 1/4")
	assert.Contains(t, output, "Question 2/4")
	// The third seed question carries a sign image.
	assert.Contains(t, output, "[image] assets/signs/stop.png")
	assert.Contains(t, output, "Question 3/4")
}

func TestRunCompletesOnEOF(t *testing.T) {
	controller := newTestController(t)

	// No trailing "exit": the input just ends.
	in := strings.NewReader("2\n")
	var out bytes.Buffer
	err := Run(context.Background(), in, &out, controller, Config{UserID: "local"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "You have not completed any tests yet")
}

func TestRunRequiresUserID(t *testing.T) {
	controller := newTestController(t)

	err := Run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, controller, Config{})
	assert.Error(t, err)
}
