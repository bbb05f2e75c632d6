package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivetest-bot/internal/exam"
)

func TestFixtureShape(t *testing.T) {
	tests := Fixture(25, 25)
	require.Len(t, tests, 25)

	for _, test := range tests {
		require.Len(t, test.Questions, 25, "test %s", test.ID)
		for _, question := range test.Questions {
			assert.Len(t, question.Options, exam.OptionsPerQuestion, "question %s", question.ID)
			assert.NotEmpty(t, question.Prompt, "question %s", question.ID)
		}
	}

	// The shape must satisfy catalog validation as-is.
	_, err := exam.NewCatalog(tests, 25)
	require.NoError(t, err)
}

func TestFixtureIsDeterministic(t *testing.T) {
	assert.Equal(t, Fixture(5, 6), Fixture(5, 6))
}

func TestFixtureSeedsFirstTest(t *testing.T) {
	tests := Fixture(2, 4)

	first := tests[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "1-1", first.Questions[0].ID)
	assert.Contains(t, first.Questions[0].Prompt, "speed limit")

	// Question 1-3 carries the sign image.
	assert.Equal(t, "assets/signs/stop.png", first.Questions[2].ImageURL)
	assert.Equal(t, "B", first.Questions[2].Correct)

	// Later tests are generated material.
	assert.Empty(t, tests[1].Questions[0].ImageURL)
}

func TestLoadFile(t *testing.T) {
	raw := `{
		"tests": [
			{
				"id": "t1",
				"title": "Road signs",
				"description": "Signs only",
				"questions": [
					{
						"id": "q1",
						"prompt": "What does a red octagon mean?",
						"options": ["Stop", "Yield", "Slow down", "No entry"],
						"correct": "A",
						"image": "assets/q1.png"
					}
				]
			}
		]
	}`
	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	tests, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, tests, 1)

	test := tests[0]
	assert.Equal(t, "t1", test.ID)
	assert.Equal(t, "Road signs", test.Title)
	require.Len(t, test.Questions, 1)
	assert.Equal(t, "q1", test.Questions[0].ID)
	assert.Equal(t, []string{"Stop", "Yield", "Slow down", "No entry"}, test.Questions[0].Options)
	assert.Equal(t, "assets/q1.png", test.Questions[0].ImageURL)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestLoadDispatch(t *testing.T) {
	tests, err := Load("", 3, 2)
	require.NoError(t, err)
	assert.Len(t, tests, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), 3, 2)
	assert.Error(t, err)
}
