package content

import (
	"encoding/json"
	"fmt"
	"os"

	"drivetest-bot/internal/exam"
)

type testFile struct {
	Tests []fileTest `json:"tests"`
}

type fileTest struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []fileQuestion `json:"questions"`
}

type fileQuestion struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
	Image   string   `json:"image,omitempty"`
}

// LoadFile reads an authored catalog from a JSON file.
func LoadFile(path string) ([]*exam.Test, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}

	var parsed testFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse content file %s: %w", path, err)
	}

	tests := make([]*exam.Test, 0, len(parsed.Tests))
	for _, entry := range parsed.Tests {
		test := &exam.Test{
			ID:          entry.ID,
			Title:       entry.Title,
			Description: entry.Description,
			Questions:   make([]exam.Question, 0, len(entry.Questions)),
		}
		for _, question := range entry.Questions {
			test.Questions = append(test.Questions, exam.Question{
				ID:       question.ID,
				Prompt:   question.Prompt,
				Options:  question.Options,
				Correct:  question.Correct,
				ImageURL: question.Image,
			})
		}
		tests = append(tests, test)
	}
	return tests, nil
}

// Load returns the authored catalog at path, or the generated fixture when
// path is empty.
func Load(path string, totalTests, questionsPerTest int) ([]*exam.Test, error) {
	if path == "" {
		return Fixture(totalTests, questionsPerTest), nil
	}
	return LoadFile(path)
}
