package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BOT_TOKEN", "DB_PATH", "CONTENT_PATH", "LOG_LEVEL",
		"TOTAL_TESTS", "QUESTIONS_PER_TEST", "PASSING_PERCENTAGE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.BotToken)
	assert.Equal(t, "./data/drivetest.db", cfg.DatabasePath)
	assert.Empty(t, cfg.ContentPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 25, cfg.TotalTests)
	assert.Equal(t, 25, cfg.QuestionsPerTest)
	assert.Equal(t, 75, cfg.PassingPercentage)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DB_PATH", "/tmp/bot.db")
	t.Setenv("CONTENT_PATH", "/tmp/content.json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TOTAL_TESTS", "10")
	t.Setenv("QUESTIONS_PER_TEST", "5")
	t.Setenv("PASSING_PERCENTAGE", "80")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "/tmp/bot.db", cfg.DatabasePath)
	assert.Equal(t, "/tmp/content.json", cfg.ContentPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.TotalTests)
	assert.Equal(t, 5, cfg.QuestionsPerTest)
	assert.Equal(t, 80, cfg.PassingPercentage)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"TOTAL_TESTS", "zero"},
		{"TOTAL_TESTS", "0"},
		{"QUESTIONS_PER_TEST", "-5"},
		{"PASSING_PERCENTAGE", "101"},
		{"PASSING_PERCENTAGE", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
