package exam

import (
	"fmt"
	"strings"
)

// Fixed reply texts. The channel adapter delivers them verbatim.
const (
	msgInvalidOption = "Invalid option. Please reply with 1, 2, or 3."
	msgInvalidAnswer = "Please reply with A, B, C, or D only."
	msgSessionLost   = "Test session not found. Starting over..."
	msgGenericError  = "Sorry, something went wrong. Please try again later."
	msgNoResults     = "You have not completed any tests yet. Start by choosing option 1."
	msgWhatNext      = "What would you like to do next? (1, 2, or 3)"
)

func renderMenu() string {
	var b strings.Builder
	b.WriteString("Driving School Bot\n\n")
	b.WriteString("Welcome! Choose an option:\n\n")
	b.WriteString("1 - Start a test\n")
	b.WriteString("2 - View my results\n")
	b.WriteString("3 - Help\n\n")
	b.WriteString("Type the number to continue.")
	return b.String()
}

func renderHelp(totalTests, questionsPerTest, passingPercentage int) string {
	var b strings.Builder
	b.WriteString("How to use the bot:\n\n")
	fmt.Fprintf(&b, "1. Start a test: choose from tests 1-%d, each with %d questions\n", totalTests, questionsPerTest)
	b.WriteString("2. Answer questions: type the letter (A, B, C, or D)\n")
	b.WriteString("3. View results: see your score and percentage\n\n")
	fmt.Fprintf(&b, "You need %d%% to pass. Some questions have images. Take your time!", passingPercentage)
	return b.String()
}

func renderTestList(tests []*Test) string {
	var b strings.Builder
	b.WriteString("Available tests:\n\n")
	for _, test := range tests {
		fmt.Fprintf(&b, "%s. %s\n", test.ID, test.Title)
	}
	b.WriteString("\nType the test number to start.")
	return b.String()
}

func renderTestStarted(test *Test) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Test started: %s\n\n", test.Title)
	fmt.Fprintf(&b, "Test ID: %s\n", test.ID)
	fmt.Fprintf(&b, "Total questions: %d\n\n", len(test.Questions))
	b.WriteString("To answer, type the letter (A, B, C, or D). Let's begin!")
	return b.String()
}

func renderQuestion(question Question, number, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d/%d\n\n", number, total)
	b.WriteString(question.Prompt)
	b.WriteString("\n\n")
	for idx, option := range question.Options {
		fmt.Fprintf(&b, "%c. %s\n", 'A'+idx, option)
	}
	b.WriteString("\nReply with: A, B, C, or D")
	return b.String()
}

func renderResult(result *Result, passed bool) string {
	status := "FAILED"
	closing := "Keep practicing!"
	if passed {
		status = "PASSED"
		closing = "Great job!"
	}

	var b strings.Builder
	b.WriteString("TEST RESULTS\n\n")
	b.WriteString(status)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Score: %d/%d\n", result.Score, result.Total)
	fmt.Fprintf(&b, "Percentage: %d%%\n\n", result.Percentage())
	fmt.Fprintf(&b, "Test ID: %s\n", result.TestID)
	fmt.Fprintf(&b, "Date: %s\n\n", result.CompletedAt.Format("02 Jan 2006"))
	b.WriteString(closing)
	return b.String()
}

func renderHistory(results []*Result, passingPercentage int) string {
	var b strings.Builder
	b.WriteString("Your test results:\n\n")
	for idx, result := range results {
		status := "Failed"
		if result.Percentage() >= passingPercentage {
			status = "Passed"
		}
		fmt.Fprintf(&b, "%d. Test %s\n", idx+1, result.TestID)
		fmt.Fprintf(&b, "   Score: %d/%d\n", result.Score, result.Total)
		fmt.Fprintf(&b, "   Percentage: %d%%\n", result.Percentage())
		fmt.Fprintf(&b, "   Status: %s\n", status)
		fmt.Fprintf(&b, "   Date: %s\n\n", result.CompletedAt.Format("02 Jan 2006"))
	}
	return strings.TrimRight(b.String(), "\n")
}
