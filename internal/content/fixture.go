// Package content supplies catalog test data: a deterministic generated
// fixture for development and tests, and a JSON file loader for authored
// content. Catalog validation happens in the exam package, not here.
package content

import (
	"fmt"
	"strconv"

	"drivetest-bot/internal/exam"
)

var fixtureTopics = []string{
	"General Road Rules",
	"Road Signs",
	"Right of Way",
	"Speed Limits",
	"Parking Rules",
	"Vehicle Safety",
	"Pedestrians and Cyclists",
	"Night Driving",
	"Weather Conditions",
	"Emergency Procedures",
}

// A few authored questions seed the first test so development output reads
// like real material; everything past them is generated.
var seedQuestions = []exam.Question{
	{
		ID:      "1-1",
		Prompt:  "What is the speed limit in residential areas?",
		Options: []string{"40 km/h", "50 km/h", "60 km/h", "80 km/h"},
		Correct: "A",
	},
	{
		ID:      "1-2",
		Prompt:  "When should you use your hazard lights?",
		Options: []string{"When parked illegally", "When stationary and in distress", "When turning", "When reversing"},
		Correct: "B",
	},
	{
		ID:       "1-3",
		Prompt:   "What does this road sign mean?",
		Options:  []string{"No entry", "Stop", "Give way", "One way"},
		Correct:  "B",
		ImageURL: "assets/signs/stop.png",
	},
	{
		ID:      "1-4",
		Prompt:  "How far should you stay behind another vehicle?",
		Options: []string{"1 car length", "2 seconds stopping distance", "10 meters", "5 meters"},
		Correct: "B",
	},
}

// Fixture builds a fully deterministic catalog: the same arguments always
// yield identical tests, prompts, and correct answers.
func Fixture(totalTests, questionsPerTest int) []*exam.Test {
	tests := make([]*exam.Test, 0, totalTests)

	for testNum := 1; testNum <= totalTests; testNum++ {
		topic := fixtureTopics[(testNum-1)%len(fixtureTopics)]
		test := &exam.Test{
			ID:          strconv.Itoa(testNum),
			Title:       fmt.Sprintf("Test %d: %s", testNum, topic),
			Description: fmt.Sprintf("Driving Theory Test %d", testNum),
			Questions:   make([]exam.Question, 0, questionsPerTest),
		}

		for questionNum := 1; questionNum <= questionsPerTest; questionNum++ {
			if testNum == 1 && questionNum <= len(seedQuestions) {
				test.Questions = append(test.Questions, seedQuestions[questionNum-1])
				continue
			}
			test.Questions = append(test.Questions, generatedQuestion(testNum, questionNum, topic))
		}

		tests = append(tests, test)
	}

	return tests
}

func generatedQuestion(testNum, questionNum int, topic string) exam.Question {
	correct := (testNum + questionNum) % exam.OptionsPerQuestion
	options := make([]string, exam.OptionsPerQuestion)
	for idx := range options {
		kind := "Incorrect"
		if idx == correct {
			kind = "Correct"
		}
		options[idx] = fmt.Sprintf("%s choice %c for question %d.%d", kind, 'A'+idx, testNum, questionNum)
	}

	return exam.Question{
		ID:      fmt.Sprintf("%d-%d", testNum, questionNum),
		Prompt:  fmt.Sprintf("%s practice question %d of test %d: which option is correct?", topic, questionNum, testNum),
		Options: options,
		Correct: string(rune('A' + correct)),
	}
}
