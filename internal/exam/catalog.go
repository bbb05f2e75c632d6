package exam

import "fmt"

// Catalog is the fixed set of tests loaded at startup. Construction validates
// every test up front, so a partially populated test is never queryable.
type Catalog struct {
	tests            []*Test
	byID             map[string]*Test
	questionsPerTest int
}

// NewCatalog builds a catalog preserving load order. Every test must carry
// exactly questionsPerTest questions, each with four options and a correct
// reference resolving to one of them.
func NewCatalog(tests []*Test, questionsPerTest int) (*Catalog, error) {
	if questionsPerTest <= 0 {
		return nil, fmt.Errorf("questions per test must be positive, got %d", questionsPerTest)
	}

	catalog := &Catalog{
		tests:            make([]*Test, 0, len(tests)),
		byID:             make(map[string]*Test, len(tests)),
		questionsPerTest: questionsPerTest,
	}

	for _, test := range tests {
		if test.ID == "" {
			return nil, fmt.Errorf("test %q has no id", test.Title)
		}
		if _, exists := catalog.byID[test.ID]; exists {
			return nil, fmt.Errorf("duplicate test id %q", test.ID)
		}
		if len(test.Questions) != questionsPerTest {
			return nil, fmt.Errorf("test %s has %d questions, want %d", test.ID, len(test.Questions), questionsPerTest)
		}
		for _, question := range test.Questions {
			if len(question.Options) != OptionsPerQuestion {
				return nil, fmt.Errorf("question %s has %d options, want %d", question.ID, len(question.Options), OptionsPerQuestion)
			}
			if NormalizeAnswer(question.Correct) == "" {
				return nil, fmt.Errorf("question %s correct answer %q does not resolve to an option", question.ID, question.Correct)
			}
		}
		catalog.tests = append(catalog.tests, test)
		catalog.byID[test.ID] = test
	}

	return catalog, nil
}

func (c *Catalog) ByID(testID string) (*Test, error) {
	test, ok := c.byID[testID]
	if !ok {
		return nil, fmt.Errorf("catalog: %w: %s", ErrTestNotFound, testID)
	}
	return test, nil
}

// All returns tests in load order.
func (c *Catalog) All() []*Test {
	return c.tests
}

func (c *Catalog) Len() int {
	return len(c.tests)
}

func (c *Catalog) QuestionsPerTest() int {
	return c.questionsPerTest
}

// Question returns the question at the 0-based index within a test.
func (c *Catalog) Question(testID string, index int) (Question, error) {
	test, err := c.ByID(testID)
	if err != nil {
		return Question{}, err
	}
	if index < 0 || index >= len(test.Questions) {
		return Question{}, fmt.Errorf("catalog: %w: test %s index %d", ErrQuestionNotFound, testID, index)
	}
	return test.Questions[index], nil
}
