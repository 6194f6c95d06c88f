package scoring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIncompleteSubmission = errors.New("incomplete submission")
	ErrUnknownTestType      = errors.New("unknown test type")
	ErrInvalidQuestion      = errors.New("invalid question")
	ErrNoQuestions          = errors.New("test has no questions")
	ErrInvalidConfig        = errors.New("invalid scoring configuration")
)

// IncompleteSubmissionError lists the question ids that had no usable answer.
// Unparseable values are reported the same way as absent ones.
type IncompleteSubmissionError struct {
	Test    string   `json:"test"`
	Missing []string `json:"missing"`
}

func (e *IncompleteSubmissionError) Error() string {
	if len(e.Missing) <= 3 {
		return fmt.Sprintf("incomplete submission for %s: missing answers for %s", e.Test, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("incomplete submission for %s: %d answers missing", e.Test, len(e.Missing))
}

func (e *IncompleteSubmissionError) Is(target error) bool {
	return target == ErrIncompleteSubmission
}

func unknownTest(test string) error {
	return fmt.Errorf("%w: %q", ErrUnknownTestType, test)
}

func invalidQuestion(q Question, reason string) error {
	return fmt.Errorf("%w %s (test %s): %s", ErrInvalidQuestion, q.ID, q.Test, reason)
}
