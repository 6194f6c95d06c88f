package scoring

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Question is the engine's view of a stored question.
type Question struct {
	ID            string
	Number        int
	Test          string
	Category      Category
	Options       []string
	CorrectAnswer string
}

// Answers maps question id to the decoded JSON response value.
type Answers map[string]any

// RankedCategory is one entry of an interest ranking.
type RankedCategory struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Score    int      `json:"score"`
}

type InterestResult struct {
	Scores           Scores           `json:"scores"`
	TopThree         []RankedCategory `json:"top_three"`
	Primary          RankedCategory   `json:"primary"`
	SuggestedCareers []string         `json:"suggested_careers"`
}

type ScaleResult struct {
	Score          int    `json:"score"`
	QuestionCount  int    `json:"question_count"`
	Form           Form   `json:"form"`
	Interpretation string `json:"interpretation"`
	Feedback       string `json:"feedback"`
}

type ChoiceResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Result is produced once per completed submission. Exactly one of
// Interest, Scale or Choice is set, matching Mode.
type Result struct {
	Test        string          `json:"test"`
	Mode        Mode            `json:"mode"`
	Interest    *InterestResult `json:"interest,omitempty"`
	Scale       *ScaleResult    `json:"scale,omitempty"`
	Choice      *ChoiceResult   `json:"choice,omitempty"`
	CompletedAt time.Time       `json:"completed_at"`
}

// Engine scores submissions. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Definition returns the registered definition for test.
func (e *Engine) Definition(test string) (TestDefinition, error) {
	def, ok := e.cfg.Tests[test]
	if !ok {
		return TestDefinition{}, unknownTest(test)
	}
	return def, nil
}

// Definitions returns all registered tests sorted by id.
func (e *Engine) Definitions() []TestDefinition {
	defs := make([]TestDefinition, 0, len(e.cfg.Tests))
	for _, def := range e.cfg.Tests {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// Score validates completeness and aggregates answers for one test.
func (e *Engine) Score(test string, questions []Question, answers Answers) (*Result, error) {
	def, err := e.Definition(test)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := &Result{Test: test, Mode: def.Mode}
	switch def.Mode {
	case ModeInterest:
		result.Interest, err = e.scoreInterest(test, def, questions, answers)
	case ModeSingleScale:
		result.Scale, err = e.scoreScale(test, def, questions, answers)
	case ModeMultipleChoice:
		result.Choice, err = e.scoreChoice(test, questions, answers)
	default:
		return nil, unknownTest(test)
	}
	if err != nil {
		return nil, err
	}
	result.CompletedAt = e.cfg.Now()
	return result, nil
}

// responseValues parses one answer per question on the test's response scale.
func (e *Engine) responseValues(test string, def TestDefinition, questions []Question, answers Answers) ([]int, error) {
	parse := func(v any) (int, bool) { return parseLikert(v, e.cfg.LikertMin, e.cfg.LikertMax) }
	if def.Scale() == ResponseYesNo {
		parse = parseYesNo
	}

	values := make([]int, len(questions))
	var missing []string
	for i, q := range questions {
		v, ok := parse(answers[q.ID])
		if !ok {
			missing = append(missing, q.ID)
			continue
		}
		values[i] = v
	}
	if len(missing) > 0 {
		return nil, &IncompleteSubmissionError{Test: test, Missing: missing}
	}
	return values, nil
}

func (e *Engine) scoreInterest(test string, def TestDefinition, questions []Question, answers Answers) (*InterestResult, error) {
	for _, q := range questions {
		if !q.Category.Valid() {
			return nil, invalidQuestion(q, "interest question has no valid category")
		}
	}
	values, err := e.responseValues(test, def, questions, answers)
	if err != nil {
		return nil, err
	}

	var scores Scores
	for i, q := range questions {
		scores.add(q.Category, values[i])
	}

	ranked := make([]RankedCategory, 0, len(Categories))
	for _, c := range Categories {
		ranked = append(ranked, RankedCategory{Category: c, Label: c.DisplayName(), Score: scores.Get(c)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	primary := ranked[0]
	careers := append([]string{}, e.cfg.Careers[primary.Category]...)

	return &InterestResult{
		Scores:           scores,
		TopThree:         ranked[:3],
		Primary:          primary,
		SuggestedCareers: careers,
	}, nil
}

func (e *Engine) scoreScale(test string, def TestDefinition, questions []Question, answers Answers) (*ScaleResult, error) {
	values, err := e.responseValues(test, def, questions, answers)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, v := range values {
		total += v
	}

	form, bands := FormShort, def.Bands.Short
	if len(questions) >= e.cfg.LongFormThreshold {
		form, bands = FormFull, def.Bands.Full
	}
	band := bands.Lookup(total)

	return &ScaleResult{
		Score:          total,
		QuestionCount:  len(questions),
		Form:           form,
		Interpretation: band.Label,
		Feedback:       band.Feedback,
	}, nil
}

func (e *Engine) scoreChoice(test string, questions []Question, answers Answers) (*ChoiceResult, error) {
	for _, q := range questions {
		if q.CorrectAnswer == "" {
			return nil, invalidQuestion(q, "multiple choice question has no correct answer")
		}
	}

	var missing []string
	correct := 0
	for _, q := range questions {
		selected, ok := parseChoice(answers[q.ID], q.Options)
		if !ok {
			missing = append(missing, q.ID)
			continue
		}
		if selected == q.CorrectAnswer {
			correct++
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteSubmissionError{Test: test, Missing: missing}
	}

	return &ChoiceResult{Correct: correct, Total: len(questions)}, nil
}

// parseLikert converts a decoded JSON value into an integer within [min, max].
// Booleans are rejected; they belong to yes/no tests.
func parseLikert(v any, min, max int) (int, bool) {
	if _, isBool := v.(bool); isBool {
		return 0, false
	}
	return parseInt(v, min, max)
}

// parseYesNo accepts true/false or the numbers 0 and 1.
func parseYesNo(v any) (int, bool) {
	if b, isBool := v.(bool); isBool {
		if b {
			return 1, true
		}
		return 0, true
	}
	return parseInt(v, 0, 1)
}

func parseInt(v any, min, max int) (int, bool) {
	var n int
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		n = int(t)
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, false
		}
		n = int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n < min || n > max {
		return 0, false
	}
	return n, true
}

// parseChoice accepts a non-empty string that is one of options, or any
// non-empty string when the question declares no options.
func parseChoice(v any, options []string) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	if len(options) == 0 {
		return s, true
	}
	for _, o := range options {
		if o == s {
			return s, true
		}
	}
	return "", false
}
