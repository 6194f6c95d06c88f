package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return fixedNow }
	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	return engine
}

func riasecQuestions(perCategory int) []Question {
	var qs []Question
	n := 1
	for i := 0; i < perCategory; i++ {
		for _, c := range Categories {
			qs = append(qs, Question{ID: fmt.Sprintf("q%d", n), Number: n, Test: TestRIASEC, Category: c})
			n++
		}
	}
	return qs
}

func scaleQuestions(test string, n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{ID: fmt.Sprintf("s%d", i+1), Number: i + 1, Test: test}
	}
	return qs
}

func uniformAnswers(qs []Question, v any) Answers {
	answers := Answers{}
	for _, q := range qs {
		answers[q.ID] = v
	}
	return answers
}

func TestScore_InterestAllFive(t *testing.T) {
	engine := newTestEngine(t)
	qs := riasecQuestions(1)

	result, err := engine.Score(TestRIASEC, qs, uniformAnswers(qs, float64(5)))
	require.NoError(t, err)
	require.NotNil(t, result.Interest)

	assert.Equal(t, ModeInterest, result.Mode)
	assert.Equal(t, Scores{R: 5, I: 5, A: 5, S: 5, E: 5, C: 5}, result.Interest.Scores)
	require.Len(t, result.Interest.TopThree, 3)
	for _, entry := range result.Interest.TopThree {
		assert.Equal(t, 5, entry.Score)
	}
	assert.Equal(t, []Category{Realistic, Investigative, Artistic},
		[]Category{result.Interest.TopThree[0].Category, result.Interest.TopThree[1].Category, result.Interest.TopThree[2].Category})
	assert.Equal(t, Realistic, result.Interest.Primary.Category)
	assert.Equal(t, "R - Realistic", result.Interest.Primary.Label)
	assert.Equal(t, DefaultCareers[Realistic], result.Interest.SuggestedCareers)
	assert.Equal(t, fixedNow, result.CompletedAt)
}

func TestScore_InterestTieBreakUsesCanonicalOrder(t *testing.T) {
	engine := newTestEngine(t)
	qs := riasecQuestions(1)
	answers := Answers{
		"q1": 2, // R
		"q2": 3, // I
		"q3": 4, // A
		"q4": 4, // S
		"q5": 1, // E
		"q6": 3, // C
	}

	result, err := engine.Score(TestRIASEC, qs, answers)
	require.NoError(t, err)

	top := result.Interest.TopThree
	assert.Equal(t, Artistic, top[0].Category)
	assert.Equal(t, Social, top[1].Category)
	assert.Equal(t, Investigative, top[2].Category, "I and C tie at 3, I comes first")
	assert.Equal(t, "A - Artistic", result.Interest.Primary.Label)
	assert.Equal(t, DefaultCareers[Artistic], result.Interest.SuggestedCareers)
}

func TestScore_InterestIsAdditive(t *testing.T) {
	engine := newTestEngine(t)
	qs := riasecQuestions(2)
	answers := uniformAnswers(qs, 1)
	// two R questions: q1 and q7
	answers["q1"] = 5
	answers["q7"] = 3

	result, err := engine.Score(TestRIASEC, qs, answers)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Interest.Scores.R)
	assert.Equal(t, 2, result.Interest.Scores.C)
}

func TestScore_InterestProperties(t *testing.T) {
	engine := newTestEngine(t)
	qs := riasecQuestions(7)
	rng := rand.New(rand.NewSource(42))

	canonical := map[Category]int{}
	for i, c := range Categories {
		canonical[c] = i
	}

	for round := 0; round < 200; round++ {
		answers := Answers{}
		sum := 0
		for _, q := range qs {
			v := rng.Intn(5) + 1
			answers[q.ID] = v
			sum += v
		}

		result, err := engine.Score(TestRIASEC, qs, answers)
		require.NoError(t, err)

		assert.Equal(t, sum, result.Interest.Scores.Total(), "counters must conserve the answer total")

		top := result.Interest.TopThree
		require.Len(t, top, 3)
		for i := 1; i < len(top); i++ {
			prev, cur := top[i-1], top[i]
			require.GreaterOrEqual(t, prev.Score, cur.Score)
			if prev.Score == cur.Score {
				require.Less(t, canonical[prev.Category], canonical[cur.Category])
			}
		}
		assert.Equal(t, top[0], result.Interest.Primary)
	}
}

func TestScore_InterestMissingCareerEntry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Careers = map[Category][]string{Social: {"Counseling"}}
	engine, err := NewEngine(cfg)
	require.NoError(t, err)

	qs := riasecQuestions(1)
	result, err := engine.Score(TestRIASEC, qs, uniformAnswers(qs, 5))
	require.NoError(t, err)
	assert.NotNil(t, result.Interest.SuggestedCareers)
	assert.Empty(t, result.Interest.SuggestedCareers)
}

func TestScore_InterestRejectsUncategorisedQuestion(t *testing.T) {
	engine := newTestEngine(t)
	qs := riasecQuestions(1)
	qs[2].Category = ""

	_, err := engine.Score(TestRIASEC, qs, uniformAnswers(qs, 3))
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestScore_IncompleteSubmission(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name    string
		test    string
		qs      []Question
		mutate  func(Answers)
		missing []string
	}{
		{
			name:    "interest missing one",
			test:    TestRIASEC,
			qs:      riasecQuestions(1),
			mutate:  func(a Answers) { delete(a, "q4") },
			missing: []string{"q4"},
		},
		{
			name:    "interest out of range",
			test:    TestRIASEC,
			qs:      riasecQuestions(1),
			mutate:  func(a Answers) { a["q1"] = 6 },
			missing: []string{"q1"},
		},
		{
			name:    "interest unparseable",
			test:    TestRIASEC,
			qs:      riasecQuestions(1),
			mutate:  func(a Answers) { a["q2"] = "agree"; a["q3"] = 2.5 },
			missing: []string{"q2", "q3"},
		},
		{
			name:    "scale missing one",
			test:    TestWellbeing,
			qs:      scaleQuestions(TestWellbeing, 7),
			mutate:  func(a Answers) { delete(a, "s7") },
			missing: []string{"s7"},
		},
		{
			name:    "scale null value",
			test:    TestWellbeing,
			qs:      scaleQuestions(TestWellbeing, 7),
			mutate:  func(a Answers) { a["s1"] = nil },
			missing: []string{"s1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := uniformAnswers(tt.qs, 3)
			tt.mutate(answers)

			result, err := engine.Score(tt.test, tt.qs, answers)
			assert.Nil(t, result)
			require.ErrorIs(t, err, ErrIncompleteSubmission)

			var incomplete *IncompleteSubmissionError
			require.True(t, errors.As(err, &incomplete))
			assert.Equal(t, tt.missing, incomplete.Missing)
			assert.Equal(t, tt.test, incomplete.Test)
		})
	}
}

func TestScore_UnknownTestType(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Score("EI", scaleQuestions("EI", 3), Answers{})
	assert.ErrorIs(t, err, ErrUnknownTestType)
}

func TestScore_NoQuestions(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Score(TestAptitude, nil, Answers{})
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestScore_SingleScaleShortForm(t *testing.T) {
	engine := newTestEngine(t)
	qs := scaleQuestions(TestWellbeing, 7)

	result, err := engine.Score(TestWellbeing, qs, uniformAnswers(qs, 3))
	require.NoError(t, err)
	require.NotNil(t, result.Scale)

	assert.Equal(t, 21, result.Scale.Score)
	assert.Equal(t, 7, result.Scale.QuestionCount)
	assert.Equal(t, FormShort, result.Scale.Form)
	assert.Equal(t, "Moderate wellbeing", result.Scale.Interpretation)
	assert.NotEmpty(t, result.Scale.Feedback)
	assert.Nil(t, result.Interest)
}

func TestScore_SingleScaleFullForm(t *testing.T) {
	engine := newTestEngine(t)
	qs := scaleQuestions(TestWellbeing, 14)

	result, err := engine.Score(TestWellbeing, qs, uniformAnswers(qs, "5"))
	require.NoError(t, err)
	assert.Equal(t, 70, result.Scale.Score)
	assert.Equal(t, FormFull, result.Scale.Form)
	assert.Equal(t, "High wellbeing", result.Scale.Interpretation)
}

func TestScore_SingleScaleBandingIsExhaustive(t *testing.T) {
	for _, tc := range []struct {
		name  string
		bands ScaleBands
	}{
		{"wellbeing", WellbeingBands},
		{"personality", PersonalityBands},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.bands.Short.Validate())
			require.NoError(t, tc.bands.Full.Validate())

			for _, set := range []BandSet{tc.bands.Short, tc.bands.Full} {
				for n := 1; n <= 40; n++ {
					for total := n; total <= 5*n; total++ {
						matches := 0
						band := set.Lookup(total)
						for _, b := range set {
							if b == band {
								matches++
							}
						}
						require.Equal(t, 1, matches, "n=%d total=%d", n, total)
					}
				}
				// reference ranges are covered without clamping
				for total := set[0].Min; total <= set[len(set)-1].Max; total++ {
					band := set.Lookup(total)
					require.True(t, total >= band.Min && total <= band.Max, "total %d", total)
				}
			}
		})
	}
}

func TestBandSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bands   BandSet
		wantErr bool
	}{
		{name: "contiguous", bands: BandSet{{Min: 1, Max: 3}, {Min: 4, Max: 9}}},
		{name: "empty", bands: BandSet{}, wantErr: true},
		{name: "gap", bands: BandSet{{Min: 1, Max: 3}, {Min: 5, Max: 9}}, wantErr: true},
		{name: "overlap", bands: BandSet{{Min: 1, Max: 4}, {Min: 4, Max: 9}}, wantErr: true},
		{name: "inverted", bands: BandSet{{Min: 5, Max: 1}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bands.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewEngine_RejectsScaleWithoutBands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tests["Mood"] = TestDefinition{ID: "Mood", Mode: ModeSingleScale}
	_, err := NewEngine(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func aptitudeQuestions() []Question {
	return []Question{
		{ID: "a1", Number: 1, Test: TestAptitude, Options: []string{"2", "4", "6"}, CorrectAnswer: "4"},
		{ID: "a2", Number: 2, Test: TestAptitude, Options: []string{"Circle", "Square"}, CorrectAnswer: "Square"},
		{ID: "a3", Number: 3, Test: TestAptitude, Options: []string{"11", "13", "15"}, CorrectAnswer: "13"},
	}
}

func TestScore_MultipleChoice(t *testing.T) {
	engine := newTestEngine(t)
	qs := aptitudeQuestions()

	result, err := engine.Score(TestAptitude, qs, Answers{"a1": "4", "a2": "Circle", "a3": "13"})
	require.NoError(t, err)
	require.NotNil(t, result.Choice)
	assert.Equal(t, 2, result.Choice.Correct)
	assert.Equal(t, 3, result.Choice.Total)
}

func TestScore_MultipleChoiceOrderIndependent(t *testing.T) {
	engine := newTestEngine(t)
	qs := aptitudeQuestions()
	answers := Answers{"a1": "4", "a2": "Circle", "a3": "13"}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		shuffled := append([]Question{}, qs...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		result, err := engine.Score(TestAptitude, shuffled, answers)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Choice.Correct)
	}
}

func TestScore_MultipleChoiceRejectsUnknownOption(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Score(TestAptitude, aptitudeQuestions(), Answers{"a1": "4", "a2": "Triangle", "a3": 13})

	var incomplete *IncompleteSubmissionError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"a2", "a3"}, incomplete.Missing)
}

func TestParseLikert(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{float64(4), 4, true},
		{3, 3, true},
		{json.Number("2"), 2, true},
		{" 5 ", 5, true},
		{true, 0, false},
		{false, 0, false},
		{float64(4.5), 0, false},
		{"five", 0, false},
		{0, 0, false},
		{6, 0, false},
		{nil, 0, false},
		{[]any{1}, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLikert(tt.in, 1, 5)
		assert.Equal(t, tt.ok, ok, "input %#v", tt.in)
		assert.Equal(t, tt.want, got, "input %#v", tt.in)
	}
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{true, 1, true},
		{false, 0, true},
		{float64(1), 1, true},
		{0, 0, true},
		{"1", 1, true},
		{2, 0, false},
		{"yes", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseYesNo(tt.in)
		assert.Equal(t, tt.ok, ok, "input %#v", tt.in)
		assert.Equal(t, tt.want, got, "input %#v", tt.in)
	}
}

func TestScore_YesNoInterest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tests["InterestCheck"] = TestDefinition{ID: "InterestCheck", Mode: ModeInterest, Response: ResponseYesNo}
	engine, err := NewEngine(cfg)
	require.NoError(t, err)

	qs := riasecQuestions(2)
	answers := uniformAnswers(qs, false)
	answers["q2"] = true       // I
	answers["q8"] = true       // I
	answers["q4"] = float64(1) // S

	result, err := engine.Score("InterestCheck", qs, answers)
	require.NoError(t, err)
	assert.Equal(t, Scores{I: 2, S: 1}, result.Interest.Scores)
	assert.Equal(t, Investigative, result.Interest.Primary.Category)

	// Likert tests never treat booleans as answers.
	likert, err := newTestEngine(t).Score(TestRIASEC, qs, answers)
	assert.Nil(t, likert)
	var incomplete *IncompleteSubmissionError
	require.ErrorAs(t, err, &incomplete)
	assert.Len(t, incomplete.Missing, len(qs)-1)
	assert.NotContains(t, incomplete.Missing, "q4")
}

func TestNewEngine_RejectsUnknownResponseScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tests["Poll"] = TestDefinition{ID: "Poll", Mode: ModeInterest, Response: "stars"}
	_, err := NewEngine(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCategory(t *testing.T) {
	c, ok := ParseCategory(" s ")
	require.True(t, ok)
	assert.Equal(t, Social, c)
	assert.Equal(t, "S - Social", c.DisplayName())

	_, ok = ParseCategory("X")
	assert.False(t, ok)
}
