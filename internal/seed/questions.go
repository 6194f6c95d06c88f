package seed

import (
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"gorm.io/datatypes"
)

type interestItem struct {
	number   int
	text     string
	category string
}

// riasecItems is the 42 statement interest inventory.
var riasecItems = []interestItem{
	{1, "I like to work on cars", "R"},
	{2, "I like to do puzzles", "I"},
	{3, "I am good at working independently", "A"},
	{4, "I like to work in teams", "S"},
	{5, "I am an ambitious person, I set goals for myself", "E"},
	{6, "I like to organize things, (files, desks/offices)", "C"},
	{7, "I like to build things", "R"},
	{8, "I like to read about art and music", "I"},
	{9, "I like to have clear instructions to follow", "A"},
	{10, "I like to try to influence or persuade people", "S"},
	{11, "I like to do experiments", "E"},
	{12, "I like to teach or train people", "C"},
	{13, "I like trying to help people solve their problems", "S"},
	{14, "I like to take care of animals", "R"},
	{15, "I wouldn't mind working 8 hours per day in an office", "C"},
	{16, "I like selling things", "E"},
	{17, "I enjoy creative writing", "A"},
	{18, "I enjoy science", "I"},
	{19, "I am quick to take on new responsibilities", "E"},
	{20, "I am interested in healing people", "S"},
	{21, "I enjoy trying to figure out how things work", "I"},
	{22, "I like putting things together or assembling things", "R"},
	{23, "I am a creative person", "A"},
	{24, "I pay attention to details", "C"},
	{25, "I like to do filing or typing", "C"},
	{26, "I like to analyze things (problems/situations)", "I"},
	{27, "I like to play instruments or sing", "A"},
	{28, "I enjoy learning about other cultures", "S"},
	{29, "I would like to start my own business", "E"},
	{30, "I like to cook", "R"},
	{31, "I like acting in plays", "A"},
	{32, "I am a practical person", "R"},
	{33, "I like working with numbers or charts", "C"},
	{34, "I like to get into discussions about issues", "S"},
	{35, "I am good at keeping records of my work", "C"},
	{36, "I like to lead", "E"},
	{37, "I like working outdoors", "R"},
	{38, "I would like to work in an office", "C"},
	{39, "I'm good at math", "I"},
	{40, "I like helping people", "S"},
	{41, "I like to draw", "A"},
	{42, "I like to give speeches", "E"},
}

var wellbeingItems = []string{
	"I've been feeling optimistic about the future",
	"I've been feeling useful",
	"I've been feeling relaxed",
	"I've been feeling interested in other people",
	"I've had energy to spare",
	"I've been dealing with problems well",
	"I've been thinking clearly",
	"I've been feeling good about myself",
	"I've been feeling close to other people",
	"I've been feeling confident",
	"I've been able to make up my own mind about things",
	"I've been feeling loved",
	"I've been interested in new things",
	"I've been feeling cheerful",
}

var personalityItems = []string{
	"I enjoy meeting new people",
	"I prefer planning ahead to being spontaneous",
	"I feel comfortable taking the lead in group situations",
}

type choiceItem struct {
	text    string
	options []string
	answer  string
}

var aptitudeItems = []choiceItem{
	{"If 3x + 5 = 20, what is x?", []string{"3", "5", "7", "15"}, "5"},
	{"What comes next in the series 2, 6, 12, 20, 30, ...?", []string{"36", "40", "42", "48"}, "42"},
	{"All managers are graduates and some graduates are engineers. Which statement must be true?", []string{
		"All engineers are managers",
		"Some managers may be engineers",
		"No manager is an engineer",
		"All graduates are managers",
	}, "Some managers may be engineers"},
}

// Questions returns the default question bank.
func Questions() []*models.Question {
	var questions []*models.Question

	for _, item := range riasecItems {
		category := item.category
		questions = append(questions, &models.Question{
			QuestionNumber: item.number,
			Text:           item.text,
			Test:           scoring.TestRIASEC,
			Category:       &category,
		})
	}

	for i, text := range wellbeingItems {
		questions = append(questions, &models.Question{
			QuestionNumber: i + 1,
			Text:           text,
			Test:           scoring.TestWellbeing,
		})
	}

	for i, item := range aptitudeItems {
		answer := item.answer
		questions = append(questions, &models.Question{
			QuestionNumber: i + 1,
			Text:           item.text,
			Test:           scoring.TestAptitude,
			Options:        datatypes.JSONSlice[string](item.options),
			CorrectAnswer:  &answer,
		})
	}

	for i, text := range personalityItems {
		questions = append(questions, &models.Question{
			QuestionNumber: i + 1,
			Text:           text,
			Test:           scoring.TestPersonality,
		})
	}

	return questions
}
