package scoring

import "strings"

// Category is one of the six RIASEC interest codes.
type Category string

const (
	Realistic     Category = "R"
	Investigative Category = "I"
	Artistic      Category = "A"
	Social        Category = "S"
	Enterprising  Category = "E"
	Conventional  Category = "C"
)

// Categories lists the alphabet in canonical order. Ties in a ranking are
// broken by position in this slice.
var Categories = []Category{Realistic, Investigative, Artistic, Social, Enterprising, Conventional}

var categoryLabels = map[Category]string{
	Realistic:     "Realistic",
	Investigative: "Investigative",
	Artistic:      "Artistic",
	Social:        "Social",
	Enterprising:  "Enterprising",
	Conventional:  "Conventional",
}

// ParseCategory accepts a code in any case, surrounding spaces ignored.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", false
	}
	return c, true
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the long name, e.g. "Realistic".
func (c Category) Label() string {
	return categoryLabels[c]
}

// DisplayName returns the code with its label, e.g. "R - Realistic".
func (c Category) DisplayName() string {
	if !c.Valid() {
		return string(c)
	}
	return string(c) + " - " + c.Label()
}

// Scores holds the six interest accumulators.
type Scores struct {
	R int `json:"R"`
	I int `json:"I"`
	A int `json:"A"`
	S int `json:"S"`
	E int `json:"E"`
	C int `json:"C"`
}

func (s *Scores) Get(c Category) int {
	switch c {
	case Realistic:
		return s.R
	case Investigative:
		return s.I
	case Artistic:
		return s.A
	case Social:
		return s.S
	case Enterprising:
		return s.E
	case Conventional:
		return s.C
	}
	return 0
}

func (s *Scores) add(c Category, v int) {
	switch c {
	case Realistic:
		s.R += v
	case Investigative:
		s.I += v
	case Artistic:
		s.A += v
	case Social:
		s.S += v
	case Enterprising:
		s.E += v
	case Conventional:
		s.C += v
	}
}

// Total is the sum of all six counters.
func (s *Scores) Total() int {
	return s.R + s.I + s.A + s.S + s.E + s.C
}
