package scoring

import (
	"fmt"
	"time"
)

// Mode selects the aggregation rule applied to a test.
type Mode string

const (
	ModeInterest       Mode = "interest"
	ModeSingleScale    Mode = "single_scale"
	ModeMultipleChoice Mode = "multiple_choice"
)

// Form distinguishes the short and full-length variants of a single-scale test.
type Form string

const (
	FormShort Form = "short"
	FormFull  Form = "full"
)

// ResponseScale is the answer domain of a Likert-style test.
type ResponseScale string

const (
	// ResponseLikert takes integers in [Config.LikertMin, Config.LikertMax].
	ResponseLikert ResponseScale = "likert"
	// ResponseYesNo takes booleans or 0/1, true and 1 meaning yes.
	ResponseYesNo ResponseScale = "yes_no"
)

// Band maps an inclusive score range to an interpretation.
type Band struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Label    string `json:"label"`
	Feedback string `json:"feedback"`
}

// BandSet is an ordered list of contiguous bands.
type BandSet []Band

// Validate checks that bands are non-empty, ordered and leave no gaps.
func (bs BandSet) Validate() error {
	if len(bs) == 0 {
		return fmt.Errorf("%w: empty band set", ErrInvalidConfig)
	}
	for i, b := range bs {
		if b.Min > b.Max {
			return fmt.Errorf("%w: band %q has min %d > max %d", ErrInvalidConfig, b.Label, b.Min, b.Max)
		}
		if i > 0 && b.Min != bs[i-1].Max+1 {
			return fmt.Errorf("%w: band %q starts at %d, expected %d", ErrInvalidConfig, b.Label, b.Min, bs[i-1].Max+1)
		}
	}
	return nil
}

// Lookup returns the band containing score. Scores outside the reference
// range fall into the nearest edge band.
func (bs BandSet) Lookup(score int) Band {
	if score <= bs[0].Max {
		return bs[0]
	}
	last := bs[len(bs)-1]
	if score >= last.Min {
		return last
	}
	for _, b := range bs {
		if score >= b.Min && score <= b.Max {
			return b
		}
	}
	return last
}

// ScaleBands holds the band sets for both forms of a single-scale test.
type ScaleBands struct {
	Short BandSet `json:"short"`
	Full  BandSet `json:"full"`
}

// TestDefinition registers a test identifier with its scoring mode.
type TestDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Mode        Mode        `json:"mode"`
	Bands       *ScaleBands `json:"bands,omitempty"`

	// Response applies to interest and single-scale tests; empty means Likert.
	Response ResponseScale `json:"response,omitempty"`
}

// Scale returns the response scale, defaulting to Likert.
func (d TestDefinition) Scale() ResponseScale {
	if d.Response == "" {
		return ResponseLikert
	}
	return d.Response
}

// Config is everything the engine needs besides the submission itself.
type Config struct {
	Tests   map[string]TestDefinition
	Careers map[Category][]string

	// LongFormThreshold is the question count at which a single-scale test
	// is banded against the full-length range.
	LongFormThreshold int

	LikertMin int
	LikertMax int

	Now func() time.Time
}

func (c Config) Validate() error {
	if c.LikertMin >= c.LikertMax {
		return fmt.Errorf("%w: likert range [%d,%d]", ErrInvalidConfig, c.LikertMin, c.LikertMax)
	}
	if c.LongFormThreshold <= 0 {
		return fmt.Errorf("%w: long form threshold must be positive", ErrInvalidConfig)
	}
	for id, def := range c.Tests {
		switch def.Scale() {
		case ResponseLikert, ResponseYesNo:
		default:
			return fmt.Errorf("%w: test %s has response scale %q", ErrInvalidConfig, id, def.Response)
		}
		switch def.Mode {
		case ModeInterest, ModeMultipleChoice:
		case ModeSingleScale:
			if def.Bands == nil {
				return fmt.Errorf("%w: test %s has no bands", ErrInvalidConfig, id)
			}
			if err := def.Bands.Short.Validate(); err != nil {
				return fmt.Errorf("test %s short form: %w", id, err)
			}
			if err := def.Bands.Full.Validate(); err != nil {
				return fmt.Errorf("test %s full form: %w", id, err)
			}
		default:
			return fmt.Errorf("%w: test %s has mode %q", ErrInvalidConfig, id, def.Mode)
		}
	}
	return nil
}

const (
	TestRIASEC      = "RIASEC"
	TestWellbeing   = "Wellbeing"
	TestPersonality = "Personality"
	TestAptitude    = "Aptitude"

	// DefaultTest is used when a submission names no test.
	DefaultTest = TestRIASEC
)

// DefaultCareers is the static suggestion table keyed by primary category.
var DefaultCareers = map[Category][]string{
	Realistic:     {"Agriculture", "Health Assistant", "Computers", "Construction", "Mechanic/Machinist", "Engineering", "Food and Hospitality"},
	Investigative: {"Marine Biology", "Engineering", "Chemistry", "Zoology", "Medicine/Surgery", "Consumer Economics", "Psychology"},
	Artistic:      {"Communications", "Cosmetology", "Fine and Performing Arts", "Photography", "Radio and TV", "Interior Design", "Architecture"},
	Social:        {"Counseling", "Nursing", "Physical Therapy", "Travel", "Advertising", "Public Relations", "Education"},
	Enterprising:  {"Fashion Merchandising", "Real Estate", "Marketing/Sales", "Law", "Political Science", "International Trade", "Banking/Finance"},
	Conventional:  {"Accounting", "Court Reporting", "Insurance", "Administration", "Medical Records", "Banking", "Data Processing"},
}

// WellbeingBands follows the 14 item / 7 item wellbeing scale norms.
var WellbeingBands = ScaleBands{
	Short: BandSet{
		{Min: 7, Max: 19, Label: "Low wellbeing", Feedback: "Your responses suggest you may be going through a difficult period. Consider talking to a counsellor or someone you trust, and build small routines around sleep, activity and social contact."},
		{Min: 20, Max: 27, Label: "Moderate wellbeing", Feedback: "Your wellbeing is in the typical range. Keep up what works for you and look for one area, such as rest or time with friends, that could use more attention."},
		{Min: 28, Max: 35, Label: "High wellbeing", Feedback: "Your responses indicate strong mental wellbeing. Keep investing in the habits and relationships that support you."},
	},
	Full: BandSet{
		{Min: 14, Max: 42, Label: "Low wellbeing", Feedback: "Your responses suggest you may be going through a difficult period. Consider talking to a counsellor or someone you trust, and build small routines around sleep, activity and social contact."},
		{Min: 43, Max: 59, Label: "Moderate wellbeing", Feedback: "Your wellbeing is in the typical range. Keep up what works for you and look for one area, such as rest or time with friends, that could use more attention."},
		{Min: 60, Max: 70, Label: "High wellbeing", Feedback: "Your responses indicate strong mental wellbeing. Keep investing in the habits and relationships that support you."},
	},
}

// PersonalityBands interprets the work-style inventory.
var PersonalityBands = ScaleBands{
	Short: BandSet{
		{Min: 3, Max: 7, Label: "Reserved work style", Feedback: "You prefer independent, well-structured work. Roles with clear ownership and focused tasks will suit you."},
		{Min: 8, Max: 11, Label: "Balanced work style", Feedback: "You adapt between independent and collaborative work. Mixed roles that combine planning with teamwork fit you well."},
		{Min: 12, Max: 15, Label: "Outgoing work style", Feedback: "You draw energy from people and taking the lead. Client-facing and leadership roles are a natural fit."},
	},
	Full: BandSet{
		{Min: 14, Max: 32, Label: "Reserved work style", Feedback: "You prefer independent, well-structured work. Roles with clear ownership and focused tasks will suit you."},
		{Min: 33, Max: 51, Label: "Balanced work style", Feedback: "You adapt between independent and collaborative work. Mixed roles that combine planning with teamwork fit you well."},
		{Min: 52, Max: 70, Label: "Outgoing work style", Feedback: "You draw energy from people and taking the lead. Client-facing and leadership roles are a natural fit."},
	},
}

// DefaultConfig returns the production test registry.
func DefaultConfig() Config {
	wellbeing := WellbeingBands
	personality := PersonalityBands
	return Config{
		Tests: map[string]TestDefinition{
			TestRIASEC: {
				ID:          TestRIASEC,
				Name:        "RIASEC Career Assessment",
				Description: "Interests-based career assessment (Realistic, Investigative, Artistic, Social, Enterprising, Conventional)",
				Mode:        ModeInterest,
			},
			TestWellbeing: {
				ID:          TestWellbeing,
				Name:        "Wellbeing Scale",
				Description: "Short mental wellbeing inventory on a five point scale",
				Mode:        ModeSingleScale,
				Bands:       &wellbeing,
			},
			TestPersonality: {
				ID:          TestPersonality,
				Name:        "Personality Inventory",
				Description: "Brief personality inventory to capture work-style preferences",
				Mode:        ModeSingleScale,
				Bands:       &personality,
			},
			TestAptitude: {
				ID:          TestAptitude,
				Name:        "Aptitude Test",
				Description: "Short quantitative and logical aptitude test",
				Mode:        ModeMultipleChoice,
			},
		},
		Careers:           DefaultCareers,
		LongFormThreshold: 14,
		LikertMin:         1,
		LikertMax:         5,
		Now:               time.Now,
	}
}
