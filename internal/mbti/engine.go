package mbti

import (
	"fmt"
	"sort"
	"strings"
)

// RecommendLimit is how many categories a result carries.
const RecommendLimit = 2

// Answers maps question id to a choice on the 1..5 scale.
type Answers map[string]int

// AxisScores holds one signed accumulator per axis, indexed by Axis.
type AxisScores [4]int

// Letter returns the winning letter of an axis. Zero resolves to the
// first-polarity letter.
func (s AxisScores) Letter(a Axis) byte {
	if s[a] >= 0 {
		return axisLetters[a][0]
	}
	return axisLetters[a][1]
}

// Code concatenates the winning letters of the four axes.
func (s AxisScores) Code() string {
	b := make([]byte, 4)
	for a := AxisEI; a <= AxisJP; a++ {
		b[a] = s.Letter(a)
	}
	return string(b)
}

// Recommendation is one ranked business category.
type Recommendation struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Rationale string `json:"rationale"`
	Score     int    `json:"score"`
}

// Result is returned by both Calculate and RecommendFromType.
type Result struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Recommended []Recommendation `json:"recommended"`
	Scores      AxisScores       `json:"scores"`
}

// Score accumulates the weighted contribution of every answered question.
// Unknown ids and out-of-range choices are ignored.
func Score(answers Answers) AxisScores {
	var s AxisScores
	for _, q := range questionBank {
		choice, ok := answers[q.ID]
		if !ok || choice < ScaleMin || choice > ScaleMax {
			continue
		}
		c := (choice - ScaleMid) * q.weight()
		if q.Polarity == Second {
			c = -c
		}
		s[q.Axis] += c
	}
	return s
}

// Calculate scores a quiz session. An empty answer set yields "ESTJ" by the
// zero tie-break.
func Calculate(answers Answers) Result {
	scores := Score(answers)
	code := scores.Code()
	return Result{
		Type:        code,
		Description: Describe(code),
		Recommended: Recommend(scores),
		Scores:      scores,
	}
}

// RecommendFromType derives a result from a known type code, e.g. a shared
// link. Each letter maps to a nominal axis score of +1 or -1.
func RecommendFromType(code string) (Result, error) {
	scores, err := NominalScores(code)
	if err != nil {
		return Result{}, err
	}
	code = scores.Code()
	return Result{
		Type:        code,
		Description: Describe(code),
		Recommended: Recommend(scores),
		Scores:      scores,
	}, nil
}

// NominalScores parses a 4-letter code, case-insensitively.
func NominalScores(code string) (AxisScores, error) {
	var s AxisScores
	norm := strings.ToUpper(strings.TrimSpace(code))
	if len(norm) != 4 {
		return s, invalidType(code)
	}
	for a := AxisEI; a <= AxisJP; a++ {
		switch norm[a] {
		case axisLetters[a][0]:
			s[a] = 1
		case axisLetters[a][1]:
			s[a] = -1
		default:
			return s, invalidType(code)
		}
	}
	return s, nil
}

// Recommend ranks the category catalog against the axis scores and returns
// the top RecommendLimit entries.
func Recommend(scores AxisScores) []Recommendation {
	ranked := Rank(scores)
	if len(ranked) > RecommendLimit {
		ranked = ranked[:RecommendLimit]
	}
	return ranked
}

// Rank scores every category. Only the positive strength of a pole counts:
// a category weighted on 'I' gains from max(0, -EI) and nothing from E.
// Equal scores keep the catalog order.
func Rank(scores AxisScores) []Recommendation {
	out := make([]Recommendation, len(categories))
	for i, c := range categories {
		total := 0
		for a := AxisEI; a <= AxisJP; a++ {
			first := max(0, scores[a])
			second := max(0, -scores[a])
			total += c.Weights[axisLetters[a][0]]*first + c.Weights[axisLetters[a][1]]*second
		}
		out[i] = Recommendation{Key: c.Key, Name: c.Name, Rationale: c.Rationale, Score: total}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// ValidationError is returned for an unparseable type code.
type ValidationError struct {
	Code    string
	Message string
}

// CodeInvalidType is the only ValidationError code.
const CodeInvalidType = "INVALID_TYPE"

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalidType(code string) error {
	return &ValidationError{
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("%q 은(는) 올바른 유형 코드가 아닙니다.", code),
	}
}
