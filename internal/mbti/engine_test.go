package mbti

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Key
	}
	return out
}

// answersFor answers every question at the extreme that favours code's letters.
func answersFor(t *testing.T, code string) Answers {
	t.Helper()
	nominal, err := NominalScores(code)
	require.NoError(t, err)

	answers := Answers{}
	for _, q := range questionBank {
		favoursFirst := nominal[q.Axis] > 0
		agree := (q.Polarity == First) == favoursFirst
		if agree {
			answers[q.ID] = ScaleMax
		} else {
			answers[q.ID] = ScaleMin
		}
	}
	return answers
}

func TestCalculateEmptyAnswers(t *testing.T) {
	res := Calculate(nil)
	assert.Equal(t, "ESTJ", res.Type)
	assert.Equal(t, AxisScores{}, res.Scores)
	assert.Equal(t, []string{"cafe", "restaurant"}, keys(res.Recommended))
	assert.Equal(t, Describe("ESTJ"), res.Description)
}

func TestCalculateAlwaysReturnsKnownCode(t *testing.T) {
	valid := map[string]bool{}
	for _, c := range TypeCodes() {
		valid[c] = true
	}
	require.Len(t, valid, 16)

	sets := []Answers{
		{},
		{"q1": 1},
		{"q5": 5, "q11": 5},
		{"q1": 0, "q2": 9, "zz": 3},
	}
	for _, code := range TypeCodes() {
		sets = append(sets, answersFor(t, code))
	}
	for _, a := range sets {
		res := Calculate(a)
		assert.True(t, valid[res.Type], "unexpected code %q", res.Type)
		for ax := AxisEI; ax <= AxisJP; ax++ {
			if res.Scores[ax] >= 0 {
				assert.Equal(t, axisLetters[ax][0], res.Type[ax])
			} else {
				assert.Equal(t, axisLetters[ax][1], res.Type[ax])
			}
		}
		assert.LessOrEqual(t, len(res.Recommended), RecommendLimit)
	}
}

func TestScoreWeightsAndPolarity(t *testing.T) {
	s := Score(Answers{"q3": 5, "q5": 5, "q7": 1, "q11": 4})
	assert.Equal(t, 4, s[AxisEI])
	assert.Equal(t, -4, s[AxisSN])
	assert.Equal(t, -4, s[AxisTF])
	assert.Equal(t, -2, s[AxisJP])
	assert.Equal(t, "ENFP", s.Code())
}

func TestScoreIgnoresInvalidChoices(t *testing.T) {
	s := Score(Answers{"q1": 0, "q2": 6, "q4": -3, "unknown": 5})
	assert.Equal(t, AxisScores{}, s)
}

func TestZeroAxisResolvesToFirstLetter(t *testing.T) {
	// q1 (+2) and q2 (-2) cancel on EI.
	res := Calculate(Answers{"q1": 5, "q2": 5, "q5": 5})
	assert.Equal(t, 0, res.Scores[AxisEI])
	assert.Equal(t, byte('E'), res.Type[0])
	assert.Equal(t, byte('N'), res.Type[1])
}

func TestEntryPointsAgree(t *testing.T) {
	for _, code := range TypeCodes() {
		fromType, err := RecommendFromType(code)
		require.NoError(t, err)

		full := Calculate(answersFor(t, code))
		assert.Equal(t, code, full.Type)
		assert.Equal(t, code, fromType.Type)
		assert.Equal(t, keys(fromType.Recommended), keys(full.Recommended), code)
		assert.Equal(t, keys(Rank(fromType.Scores)), keys(Rank(full.Scores)), code)
		assert.Equal(t, fromType.Description, full.Description)
	}
}

func TestEntryPointsAgreeForOneAnswerPerAxis(t *testing.T) {
	// One weight-1 question per axis gives every axis the same strength.
	single := map[Axis]string{AxisEI: "q1", AxisSN: "q4", AxisTF: "q9", AxisJP: "q10"}
	for _, code := range TypeCodes() {
		nominal, err := NominalScores(code)
		require.NoError(t, err)
		answers := Answers{}
		for axis, id := range single {
			answers[id] = ScaleMin
			if nominal[axis] > 0 {
				answers[id] = ScaleMax
			}
		}

		fromType, err := RecommendFromType(code)
		require.NoError(t, err)
		full := Calculate(answers)
		assert.Equal(t, code, full.Type)
		assert.Equal(t, keys(Rank(fromType.Scores)), keys(Rank(full.Scores)), code)
	}
}

// The two entry points agree only when all axes carry the same strength.
// A lopsided answer set ranks by its actual strengths, while the type code
// alone cannot express them.
func TestUnevenAxesRankByStrength(t *testing.T) {
	full := Calculate(Answers{"q3": 5, "q4": 1, "q8": 5, "q12": 1})
	assert.Equal(t, AxisScores{4, -2, -2, -2}, full.Scores)
	assert.Equal(t, "ENFP", full.Type)
	assert.Equal(t, []string{"cafe", "education"}, keys(full.Recommended))

	fromType, err := RecommendFromType("ENFP")
	require.NoError(t, err)
	assert.Equal(t, []string{"cafe", "online"}, keys(fromType.Recommended))
}

func TestCategoriesReturnsCopy(t *testing.T) {
	before := keys(Rank(AxisScores{1, 1, 1, 1}))

	cats := Categories()
	cats[0].Weights['E'] = 100
	cats[1].Name = "changed"

	assert.Equal(t, before, keys(Rank(AxisScores{1, 1, 1, 1})))
	assert.Equal(t, 2, Categories()[0].Weights['E'])
	assert.Equal(t, "음식점", Categories()[1].Name)
}

func TestRankTieKeepsDeclaredOrder(t *testing.T) {
	scores, err := NominalScores("ESTJ")
	require.NoError(t, err)

	ranked := Rank(scores)
	byKey := map[string]int{}
	pos := map[string]int{}
	for i, r := range ranked {
		byKey[r.Key] = r.Score
		pos[r.Key] = i
	}

	assert.Equal(t, []string{"restaurant", "retail"}, keys(ranked[:2]))
	require.Equal(t, byKey["education"], byKey["beauty"])
	assert.Less(t, pos["education"], pos["beauty"])

	zero := Rank(AxisScores{})
	assert.Equal(t, []string{"cafe", "restaurant", "retail", "online", "education", "beauty", "unmanned", "fitness"}, keys(zero))
}

func TestRecommendFromTypeNormalisesCase(t *testing.T) {
	res, err := RecommendFromType(" intp ")
	require.NoError(t, err)
	assert.Equal(t, "INTP", res.Type)
	assert.Equal(t, AxisScores{-1, -1, 1, -1}, res.Scores)
}

func TestRecommendFromTypeInvalid(t *testing.T) {
	for _, code := range []string{"", "EST", "ESTJX", "XSTJ", "EETJ", "1234"} {
		_, err := RecommendFromType(code)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, code)
		assert.Equal(t, CodeInvalidType, ve.Code)
	}
}

func TestDescribeFallback(t *testing.T) {
	for _, code := range TypeCodes() {
		assert.NotEqual(t, DefaultDescription, Describe(code), code)
	}
	assert.Equal(t, DefaultDescription, Describe("ABCD"))
	assert.Equal(t, DefaultDescription, Describe(""))
}

func TestQuestionBankAxisWeightsBalanced(t *testing.T) {
	totals := map[Axis]int{}
	for _, q := range Questions() {
		totals[q.Axis] += q.weight()
	}
	for a := AxisEI; a <= AxisJP; a++ {
		assert.Equal(t, 4, totals[a], a.String())
	}
}
