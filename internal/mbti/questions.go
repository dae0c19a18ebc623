package mbti

// Axis is one of the four bipolar dimensions, in type-code order.
type Axis int

const (
	AxisEI Axis = iota
	AxisSN
	AxisTF
	AxisJP
)

// axisLetters holds the first- and second-polarity letter of each axis.
var axisLetters = [4][2]byte{
	AxisEI: {'E', 'I'},
	AxisSN: {'S', 'N'},
	AxisTF: {'T', 'F'},
	AxisJP: {'J', 'P'},
}

func (a Axis) String() string {
	return string(axisLetters[a][:])
}

// Polarity is the pole an affirmative answer reinforces.
type Polarity int

const (
	First Polarity = iota
	Second
)

// Answer scale bounds. Choices are centred on ScaleMid.
const (
	ScaleMin = 1
	ScaleMax = 5
	ScaleMid = 3
)

// Question is one entry of the fixed quiz catalog.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Axis     Axis     `json:"-"`
	Polarity Polarity `json:"-"`
	Weight   int      `json:"-"`
}

func (q Question) weight() int {
	if q.Weight <= 0 {
		return 1
	}
	return q.Weight
}

// Each axis carries a total weight of 4 so that answering every question at
// an extreme scales all axes equally.
var questionBank = []Question{
	{ID: "q1", Text: "처음 보는 손님과도 금방 대화를 이어갈 수 있다.", Axis: AxisEI, Polarity: First},
	{ID: "q2", Text: "하루 종일 혼자 작업해도 지치지 않는다.", Axis: AxisEI, Polarity: Second},
	{ID: "q3", Text: "가게 홍보를 위해 직접 사람들 앞에 나서는 것이 즐겁다.", Axis: AxisEI, Polarity: First, Weight: 2},
	{ID: "q4", Text: "검증된 운영 매뉴얼을 그대로 따르는 편이 마음 편하다.", Axis: AxisSN, Polarity: First},
	{ID: "q5", Text: "아직 아무도 하지 않은 새로운 콘셉트에 끌린다.", Axis: AxisSN, Polarity: Second, Weight: 2},
	{ID: "q6", Text: "숫자와 현장 데이터를 먼저 확인한 뒤 결정한다.", Axis: AxisSN, Polarity: First},
	{ID: "q7", Text: "직원 문제는 감정보다 원칙에 따라 처리해야 한다.", Axis: AxisTF, Polarity: First, Weight: 2},
	{ID: "q8", Text: "손님의 기분을 세심하게 살피는 일이 보람 있다.", Axis: AxisTF, Polarity: Second},
	{ID: "q9", Text: "수익성이 낮으면 애정이 있는 메뉴라도 정리할 수 있다.", Axis: AxisTF, Polarity: First},
	{ID: "q10", Text: "오픈 전 일정과 예산을 꼼꼼히 계획해 둔다.", Axis: AxisJP, Polarity: First},
	{ID: "q11", Text: "상황에 따라 영업 방식을 유연하게 바꾸는 것을 좋아한다.", Axis: AxisJP, Polarity: Second, Weight: 2},
	{ID: "q12", Text: "매일 같은 시간에 같은 루틴으로 일하는 것이 좋다.", Axis: AxisJP, Polarity: First},
}

// Questions returns a copy of the quiz catalog in order.
func Questions() []Question {
	out := make([]Question, len(questionBank))
	copy(out, questionBank)
	return out
}
