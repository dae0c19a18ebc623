package mbti

// Category is a recommendable business type. Weights are keyed by axis letter.
type Category struct {
	Key       string
	Name      string
	Rationale string
	Weights   map[byte]int
}

// categories is in declared default order; ties in Rank keep this order.
var categories = []Category{
	{
		Key:       "cafe",
		Name:      "카페·디저트",
		Rationale: "감각적인 공간 연출과 단골 손님과의 교류가 매출로 이어지는 업종입니다.",
		Weights:   map[byte]int{'E': 2, 'N': 2, 'F': 2, 'P': 1},
	},
	{
		Key:       "restaurant",
		Name:      "음식점",
		Rationale: "표준화된 조리 공정과 빠른 현장 판단이 중요한 업종입니다.",
		Weights:   map[byte]int{'E': 2, 'S': 2, 'T': 1, 'J': 2},
	},
	{
		Key:       "retail",
		Name:      "소매·편의점",
		Rationale: "재고와 발주를 숫자로 관리하는 꼼꼼함이 수익을 좌우합니다.",
		Weights:   map[byte]int{'S': 2, 'T': 2, 'J': 2, 'I': 1},
	},
	{
		Key:       "online",
		Name:      "온라인 쇼핑몰",
		Rationale: "혼자서도 상품 기획부터 마케팅까지 실험하며 키워갈 수 있습니다.",
		Weights:   map[byte]int{'I': 2, 'N': 2, 'P': 2, 'T': 1},
	},
	{
		Key:       "education",
		Name:      "교육·학원",
		Rationale: "사람을 성장시키는 데서 보람을 느끼고 체계적인 커리큘럼을 운영합니다.",
		Weights:   map[byte]int{'F': 2, 'J': 2, 'N': 1, 'E': 1},
	},
	{
		Key:       "beauty",
		Name:      "뷰티·미용",
		Rationale: "고객 한 명 한 명과의 신뢰와 섬세한 손기술이 재방문을 만듭니다.",
		Weights:   map[byte]int{'F': 2, 'S': 2, 'E': 1, 'P': 1},
	},
	{
		Key:       "unmanned",
		Name:      "무인매장",
		Rationale: "대면 응대 부담이 적고 시스템으로 운영 효율을 높일 수 있습니다.",
		Weights:   map[byte]int{'I': 2, 'T': 2, 'J': 1, 'S': 1},
	},
	{
		Key:       "fitness",
		Name:      "헬스·피트니스",
		Rationale: "에너지 넘치는 코칭과 회원 관리로 커뮤니티를 만들어 갑니다.",
		Weights:   map[byte]int{'E': 2, 'T': 1, 'J': 1, 'P': 1, 'S': 1},
	},
}

// Categories returns a deep copy of the category catalog in declared order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		weights := make(map[byte]int, len(c.Weights))
		for letter, w := range c.Weights {
			weights[letter] = w
		}
		c.Weights = weights
		out[i] = c
	}
	return out
}

var descriptions = map[string]string{
	"ISTJ": "원칙과 책임감으로 매장을 안정적으로 운영하는 관리형 사장님",
	"ISFJ": "손님을 세심하게 챙기며 꾸준히 신뢰를 쌓는 헌신형 사장님",
	"INFJ": "뚜렷한 철학으로 브랜드의 의미를 만들어 가는 비전형 사장님",
	"INTJ": "치밀한 계획과 전략으로 사업을 설계하는 전략가형 사장님",
	"ISTP": "문제를 직접 손으로 해결하는 실용주의 장인형 사장님",
	"ISFP": "자신만의 감성을 공간과 상품에 담아내는 예술가형 사장님",
	"INFP": "좋아하는 일을 가치 있게 키워 가는 이상주의형 사장님",
	"INTP": "새로운 운영 방식을 분석하고 실험하는 연구자형 사장님",
	"ESTP": "현장에서 기회를 빠르게 잡아내는 행동파 사장님",
	"ESFP": "밝은 에너지로 손님을 끌어모으는 분위기 메이커형 사장님",
	"ENFP": "아이디어와 열정으로 새로운 트렌드를 만드는 기획자형 사장님",
	"ENTP": "남들이 보지 못한 사업 기회를 찾아내는 혁신가형 사장님",
	"ESTJ": "체계적인 시스템으로 조직과 매출을 관리하는 경영자형 사장님",
	"ESFJ": "단골과 직원 모두를 챙기는 커뮤니티 리더형 사장님",
	"ENFJ": "사람을 모으고 이끄는 데 탁월한 멘토형 사장님",
	"ENTJ": "목표를 세우고 확장을 밀어붙이는 사업가형 사장님",
}

// DefaultDescription is shown for a code outside the 16 known types.
const DefaultDescription = "나에게 맞는 창업 스타일을 찾아가는 예비 사장님"

// Describe returns the static description of a type code.
func Describe(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return DefaultDescription
}

// TypeCodes returns the 16 valid codes.
func TypeCodes() []string {
	out := make([]string, 0, 16)
	for _, a := range []byte{'E', 'I'} {
		for _, b := range []byte{'S', 'N'} {
			for _, c := range []byte{'T', 'F'} {
				for _, d := range []byte{'J', 'P'} {
					out = append(out, string([]byte{a, b, c, d}))
				}
			}
		}
	}
	return out
}
