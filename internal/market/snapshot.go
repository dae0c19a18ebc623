package market

import (
	"fmt"
	"time"
)

// BusinessType is the closed set of business categories the dashboard models.
type BusinessType string

const (
	BusinessFNB     BusinessType = "FNB"
	BusinessRetail  BusinessType = "RETAIL"
	BusinessService BusinessType = "SERVICE"
)

// RegionCodeLength is the digit count of an administrative (legal-dong) code.
const RegionCodeLength = 10

// TrendLength is the number of points in every trend series.
const TrendLength = 7

// Index offsets per business type. Food and beverage trends highest.
var businessOffsets = map[BusinessType]int{
	BusinessFNB:     8,
	BusinessRetail:  3,
	BusinessService: 0,
}

// BusinessTypes returns the supported business types in display order.
func BusinessTypes() []BusinessType {
	return []BusinessType{BusinessFNB, BusinessRetail, BusinessService}
}

// ParseBusinessType validates a business type token. Tokens are matched exactly.
func ParseBusinessType(s string) (BusinessType, error) {
	bt := BusinessType(s)
	if _, ok := businessOffsets[bt]; !ok {
		return "", invalidBusinessType(s)
	}
	return bt, nil
}

// Label returns the Korean display name.
func (b BusinessType) Label() string {
	switch b {
	case BusinessFNB:
		return "외식업"
	case BusinessRetail:
		return "소매업"
	case BusinessService:
		return "서비스업"
	default:
		return string(b)
	}
}

// TrendPoint is one position in the synthetic index series.
type TrendPoint struct {
	Period string `json:"period"`
	Index  int    `json:"index"`
}

// Indicators is the deterministic part of a snapshot. Two calls with the same
// region code and business type always produce equal values.
type Indicators struct {
	RegionCode         string       `json:"regionCode"`
	BusinessType       BusinessType `json:"businessType"`
	SalesIndex         int          `json:"salesIndex"`
	StoreCount         int          `json:"storeCount"`
	OpenRate           float64      `json:"openRate"`
	CloseRate          float64      `json:"closeRate"`
	FloatingPopulation int          `json:"floatingPopulation"`
	ResidentPopulation int          `json:"residentPopulation"`
	WorkerPopulation   int          `json:"workerPopulation"`
	AvgMonthlySales    int          `json:"avgMonthlySales"`
	CompetitionScore   int          `json:"competitionScore"`
	Trend              []TrendPoint `json:"trend"`
}

// Snapshot wraps Indicators with a display timestamp that is not part of the
// deterministic contract.
type Snapshot struct {
	Indicators
	GeneratedAt time.Time `json:"generatedAt"`
}

// Compute validates the request and derives the indicator bundle. It performs
// no I/O and is safe for concurrent use.
func Compute(regionCode, businessType string) (Indicators, error) {
	if err := ValidateRegionCode(regionCode); err != nil {
		return Indicators{}, err
	}
	bt, err := ParseBusinessType(businessType)
	if err != nil {
		return Indicators{}, err
	}

	seed := Seed(regionCode)
	offset := businessOffsets[bt]
	index := 100 + offset + seed%7 - 3

	ind := Indicators{
		RegionCode:         regionCode,
		BusinessType:       bt,
		SalesIndex:         index,
		StoreCount:         300 + 20*(seed%13) + 10*offset,
		OpenRate:           tenths(30 + 2*(seed%11) + offset/2),
		CloseRate:          tenths(25 + 3*(seed%13)),
		FloatingPopulation: 20000 + 1500*(seed%17),
		ResidentPopulation: 8000 + 400*(seed%19),
		WorkerPopulation:   5000 + 350*(seed%23),
		AvgMonthlySales:    2500 + 60*(seed%29) + 40*offset,
		CompetitionScore:   40 + seed%31 + offset,
		Trend:              make([]TrendPoint, TrendLength),
	}
	for i := range TrendLength {
		ind.Trend[i] = TrendPoint{
			Period: fmt.Sprintf("M-%d", TrendLength-1-i),
			Index:  index + (seed+3*i*i)%5 - 2,
		}
	}
	ind.Trend[TrendLength-1].Period = "M0"
	return ind, nil
}

// Seed derives the integer seed of a validated region code: the value of the
// last six digits plus 31 times the digit sum.
func Seed(regionCode string) int {
	suffix, sum := 0, 0
	for i := 0; i < len(regionCode); i++ {
		d := int(regionCode[i] - '0')
		sum += d
		if i >= len(regionCode)-6 {
			suffix = suffix*10 + d
		}
	}
	return suffix + 31*sum
}

func tenths(v int) float64 {
	return float64(v) / 10
}

// Generator attaches a clock to Compute.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a Generator. A nil clock defaults to time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Snapshot computes the indicators and stamps them.
func (g *Generator) Snapshot(regionCode, businessType string) (*Snapshot, error) {
	ind, err := Compute(regionCode, businessType)
	if err != nil {
		return nil, err
	}
	return g.Stamp(ind), nil
}

// Stamp wraps already computed indicators, e.g. ones served from a cache.
func (g *Generator) Stamp(ind Indicators) *Snapshot {
	return &Snapshot{Indicators: ind, GeneratedAt: g.now().UTC()}
}
