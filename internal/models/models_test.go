package models

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul4469/bizstart/internal/crypto"
)

func TestValidSlug(t *testing.T) {
	cases := map[string]bool{
		"first-store-guide": true,
		"2025-trend":        true,
		"ab":                false,
		"Upper-Case":        false,
		"with space":        false,
		"한글-슬러그":            false,
	}
	for slug, want := range cases {
		assert.Equal(t, want, ValidSlug(slug), slug)
	}
}

func TestArticleCategoryValid(t *testing.T) {
	for _, c := range ArticleCategories() {
		assert.True(t, c.Valid())
		assert.NotEqual(t, string(c), c.Label())
	}
	assert.False(t, ArticleCategory("gossip").Valid())
}

func TestInquiryStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to InquiryStatus
		ok       bool
	}{
		{InquiryNew, InquiryInProgress, true},
		{InquiryNew, InquiryDone, true},
		{InquiryInProgress, InquiryDone, true},
		{InquiryDone, InquiryInProgress, true},
		{InquiryInProgress, InquiryNew, false},
		{InquiryDone, InquiryNew, false},
		{InquiryNew, InquiryNew, false},
		{InquiryNew, InquiryStatus("archived"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseFranchiseFilterDefaults(t *testing.T) {
	f := ParseFranchiseFilter(url.Values{})

	assert.Equal(t, FranchiseFilter{Sort: SortStores, Order: OrderDesc, Page: 1}, f)
	assert.Empty(t, f.Values())
	assert.Equal(t, "stores DESC, id ASC", f.orderBy())
}

func TestParseFranchiseFilterRejectsUnknownValues(t *testing.T) {
	f := ParseFranchiseFilter(url.Values{
		"category": {"casino"},
		"sort":     {"id; DROP TABLE franchises"},
		"order":    {"sideways"},
		"page":     {"-3"},
	})

	assert.Equal(t, "", f.Category)
	assert.Equal(t, SortStores, f.Sort)
	assert.Equal(t, OrderDesc, f.Order)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, "stores DESC, id ASC", f.orderBy())
}

func TestFranchiseFilterRoundTrip(t *testing.T) {
	queries := []string{
		"",
		"category=cafe",
		"q=%EC%BB%A4%ED%94%BC&sort=name",
		"sort=startup_cost&order=desc&page=3",
		"category=fitness&sort=sales&order=asc",
	}
	for _, raw := range queries {
		q, err := url.ParseQuery(raw)
		require.NoError(t, err)

		f := ParseFranchiseFilter(q)
		again := ParseFranchiseFilter(f.Values())
		assert.Equal(t, f, again, raw)
		assert.Equal(t, q.Encode(), f.Values().Encode(), raw)
	}
}

func TestFranchiseFilterWithSort(t *testing.T) {
	f := ParseFranchiseFilter(url.Values{"page": {"4"}})

	byName := f.WithSort(SortName)
	assert.Equal(t, SortName, byName.Sort)
	assert.Equal(t, OrderAsc, byName.Order)
	assert.Equal(t, 1, byName.Page)
	assert.Equal(t, "name ASC, id ASC", byName.orderBy())

	flipped := byName.WithSort(SortName)
	assert.Equal(t, OrderDesc, flipped.Order)
	assert.Equal(t, "name DESC, id ASC", flipped.orderBy())

	assert.Equal(t, 4, f.Page, "original filter unchanged")
}

func TestFranchiseFilterTruncatesKeyword(t *testing.T) {
	long := ""
	for i := 0; i < 80; i++ {
		long += "가"
	}
	f := ParseFranchiseFilter(url.Values{"q": {"  " + long + " "}})
	assert.Len(t, []rune(f.Query), maxKeywordLength)
}

func TestLikePatternEscapes(t *testing.T) {
	assert.Equal(t, "", likePattern(""))
	assert.Equal(t, `%커피%`, likePattern("커피"))
	assert.Equal(t, `%50\%\_off\\%`, likePattern(`50%_off\`))
}

func TestParseCompareIDs(t *testing.T) {
	ids, err := ParseCompareIDs([]string{"3,1", "3", " 7 "})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 7}, ids)

	_, err = ParseCompareIDs([]string{"1"})
	assert.ErrorIs(t, err, ErrCompareCount)

	_, err = ParseCompareIDs([]string{"1,2,3,4,5"})
	assert.ErrorIs(t, err, ErrCompareCount)

	_, err = ParseCompareIDs([]string{"1,abc"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCompareCount))
}

func TestOrderByIDs(t *testing.T) {
	found := []*Franchise{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}

	out, err := orderByIDs(found, []int64{3, 1})
	require.NoError(t, err)
	assert.Equal(t, "c", out[0].Name)
	assert.Equal(t, "a", out[1].Name)

	_, err = orderByIDs(found, []int64{1, 9})
	assert.ErrorIs(t, err, ErrFranchiseNotFound)
}

type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *InquiryStatus:
			*p = r.values[i].(InquiryStatus)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func TestInquiryScanDecryptsContactFields(t *testing.T) {
	cipher, err := crypto.NewFieldCipher([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	phone, err := cipher.Seal("phone", "010-1234-5678")
	require.NoError(t, err)
	email, err := cipher.Seal("email", "owner@example.com")
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewInquiryService(nil, cipher)
	inq, err := svc.scan(fakeRow{values: []any{
		int64(7), "김사장", phone, email, "market", "상권 문의", InquiryNew, now, now,
	}})
	require.NoError(t, err)

	assert.Equal(t, "010-1234-5678", inq.Phone)
	assert.Equal(t, "owner@example.com", inq.Email)
	assert.Equal(t, InquiryNew, inq.Status)
}

func TestInquiryScanRejectsSwappedColumns(t *testing.T) {
	cipher, err := crypto.NewFieldCipher([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	phone, err := cipher.Seal("phone", "010-1234-5678")
	require.NoError(t, err)

	now := time.Now()
	svc := NewInquiryService(nil, cipher)
	_, err = svc.scan(fakeRow{values: []any{
		int64(7), "김사장", phone, phone, "market", "", InquiryNew, now, now,
	}})
	assert.Error(t, err)
}
