package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/graha/internal/core/domain"
)

func TestRenderReport(t *testing.T) {
	start := time.Date(1997, 7, 11, 9, 0, 0, 0, time.UTC)
	moon := domain.DashaPeriod{Planet: domain.Moon, Start: start, End: start.Add(domain.DashaDuration(10)), Years: 10}
	mars := domain.DashaPeriod{Planet: domain.Mars, Start: moon.End, End: moon.End.Add(domain.DashaDuration(7)), Years: 7}

	report := &domain.Report{
		ID:          "0123456789abcdef",
		Label:       "Render test",
		Birth:       &domain.BirthData{Time: start, Timezone: "UTC", Place: "Chennai"},
		Coordinates: &domain.Coordinates{Fallback: true},
		Source:      domain.PlacementManual,
		Houses: []domain.House{
			{Number: 1, Lord: domain.Mars, Planets: []domain.Planet{domain.Sun, domain.Mercury}},
			{Number: 2, Lord: domain.Venus},
		},
		Divisional: &domain.DivisionalChart{
			Code:  domain.DivisionNavamsa,
			Parts: 9,
			Positions: []domain.DivisionalPosition{
				{Planet: domain.Sun, Sign: domain.Cancer, DegreeInSign: 3.5},
				{Planet: domain.Moon, Sign: domain.NoSign, Err: errors.New("no longitude")},
			},
		},
		HouseAspects: []domain.HouseAspect{{Planet: domain.Mars, House: 4, Houses: []int{7, 10, 11}}},
		Topics: []domain.TopicVerdicts{{
			Topic: domain.TopicCareer,
			Houses: []domain.HouseVerdict{
				{House: 1, Status: domain.VerdictInfluenced, Positive: []domain.Planet{domain.Sun}, Negative: []domain.Planet{domain.Mercury}, Meaning: "Self"},
				{House: 2, Status: domain.VerdictNoInfluence},
				{House: 3, Status: domain.VerdictNoRule},
				{House: 4, Status: domain.VerdictNoRule},
			},
		}},
		Timeline:     []domain.DashaPeriod{moon, mars},
		CurrentDasha: &mars,
		Warnings:     []string{"birth place unresolved"},
	}

	out := renderReport(report)

	assert.Contains(t, out, "Render test")
	assert.Contains(t, out, "[01234567]")
	assert.Contains(t, out, "Born 1997-07-11 09:00 (UTC) in Chennai")
	assert.Contains(t, out, "(fallback)")
	assert.Contains(t, out, "Sun, Mercury")
	assert.Contains(t, out, "Divisional chart D9")
	assert.Contains(t, out, "Cancer")
	assert.Contains(t, out, "from house  4 aspects houses 7, 10, 11")
	assert.Contains(t, out, "house 1: +Sun -Mercury")
	assert.NotContains(t, out, "house 2:")
	assert.Contains(t, out, "no influence: houses 2")
	assert.Contains(t, out, "no rule: houses 3, 4")
	assert.Contains(t, out, "7 years  <- current")
	assert.Contains(t, out, "birth place unresolved")
	assert.Contains(t, out, "none", "no yogas")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("1234567890"))
}

func TestIntList(t *testing.T) {
	assert.Equal(t, "", intList(nil))
	assert.Equal(t, "4, 7, 8", intList([]int{4, 7, 8}))
}
