package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graha/internal/core/domain"
)

func TestDashaCmd_Text(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "dasha", "--date", "1997-07-11", "--time", "14:30", "--timezone", "+05:30", "-n", "12", "--at", "2010-01-01")
	require.NoError(t, err)

	assert.Contains(t, out, "Mahadasha from 1997-07-11 (nakshatra 12)")
	assert.Contains(t, out, "Moon     1997-07-11 to 2007-07-")
	assert.Contains(t, out, "7 years  <- current")
	assert.NotContains(t, out, "No period covers")
}

func TestDashaCmd_OnBirthDate(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "dasha", "--date", "1997-07-11", "--time", "14:30", "--timezone", "+05:30", "-n", "12", "--at", "1997-07-11")
	require.NoError(t, err)

	assert.Contains(t, out, "10 years  <- current")
	assert.NotContains(t, out, "No period covers")
}

func TestDashaCmd_OutsideTimeline(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "dasha", "--date", "1997-07-11", "-n", "0", "--at", "1990-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "No period covers 1990-01-01.")
}

func TestDashaCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "dasha", "--date", "1997-07-11", "-n", "12", "--at", "2000-01-01", "--json")
	require.NoError(t, err)

	var got struct {
		Nakshatra int                  `json:"nakshatra"`
		Periods   []domain.DashaPeriod `json:"periods"`
		Current   *domain.DashaPeriod  `json:"current"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 12, got.Nakshatra)
	require.Len(t, got.Periods, 9)
	assert.Equal(t, domain.Moon, got.Periods[0].Planet)
	assert.Equal(t, domain.Sun, got.Periods[8].Planet)
	require.NotNil(t, got.Current)
	assert.Equal(t, domain.Moon, got.Current.Planet)
}

func TestDashaCmd_Errors(t *testing.T) {
	t.Run("nakshatra out of range", func(t *testing.T) {
		setupTestServices(t)
		_, err := executeCommand(t, "dasha", "--date", "1997-07-11", "-n", "27")
		assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
	})

	t.Run("missing required flag", func(t *testing.T) {
		setupTestServices(t)
		_, err := executeCommand(t, "dasha", "--date", "1997-07-11")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nakshatra")
	})

	t.Run("bad timezone", func(t *testing.T) {
		setupTestServices(t)
		_, err := executeCommand(t, "dasha", "--date", "1997-07-11", "-n", "3", "--timezone", "Mars/Olympus")
		assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
	})
}

func TestLordsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "lords", "mars")
	require.NoError(t, err)
	assert.Contains(t, out, "House  1: Mars")
	assert.Contains(t, out, "House  4: Moon")
	assert.Contains(t, out, "House 10: Saturn")
	assert.Contains(t, out, "House 12: Jupiter")
}

func TestLordsCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "lords", "Venus", "--json")
	require.NoError(t, err)

	var got map[string]domain.Planet
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 12)
	assert.Equal(t, domain.Venus, got["1"])
	assert.Equal(t, domain.Mercury, got["2"])
}

func TestLordsCmd_UnknownPlanet(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "lords", "Pluto")
	assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
}
