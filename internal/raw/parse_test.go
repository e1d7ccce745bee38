package raw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var politicalHeader = []string{"number", "name", "short_name", "last_update", "district_number", "district_name", "canton_code", "canton_name"}

func politicalIndex(t *testing.T) columnIndex {
	t.Helper()
	idx, missing := matchHeader(politicalHeader, politicalColumns)
	require.Empty(t, missing)
	return idx
}

func TestParsePolitical(t *testing.T) {
	rec, err := parsePolitical(
		[]string{"261", "Zürich", "Zürich", "2024-01-01", "110", "Bezirk Zürich", "ZH", "Zürich"},
		politicalIndex(t),
	)
	require.NoError(t, err)
	assert.Equal(t, PoliticalCommunity{
		Number:         "261",
		Name:           "Zürich",
		ShortName:      "Zürich",
		LastUpdate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DistrictNumber: "110",
		DistrictName:   "Bezirk Zürich",
		CantonCode:     "ZH",
		CantonName:     "Zürich",
	}, rec)
}

func TestParsePolitical_ShortNameDefaultsToName(t *testing.T) {
	rec, err := parsePolitical(
		[]string{"351", "Bern", "", "", "246", "Bern-Mittelland", "BE", "Bern"},
		politicalIndex(t),
	)
	require.NoError(t, err)
	assert.Equal(t, "Bern", rec.ShortName)
	assert.True(t, rec.LastUpdate.IsZero())
}

func TestParsePolitical_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		msg  string
	}{
		{"no number", []string{"", "X", "", "", "110", "D", "ZH", "Z"}, "empty political community number"},
		{"no district", []string{"1", "X", "", "", "", "D", "ZH", "Z"}, "empty district number"},
		{"no canton", []string{"1", "X", "", "", "110", "D", "", "Z"}, "empty canton code"},
		{"bad date", []string{"1", "X", "", "someday", "110", "D", "ZH", "Z"}, "unparseable date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePolitical(tt.row, politicalIndex(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParsePostal(t *testing.T) {
	idx, missing := matchHeader([]string{"zip_code", "zip_code_addition", "name", "political_community_number"}, postalColumns)
	require.Empty(t, missing)

	rec, err := parsePostal([]string{"8001", "00", "Zürich", "261"}, idx)
	require.NoError(t, err)
	assert.Equal(t, PostalCommunity{ZipCode: "8001", ZipCodeAddition: "00", Name: "Zürich", PoliticalCommunityNumber: "261"}, rec)

	rec, err = parsePostal([]string{"9999", "", "Nowhere", ""}, idx)
	require.NoError(t, err)
	assert.Empty(t, rec.PoliticalCommunityNumber)

	_, err = parsePostal([]string{"", "", "Nowhere", "1"}, idx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty zip code")
}
