package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/swissgeo/internal/raw"
)

func TestPostalKeyString(t *testing.T) {
	assert.Equal(t, "8001", PostalKey{ZipCode: "8001"}.String())
	assert.Equal(t, "8001-02", PostalKey{ZipCode: "8001", Addition: "02"}.String())
}

func TestEntityAccessors(t *testing.T) {
	m := Build(
		[]raw.PoliticalCommunity{political("261", "Zürich", "110", "Bezirk Zürich", "ZH", "Kanton Zürich")},
		[]raw.PostalCommunity{postal("8001", "02", "Zürich", "261")},
	)

	pc, ok := m.PoliticalCommunity("261")
	require.True(t, ok)
	assert.Equal(t, "Zürich", pc.Name())
	assert.Equal(t, "Zürich", pc.ShortName())
	assert.Equal(t, 2024, pc.LastUpdate().Year())
	assert.Equal(t, "Zürich (261)", pc.String())
	assert.Equal(t, "Bezirk Zürich (110)", pc.District().String())
	assert.Equal(t, "Kanton Zürich (ZH)", pc.Canton().String())
	assert.Equal(t, "Kanton Zürich", pc.Canton().Name())

	p := pc.PostalCommunities()[0]
	assert.Equal(t, "8001", p.ZipCode())
	assert.Equal(t, "02", p.ZipCodeAddition())
	assert.Equal(t, "8001-02 Zürich", p.String())
	assert.False(t, p.IsOrphan())
}
