package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/swissgeo/internal/config"
)

const politicalCSV = `number,name,short_name,last_update,district_number,district_name,canton_code,canton_name
261,Zürich,Zürich,2020-01-01,112,Bezirk Zürich,ZH,Zürich
230,Winterthur,Winterthur,2019-05-01,110,Bezirk Winterthur,ZH,Zürich
351,Bern,Bern,2018-01-01,246,Verwaltungskreis Bern-Mittelland,BE,Bern
`

const postalCSV = `zip_code,zip_code_addition,name,political_community_number
8001,0,Zürich,261
8400,0,Winterthur,230
8404,0,Winterthur,230
9999,0,Nowhere,999
`

// testConfig writes the fixture registers to a temp dir and points a config at them.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	gde := filepath.Join(dir, "gde.csv")
	plz := filepath.Join(dir, "plz.csv")
	require.NoError(t, os.WriteFile(gde, []byte(politicalCSV), 0o644))
	require.NoError(t, os.WriteFile(plz, []byte(postalCSV), 0o644))

	return &config.Config{
		Data: config.DataConfig{
			Dir:       dir,
			Political: config.SourceConfig{Path: gde, Delimiter: ",", Charset: "utf-8"},
			Postal:    config.SourceConfig{Path: plz, Delimiter: ",", Charset: "utf-8"},
		},
		Fetch:  config.FetchConfig{TimeoutSecs: 5, MaxRetries: 1, RatePerSec: 100, UserAgent: "swissgeo-test"},
		Server: config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
		Log:    config.LogConfig{Level: "info", Format: "json"},
	}
}

// withFormat sets the output format for the duration of a test.
func withFormat(t *testing.T, f string) {
	t.Helper()
	old := outputFormat
	outputFormat = f
	t.Cleanup(func() { outputFormat = old })
}
