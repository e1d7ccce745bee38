package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/swissgeo/internal/model"
	"github.com/sells-group/swissgeo/internal/query"
	"github.com/sells-group/swissgeo/internal/raw"
	"github.com/sells-group/swissgeo/internal/report"
)

func testRouter() http.Handler {
	m := model.Build(
		[]raw.PoliticalCommunity{
			{Number: "261", Name: "Zürich", ShortName: "Zürich", LastUpdate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				DistrictNumber: "112", DistrictName: "Bezirk Zürich", CantonCode: "ZH", CantonName: "Zürich"},
			{Number: "230", Name: "Winterthur", ShortName: "Winterthur",
				DistrictNumber: "110", DistrictName: "Bezirk Winterthur", CantonCode: "ZH", CantonName: "Zürich"},
			{Number: "351", Name: "Bern", ShortName: "Bern",
				DistrictNumber: "246", DistrictName: "Bern-Mittelland", CantonCode: "BE", CantonName: "Bern"},
		},
		[]raw.PostalCommunity{
			{ZipCode: "8001", ZipCodeAddition: "0", Name: "Zürich", PoliticalCommunityNumber: "261"},
			{ZipCode: "8400", ZipCodeAddition: "0", Name: "Winterthur", PoliticalCommunityNumber: "230"},
			{ZipCode: "9999", ZipCodeAddition: "0", Name: "Nowhere", PoliticalCommunityNumber: "999"},
		},
	)
	return newRouter(query.New(m), []string{"*"})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServeCmd_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	require.NotNil(t, serveCmd.Flags().Lookup("port"))
}

func TestRouter_Health(t *testing.T) {
	w := get(t, testRouter(), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_Stats(t *testing.T) {
	w := get(t, testRouter(), "/v1/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var s report.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, 2, s.Stats.Cantons)
	assert.Equal(t, 1, s.Stats.Orphans)
	assert.Equal(t, 1, s.WithoutPostalCommunities)
}

func TestRouter_Cantons(t *testing.T) {
	w := get(t, testRouter(), "/v1/cantons")
	require.Equal(t, http.StatusOK, w.Code)

	var cs []report.CantonView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cs))
	require.Len(t, cs, 2)
	assert.Equal(t, "ZH", cs[0].Code)
	assert.Equal(t, 2, cs[0].Districts)
	assert.Equal(t, "BE", cs[1].Code)
}

func TestRouter_CantonDistricts(t *testing.T) {
	h := testRouter()

	w := get(t, h, "/v1/cantons/ZH/districts")
	require.Equal(t, http.StatusOK, w.Code)
	var ds []report.DistrictView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ds))
	require.Len(t, ds, 2)
	assert.Equal(t, "112", ds[0].Number)

	w = get(t, h, "/v1/cantons/TI/districts")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "nothing found")
}

func TestRouter_CantonCommunities(t *testing.T) {
	h := testRouter()

	w := get(t, h, "/v1/cantons/BE/communities")
	require.Equal(t, http.StatusOK, w.Code)
	var pcs []report.CommunityView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pcs))
	require.Len(t, pcs, 1)
	assert.Equal(t, "351", pcs[0].Number)
	assert.Empty(t, pcs[0].PostalCommunities)

	w = get(t, h, "/v1/cantons/TI/communities")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_DistrictCommunities(t *testing.T) {
	h := testRouter()

	w := get(t, h, "/v1/districts/112/communities")
	require.Equal(t, http.StatusOK, w.Code)
	var pcs []report.CommunityView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pcs))
	require.Len(t, pcs, 1)
	assert.Equal(t, "Zürich", pcs[0].Name)
	assert.Equal(t, "2020-01-01", pcs[0].LastUpdate)
	require.Len(t, pcs[0].PostalCommunities, 1)
	assert.Equal(t, "8001", pcs[0].PostalCommunities[0].ZipCode)

	w = get(t, h, "/v1/districts/000/communities")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ZipDistricts(t *testing.T) {
	h := testRouter()

	w := get(t, h, "/v1/zip/8400/districts")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Bezirk Winterthur"]`, w.Body.String())

	// Orphans serve no district; the answer is an empty list, not 404.
	w = get(t, h, "/v1/zip/9999/districts")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_LastUpdate(t *testing.T) {
	h := testRouter()

	w := get(t, h, "/v1/postal/"+url.PathEscape("Zürich")+"/last-update")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Zürich","last_update":"2020-01-01"}`, w.Body.String())

	w = get(t, h, "/v1/postal/Nowhere/last-update")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/cantons", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/cantons", nil)
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
