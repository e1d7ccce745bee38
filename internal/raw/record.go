// Package raw reads the political-community and postal-community source
// tables into flat typed records. Records are not deduplicated and carry the
// political community number of postal records as a plain foreign-key string.
package raw

import "time"

// PoliticalCommunity is one row of the municipality register.
type PoliticalCommunity struct {
	Number         string    `json:"number"`
	Name           string    `json:"name"`
	ShortName      string    `json:"short_name"`
	LastUpdate     time.Time `json:"last_update"`
	DistrictNumber string    `json:"district_number"`
	DistrictName   string    `json:"district_name"`
	CantonCode     string    `json:"canton_code"`
	CantonName     string    `json:"canton_name"`
}

// PostalCommunity is one row of the zip-code register.
type PostalCommunity struct {
	ZipCode                  string `json:"zip_code"`
	ZipCodeAddition          string `json:"zip_code_addition"`
	Name                     string `json:"name"`
	PoliticalCommunityNumber string `json:"political_community_number"`
}
