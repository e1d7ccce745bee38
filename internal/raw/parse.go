package raw

import (
	"github.com/rotisserie/eris"
)

// parsePolitical builds a PoliticalCommunity from a data row. Key columns
// must be non-empty and the last-update date must parse if present.
func parsePolitical(row []string, idx columnIndex) (PoliticalCommunity, error) {
	rec := PoliticalCommunity{
		Number:         idx.get(row, colNumber),
		Name:           idx.get(row, colName),
		ShortName:      idx.get(row, colShortName),
		DistrictNumber: idx.get(row, colDistrictNumber),
		DistrictName:   idx.get(row, colDistrictName),
		CantonCode:     idx.get(row, colCantonCode),
		CantonName:     idx.get(row, colCantonName),
	}

	switch {
	case rec.Number == "":
		return rec, eris.New("empty political community number")
	case rec.DistrictNumber == "":
		return rec, eris.Errorf("political community %s: empty district number", rec.Number)
	case rec.CantonCode == "":
		return rec, eris.Errorf("political community %s: empty canton code", rec.Number)
	}

	updated, err := parseDate(idx.get(row, colLastUpdate))
	if err != nil {
		return rec, eris.Wrapf(err, "political community %s", rec.Number)
	}
	rec.LastUpdate = updated

	if rec.ShortName == "" {
		rec.ShortName = rec.Name
	}
	return rec, nil
}

// parsePostal builds a PostalCommunity from a data row. The zip code must be
// non-empty; an empty foreign key is kept and later yields an orphan.
func parsePostal(row []string, idx columnIndex) (PostalCommunity, error) {
	rec := PostalCommunity{
		ZipCode:                  idx.get(row, colZipCode),
		ZipCodeAddition:          idx.get(row, colZipAddition),
		Name:                     idx.get(row, colName),
		PoliticalCommunityNumber: idx.get(row, colForeignKey),
	}
	if rec.ZipCode == "" {
		return rec, eris.New("empty zip code")
	}
	return rec, nil
}
