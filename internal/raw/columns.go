package raw

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// column maps a record field to the header labels it may appear under.
// English labels come first, then the official register labels.
type column struct {
	field    string
	aliases  []string
	required bool
}

const (
	colNumber         = "number"
	colName           = "name"
	colShortName      = "short_name"
	colLastUpdate     = "last_update"
	colDistrictNumber = "district_number"
	colDistrictName   = "district_name"
	colCantonCode     = "canton_code"
	colCantonName     = "canton_name"
	colZipCode        = "zip_code"
	colZipAddition    = "zip_code_addition"
	colForeignKey     = "political_community_number"
)

var politicalColumns = []column{
	{field: colNumber, aliases: []string{"number", "gdenr", "bfsnr", "bfsgdenr", "gemeindenummer"}, required: true},
	{field: colName, aliases: []string{"name", "gdename", "gemeindename"}, required: true},
	{field: colShortName, aliases: []string{"shortname", "gdenamk", "gemeindenamekurz"}},
	{field: colLastUpdate, aliases: []string{"lastupdate", "gdemutdat", "mutationsdatum", "datumdermutation"}},
	{field: colDistrictNumber, aliases: []string{"districtnumber", "gdebznr", "bezirksnummer", "bezirknr"}, required: true},
	{field: colDistrictName, aliases: []string{"districtname", "gdebzna", "bezirksname"}, required: true},
	{field: colCantonCode, aliases: []string{"cantoncode", "gdekt", "kantonskurzel", "kanton"}, required: true},
	{field: colCantonName, aliases: []string{"cantonname", "gdektna", "kantonsname"}, required: true},
}

var postalColumns = []column{
	{field: colZipCode, aliases: []string{"zipcode", "plz4", "plz", "postleitzahl"}, required: true},
	{field: colZipAddition, aliases: []string{"zipcodeaddition", "plzz", "zusatzziffer", "plzzusatz"}},
	{field: colName, aliases: []string{"name", "plznamk", "ortbez27", "ortschaftsname"}, required: true},
	{field: colForeignKey, aliases: []string{"politicalcommunitynumber", "gdenr", "bfsnr", "gemeindenummer"}, required: true},
}

// normalizeCol folds case, strips accents and drops everything that is not a
// letter or digit: "Kantonskürzel" → "kantonskurzel", "BFS-Nr" → "bfsnr".
func normalizeCol(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// columnIndex maps a field to its position in a row.
type columnIndex map[string]int

// matchHeader resolves cols against a header row. It returns the fields of
// required columns that could not be found.
func matchHeader(header []string, cols []column) (columnIndex, []string) {
	positions := make(map[string]int, len(header))
	for i, label := range header {
		key := normalizeCol(label)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	idx := make(columnIndex, len(cols))
	var missing []string
	for _, c := range cols {
		found := false
		for _, alias := range c.aliases {
			if i, ok := positions[alias]; ok {
				idx[c.field] = i
				found = true
				break
			}
		}
		if !found && c.required {
			missing = append(missing, c.field)
		}
	}
	return idx, missing
}

// get returns the trimmed value of field, or "" if the column is absent.
func (idx columnIndex) get(row []string, field string) string {
	i, ok := idx[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var dateLayouts = []string{
	"2006-01-02",
	"2.1.2006",
	time.RFC3339,
	"01-02-06",
}

// excelEpoch is day zero of spreadsheet serial dates.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// parseDate accepts ISO-8601, Swiss dotted dates and spreadsheet serial
// numbers. An empty value yields the zero time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.Atoi(s); err == nil && serial > 0 && serial < 2958466 {
		return excelEpoch.AddDate(0, 0, serial), nil
	}
	return time.Time{}, eris.Errorf("unparseable date %q", s)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
