package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/swissgeo/internal/model"
	"github.com/sells-group/swissgeo/internal/query"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// CantonSummary holds per-canton counts.
type CantonSummary struct {
	Code                 string `json:"code" yaml:"code"`
	Name                 string `json:"name" yaml:"name"`
	Districts            int    `json:"districts" yaml:"districts"`
	PoliticalCommunities int    `json:"political_communities" yaml:"political_communities"`
}

// Summary is the aggregate report over a model.
type Summary struct {
	Stats                    model.Stats     `json:"stats" yaml:"stats"`
	WithoutPostalCommunities int             `json:"without_postal_communities" yaml:"without_postal_communities"`
	Cantons                  []CantonSummary `json:"cantons" yaml:"cantons"`
}

// Summarize computes the aggregate report.
func Summarize(q *query.Service) Summary {
	m := q.Model()
	s := Summary{
		Stats:                    m.Stats(),
		WithoutPostalCommunities: q.CountPoliticalCommunitiesWithoutPostalCommunities(),
		Cantons:                  []CantonSummary{},
	}
	for _, c := range m.Cantons() {
		// A canton in the model always owns at least one district with one community.
		districts, _ := q.CountDistrictsInCanton(c.Code())
		communities, _ := q.CountPoliticalCommunitiesInCanton(c.Code())
		s.Cantons = append(s.Cantons, CantonSummary{
			Code:                 c.Code(),
			Name:                 c.Name(),
			Districts:            districts,
			PoliticalCommunities: communities,
		})
	}
	return s
}

// ValidFormat reports whether f is a supported output format.
func ValidFormat(f string) bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Encode writes v as JSON or YAML. Text output is handled by the callers
// that know the shape of v.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "report: encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "report: encode yaml")
		}
		return eris.Wrap(enc.Close(), "report: close yaml encoder")
	default:
		return eris.Errorf("report: unsupported format %q", format)
	}
}

// WriteSummary renders s in the given format.
func WriteSummary(out io.Writer, format string, s Summary) error {
	if format != FormatText {
		return Encode(out, format, s)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Cantons:\t%d\n", s.Stats.Cantons)
	_, _ = fmt.Fprintf(w, "Districts:\t%d\n", s.Stats.Districts)
	_, _ = fmt.Fprintf(w, "Political communities:\t%d\n", s.Stats.PoliticalCommunities)
	_, _ = fmt.Fprintf(w, "Postal communities:\t%d\n", s.Stats.PostalCommunities)
	_, _ = fmt.Fprintf(w, "Orphan postal communities:\t%d\n", s.Stats.Orphans)
	_, _ = fmt.Fprintf(w, "Without postal communities:\t%d\n", s.WithoutPostalCommunities)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "CODE\tCANTON\tDISTRICTS\tCOMMUNITIES")
	_, _ = fmt.Fprintln(w, "----\t------\t---------\t-----------")
	for _, c := range s.Cantons {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", c.Code, c.Name, c.Districts, c.PoliticalCommunities)
	}
	return eris.Wrap(w.Flush(), "report: flush")
}

// WriteCommunities renders political communities.
func WriteCommunities(out io.Writer, format string, pcs []*model.PoliticalCommunity) error {
	if format != FormatText {
		return Encode(out, format, Communities(pcs))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NUMBER\tNAME\tDISTRICT\tCANTON\tLAST UPDATE\tZIP CODES")
	_, _ = fmt.Fprintln(w, "------\t----\t--------\t------\t-----------\t---------")
	for _, v := range Communities(pcs) {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			v.Number, v.Name, v.DistrictName, v.CantonCode, v.LastUpdate, len(v.PostalCommunities))
	}
	return eris.Wrap(w.Flush(), "report: flush")
}

// WriteDistricts renders districts.
func WriteDistricts(out io.Writer, format string, ds []*model.District) error {
	if format != FormatText {
		return Encode(out, format, Districts(ds))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NUMBER\tNAME\tCANTON\tCOMMUNITIES")
	_, _ = fmt.Fprintln(w, "------\t----\t------\t-----------")
	for _, v := range Districts(ds) {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", v.Number, v.Name, v.CantonCode, v.PoliticalCommunities)
	}
	return eris.Wrap(w.Flush(), "report: flush")
}

// WriteNames renders a plain list of names.
func WriteNames(out io.Writer, format string, names []string) error {
	if format != FormatText {
		return Encode(out, format, names)
	}
	for _, n := range names {
		if _, err := fmt.Fprintln(out, n); err != nil {
			return eris.Wrap(err, "report: write")
		}
	}
	return nil
}
