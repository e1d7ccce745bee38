// Package report renders the model and query results as text, JSON or YAML.
package report

import (
	"github.com/sells-group/swissgeo/internal/model"
)

// DateLayout is the output layout of last-update dates.
const DateLayout = "2006-01-02"

// CantonView is the serialized form of a canton.
type CantonView struct {
	Code      string `json:"code" yaml:"code"`
	Name      string `json:"name" yaml:"name"`
	Districts int    `json:"districts" yaml:"districts"`
}

// DistrictView is the serialized form of a district.
type DistrictView struct {
	Number               string `json:"number" yaml:"number"`
	Name                 string `json:"name" yaml:"name"`
	CantonCode           string `json:"canton_code" yaml:"canton_code"`
	PoliticalCommunities int    `json:"political_communities" yaml:"political_communities"`
}

// PostalView is the serialized form of a postal community.
type PostalView struct {
	ZipCode                  string `json:"zip_code" yaml:"zip_code"`
	ZipCodeAddition          string `json:"zip_code_addition,omitempty" yaml:"zip_code_addition,omitempty"`
	Name                     string `json:"name" yaml:"name"`
	PoliticalCommunityNumber string `json:"political_community_number,omitempty" yaml:"political_community_number,omitempty"`
}

// CommunityView is the serialized form of a political community.
type CommunityView struct {
	Number            string       `json:"number" yaml:"number"`
	Name              string       `json:"name" yaml:"name"`
	ShortName         string       `json:"short_name" yaml:"short_name"`
	LastUpdate        string       `json:"last_update,omitempty" yaml:"last_update,omitempty"`
	DistrictNumber    string       `json:"district_number" yaml:"district_number"`
	DistrictName      string       `json:"district_name" yaml:"district_name"`
	CantonCode        string       `json:"canton_code" yaml:"canton_code"`
	PostalCommunities []PostalView `json:"postal_communities" yaml:"postal_communities"`
}

// Canton converts a canton.
func Canton(c *model.Canton) CantonView {
	return CantonView{Code: c.Code(), Name: c.Name(), Districts: len(c.Districts())}
}

// Cantons converts a list of cantons.
func Cantons(cs []*model.Canton) []CantonView {
	out := make([]CantonView, 0, len(cs))
	for _, c := range cs {
		out = append(out, Canton(c))
	}
	return out
}

// District converts a district.
func District(d *model.District) DistrictView {
	return DistrictView{
		Number:               d.Number(),
		Name:                 d.Name(),
		CantonCode:           d.Canton().Code(),
		PoliticalCommunities: len(d.PoliticalCommunities()),
	}
}

// Districts converts a list of districts.
func Districts(ds []*model.District) []DistrictView {
	out := make([]DistrictView, 0, len(ds))
	for _, d := range ds {
		out = append(out, District(d))
	}
	return out
}

// Postal converts a postal community.
func Postal(p *model.PostalCommunity) PostalView {
	v := PostalView{ZipCode: p.ZipCode(), ZipCodeAddition: p.ZipCodeAddition(), Name: p.Name()}
	if pc := p.PoliticalCommunity(); pc != nil {
		v.PoliticalCommunityNumber = pc.Number()
	}
	return v
}

// Postals converts a list of postal communities.
func Postals(ps []*model.PostalCommunity) []PostalView {
	out := make([]PostalView, 0, len(ps))
	for _, p := range ps {
		out = append(out, Postal(p))
	}
	return out
}

// Community converts a political community.
func Community(pc *model.PoliticalCommunity) CommunityView {
	v := CommunityView{
		Number:            pc.Number(),
		Name:              pc.Name(),
		ShortName:         pc.ShortName(),
		DistrictNumber:    pc.District().Number(),
		DistrictName:      pc.District().Name(),
		CantonCode:        pc.Canton().Code(),
		PostalCommunities: Postals(pc.PostalCommunities()),
	}
	if !pc.LastUpdate().IsZero() {
		v.LastUpdate = pc.LastUpdate().Format(DateLayout)
	}
	return v
}

// Communities converts a list of political communities.
func Communities(pcs []*model.PoliticalCommunity) []CommunityView {
	out := make([]CommunityView, 0, len(pcs))
	for _, pc := range pcs {
		out = append(out, Community(pc))
	}
	return out
}
