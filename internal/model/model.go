package model

import "slices"

// Model is the immutable entity graph. Collections are returned as copies in
// first-occurrence order of their natural keys.
type Model struct {
	cantons   []*Canton
	districts []*District
	political []*PoliticalCommunity
	postal    []*PostalCommunity

	cantonByCode      map[string]*Canton
	districtByNumber  map[string]*District
	politicalByNumber map[string]*PoliticalCommunity
	postalByKey       map[PostalKey]*PostalCommunity
}

// Stats summarizes the size of a model.
type Stats struct {
	Cantons              int `json:"cantons" yaml:"cantons"`
	Districts            int `json:"districts" yaml:"districts"`
	PoliticalCommunities int `json:"political_communities" yaml:"political_communities"`
	PostalCommunities    int `json:"postal_communities" yaml:"postal_communities"`
	Orphans              int `json:"orphans" yaml:"orphans"`
}

// Cantons returns every canton referenced by a district.
func (m *Model) Cantons() []*Canton { return slices.Clone(m.cantons) }

// Districts returns every district referenced by a political community.
func (m *Model) Districts() []*District { return slices.Clone(m.districts) }

// PoliticalCommunities returns every political community.
func (m *Model) PoliticalCommunities() []*PoliticalCommunity { return slices.Clone(m.political) }

// PostalCommunities returns every postal community, orphans included.
func (m *Model) PostalCommunities() []*PostalCommunity { return slices.Clone(m.postal) }

// Canton looks up a canton by code.
func (m *Model) Canton(code string) (*Canton, bool) {
	c, ok := m.cantonByCode[code]
	return c, ok
}

// District looks up a district by number.
func (m *Model) District(number string) (*District, bool) {
	d, ok := m.districtByNumber[number]
	return d, ok
}

// PoliticalCommunity looks up a political community by number.
func (m *Model) PoliticalCommunity(number string) (*PoliticalCommunity, bool) {
	p, ok := m.politicalByNumber[number]
	return p, ok
}

// PostalCommunity looks up a postal community by zip code and addition.
func (m *Model) PostalCommunity(zipCode, addition string) (*PostalCommunity, bool) {
	p, ok := m.postalByKey[PostalKey{ZipCode: zipCode, Addition: addition}]
	return p, ok
}

// Orphans returns the postal communities without a political community.
func (m *Model) Orphans() []*PostalCommunity {
	var out []*PostalCommunity
	for _, p := range m.postal {
		if p.IsOrphan() {
			out = append(out, p)
		}
	}
	return out
}

// Stats returns collection sizes.
func (m *Model) Stats() Stats {
	return Stats{
		Cantons:              len(m.cantons),
		Districts:            len(m.districts),
		PoliticalCommunities: len(m.political),
		PostalCommunities:    len(m.postal),
		Orphans:              len(m.Orphans()),
	}
}
