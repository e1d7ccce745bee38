package model

import (
	"github.com/sells-group/swissgeo/internal/raw"
)

// Build derives the entity graph from the two raw record sets.
//
// Duplicate natural keys among postal records (zip code, addition) and among
// political records (number) resolve to the last record seen; the entity keeps
// the position of the first occurrence. Districts and cantons take name and
// parent from the first political community that references them. Postal
// records whose foreign key matches no political community are kept as
// orphans with a nil parent.
//
// Build never fails and has no side effects. Output is a function of input
// order only.
func Build(political []raw.PoliticalCommunity, postal []raw.PostalCommunity) *Model {
	postalList, byForeignKey := groupPostal(postal)

	m := &Model{
		postal:            postalList,
		cantonByCode:      make(map[string]*Canton),
		districtByNumber:  make(map[string]*District),
		politicalByNumber: make(map[string]*PoliticalCommunity, len(political)),
		postalByKey:       make(map[PostalKey]*PostalCommunity, len(postalList)),
	}
	for _, p := range postalList {
		m.postalByKey[p.Key()] = p
	}

	for _, rec := range latestPolitical(political) {
		d := m.districtFor(rec)
		pc := &PoliticalCommunity{
			number:     rec.Number,
			name:       rec.Name,
			shortName:  rec.ShortName,
			lastUpdate: rec.LastUpdate,
			district:   d,
			postal:     byForeignKey[rec.Number],
		}
		for _, p := range pc.postal {
			p.political = pc
		}
		d.communities = append(d.communities, pc)
		m.political = append(m.political, pc)
		m.politicalByNumber[pc.number] = pc
	}

	return m
}

// groupPostal deduplicates postal records by key and groups the canonical
// instances by the raw political community number they reference.
func groupPostal(records []raw.PostalCommunity) ([]*PostalCommunity, map[string][]*PostalCommunity) {
	byKey := make(map[PostalKey]*PostalCommunity, len(records))
	foreignKey := make(map[PostalKey]string, len(records))
	var order []*PostalCommunity

	for _, rec := range records {
		key := PostalKey{ZipCode: rec.ZipCode, Addition: rec.ZipCodeAddition}
		p, ok := byKey[key]
		if !ok {
			p = &PostalCommunity{zipCode: rec.ZipCode, addition: rec.ZipCodeAddition}
			byKey[key] = p
			order = append(order, p)
		}
		p.name = rec.Name
		foreignKey[key] = rec.PoliticalCommunityNumber
	}

	groups := make(map[string][]*PostalCommunity)
	for _, p := range order {
		fk := foreignKey[p.Key()]
		groups[fk] = append(groups[fk], p)
	}
	return order, groups
}

// latestPolitical returns one record per number, the last one seen, ordered by
// first occurrence.
func latestPolitical(records []raw.PoliticalCommunity) []raw.PoliticalCommunity {
	index := make(map[string]int, len(records))
	var out []raw.PoliticalCommunity
	for _, rec := range records {
		if i, ok := index[rec.Number]; ok {
			out[i] = rec
			continue
		}
		index[rec.Number] = len(out)
		out = append(out, rec)
	}
	return out
}

// districtFor returns the shared district for rec, creating it and, if needed,
// its canton on first sight. A canton is only ever created together with a
// district so the canton set stays exactly the cantons of the districts.
func (m *Model) districtFor(rec raw.PoliticalCommunity) *District {
	if d, ok := m.districtByNumber[rec.DistrictNumber]; ok {
		return d
	}

	c, ok := m.cantonByCode[rec.CantonCode]
	if !ok {
		c = &Canton{code: rec.CantonCode, name: rec.CantonName}
		m.cantonByCode[c.code] = c
		m.cantons = append(m.cantons, c)
	}

	d := &District{number: rec.DistrictNumber, name: rec.DistrictName, canton: c}
	c.districts = append(c.districts, d)
	m.districtByNumber[d.number] = d
	m.districts = append(m.districts, d)
	return d
}
