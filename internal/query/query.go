// Package query answers aggregate questions over a built model by linear scan.
//
// Counting queries whose answer is expected to be non-empty return
// ErrNotFound when nothing matches. Queries that may legitimately be empty
// return an empty result and no error.
package query

import (
	"slices"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/swissgeo/internal/model"
)

// ErrNotFound reports that a query expected at least one match and found none.
var ErrNotFound = eris.New("nothing found, value expected")

// Service runs queries against one immutable model. Safe for concurrent use.
type Service struct {
	model *model.Model
}

// New creates a Service over m.
func New(m *model.Model) *Service {
	return &Service{model: m}
}

// Model returns the underlying model.
func (s *Service) Model() *model.Model { return s.model }

// CountPoliticalCommunitiesInCanton counts political communities in the canton with the given code.
func (s *Service) CountPoliticalCommunitiesInCanton(cantonCode string) (int, error) {
	n, err := countOrErr(s.model.PoliticalCommunities(), func(pc *model.PoliticalCommunity) bool {
		return pc.Canton().Code() == cantonCode
	})
	return n, eris.Wrapf(err, "query: political communities in canton %q", cantonCode)
}

// CountDistrictsInCanton counts districts in the canton with the given code.
func (s *Service) CountDistrictsInCanton(cantonCode string) (int, error) {
	n, err := countOrErr(s.model.Districts(), func(d *model.District) bool {
		return d.Canton().Code() == cantonCode
	})
	return n, eris.Wrapf(err, "query: districts in canton %q", cantonCode)
}

// CountPoliticalCommunitiesInDistrict counts political communities in the district with the given number.
func (s *Service) CountPoliticalCommunitiesInDistrict(districtNumber string) (int, error) {
	n, err := countOrErr(s.model.PoliticalCommunities(), func(pc *model.PoliticalCommunity) bool {
		return pc.District().Number() == districtNumber
	})
	return n, eris.Wrapf(err, "query: political communities in district %q", districtNumber)
}

// PoliticalCommunitiesInCanton returns the political communities of a canton, possibly none.
func (s *Service) PoliticalCommunitiesInCanton(cantonCode string) []*model.PoliticalCommunity {
	return filter(s.model.PoliticalCommunities(), func(pc *model.PoliticalCommunity) bool {
		return pc.Canton().Code() == cantonCode
	})
}

// PoliticalCommunitiesInDistrict returns the political communities of a district, possibly none.
func (s *Service) PoliticalCommunitiesInDistrict(districtNumber string) []*model.PoliticalCommunity {
	return filter(s.model.PoliticalCommunities(), func(pc *model.PoliticalCommunity) bool {
		return pc.District().Number() == districtNumber
	})
}

// DistrictsInCanton returns the districts of a canton, possibly none.
func (s *Service) DistrictsInCanton(cantonCode string) []*model.District {
	return filter(s.model.Districts(), func(d *model.District) bool {
		return d.Canton().Code() == cantonCode
	})
}

// DistrictNamesForZipCode returns the sorted, distinct names of the districts
// whose political communities serve zipCode. Orphan postal communities
// contribute nothing.
func (s *Service) DistrictNamesForZipCode(zipCode string) []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, pc := range s.model.PoliticalCommunities() {
		served := slices.ContainsFunc(pc.PostalCommunities(), func(p *model.PostalCommunity) bool {
			return p.ZipCode() == zipCode
		})
		if !served {
			continue
		}
		name := pc.District().Name()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LastUpdateByPostalCommunityName returns the last-update date of the first
// political community, in model order, that owns a postal community with the
// given name. Several postal communities may share a name; only the first
// match is reported.
func (s *Service) LastUpdateByPostalCommunityName(name string) (time.Time, error) {
	for _, pc := range s.model.PoliticalCommunities() {
		owns := slices.ContainsFunc(pc.PostalCommunities(), func(p *model.PostalCommunity) bool {
			return p.Name() == name
		})
		if owns {
			return pc.LastUpdate(), nil
		}
	}
	return time.Time{}, eris.Wrapf(ErrNotFound, "query: last update for postal community %q", name)
}

// CountCantons returns the number of cantons. Zero is a valid answer.
func (s *Service) CountCantons() int {
	return len(s.model.Cantons())
}

// CountPoliticalCommunitiesWithoutPostalCommunities counts political
// communities no postal record references. Zero is a valid answer.
func (s *Service) CountPoliticalCommunitiesWithoutPostalCommunities() int {
	n := 0
	for _, pc := range s.model.PoliticalCommunities() {
		if !pc.HasPostalCommunities() {
			n++
		}
	}
	return n
}

// CountOrphanPostalCommunities counts postal communities without a political community.
func (s *Service) CountOrphanPostalCommunities() int {
	return len(s.model.Orphans())
}

func filter[T any](items []T, match func(T) bool) []T {
	out := []T{}
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

func countOrErr[T any](items []T, match func(T) bool) (int, error) {
	n := 0
	for _, it := range items {
		if match(it) {
			n++
		}
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n, nil
}
