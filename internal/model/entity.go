// Package model holds the canton → district → political community → postal
// community graph and the builder that derives it from raw records.
//
// Entities are identified by their natural key only. All fields are
// unexported; a graph returned by Build cannot be changed by callers.
package model

import (
	"fmt"
	"slices"
	"time"
)

// Canton is a top-level Swiss administrative region, keyed by its code (e.g. "ZH").
type Canton struct {
	code      string
	name      string
	districts []*District
}

// Key returns the natural key of the canton.
func (c *Canton) Key() string { return c.code }

// Code returns the canton code.
func (c *Canton) Code() string { return c.code }

// Name returns the canton name.
func (c *Canton) Name() string { return c.name }

// Districts returns the districts belonging to this canton in build order.
func (c *Canton) Districts() []*District { return slices.Clone(c.districts) }

func (c *Canton) String() string { return fmt.Sprintf("%s (%s)", c.name, c.code) }

// District is a subdivision of a canton, keyed by its number.
type District struct {
	number      string
	name        string
	canton      *Canton
	communities []*PoliticalCommunity
}

// Key returns the natural key of the district.
func (d *District) Key() string { return d.number }

// Number returns the district number.
func (d *District) Number() string { return d.number }

// Name returns the district name.
func (d *District) Name() string { return d.name }

// Canton returns the owning canton. Never nil.
func (d *District) Canton() *Canton { return d.canton }

// PoliticalCommunities returns the political communities of this district in build order.
func (d *District) PoliticalCommunities() []*PoliticalCommunity {
	return slices.Clone(d.communities)
}

func (d *District) String() string { return fmt.Sprintf("%s (%s)", d.name, d.number) }

// PoliticalCommunity is a municipality, keyed by its number.
type PoliticalCommunity struct {
	number     string
	name       string
	shortName  string
	lastUpdate time.Time
	district   *District
	postal     []*PostalCommunity
}

// Key returns the natural key of the political community.
func (p *PoliticalCommunity) Key() string { return p.number }

// Number returns the political community number.
func (p *PoliticalCommunity) Number() string { return p.number }

// Name returns the political community name.
func (p *PoliticalCommunity) Name() string { return p.name }

// ShortName returns the abbreviated name.
func (p *PoliticalCommunity) ShortName() string { return p.shortName }

// LastUpdate returns the date of the last mutation of this community.
func (p *PoliticalCommunity) LastUpdate() time.Time { return p.lastUpdate }

// District returns the owning district. Never nil.
func (p *PoliticalCommunity) District() *District { return p.district }

// Canton returns the canton of the owning district.
func (p *PoliticalCommunity) Canton() *Canton { return p.district.canton }

// PostalCommunities returns the postal communities served by this community.
func (p *PoliticalCommunity) PostalCommunities() []*PostalCommunity {
	return slices.Clone(p.postal)
}

// HasPostalCommunities reports whether at least one postal community references this community.
func (p *PoliticalCommunity) HasPostalCommunities() bool { return len(p.postal) > 0 }

func (p *PoliticalCommunity) String() string { return fmt.Sprintf("%s (%s)", p.name, p.number) }

// PostalKey is the natural key of a postal community. Two postal areas may
// share a display name, so the name is not part of the key.
type PostalKey struct {
	ZipCode  string
	Addition string
}

func (k PostalKey) String() string {
	if k.Addition == "" {
		return k.ZipCode
	}
	return k.ZipCode + "-" + k.Addition
}

// PostalCommunity is a named zip-code area.
type PostalCommunity struct {
	zipCode   string
	addition  string
	name      string
	political *PoliticalCommunity
}

// Key returns the (zip code, addition) natural key.
func (p *PostalCommunity) Key() PostalKey {
	return PostalKey{ZipCode: p.zipCode, Addition: p.addition}
}

// ZipCode returns the four digit zip code.
func (p *PostalCommunity) ZipCode() string { return p.zipCode }

// ZipCodeAddition returns the zip code addition, possibly empty.
func (p *PostalCommunity) ZipCodeAddition() string { return p.addition }

// Name returns the postal community name.
func (p *PostalCommunity) Name() string { return p.name }

// PoliticalCommunity returns the owning political community, or nil for an orphan.
func (p *PostalCommunity) PoliticalCommunity() *PoliticalCommunity { return p.political }

// IsOrphan reports whether the postal record's foreign key matched no political community.
func (p *PostalCommunity) IsOrphan() bool { return p.political == nil }

func (p *PostalCommunity) String() string { return fmt.Sprintf("%s %s", p.Key(), p.name) }
