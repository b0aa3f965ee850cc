// Package geo resolves sparse, possibly partial location candidates into
// normalized bilingual records using a read-only gazetteer, a static
// translation table, and a curated neighborhood set.
package geo

import (
	"sort"
	"strings"

	"github.com/kavehram/ganjine/internal/core/domain"
)

// Gazetteer is the in-memory place-name index built once from the offline
// ingestion. It is read-only after construction and safe for concurrent use.
type Gazetteer struct {
	byLocal   map[string]domain.GazetteerEntry
	provinces map[string][]domain.GazetteerEntry
}

// NewGazetteer builds the index. Settlement rows are inserted before all
// province rows, settlements are ordered by population (descending), and
// first-inserted-wins per name. This makes a well-known city shadow an
// obscure namesake, and makes an ambiguous name that is both a city and a
// province resolve to the city even when the province row carries the
// larger population figure (ADM1 rows count the whole province).
func NewGazetteer(entries []domain.GazetteerEntry) *Gazetteer {
	ordered := make([]domain.GazetteerEntry, len(entries))
	copy(ordered, entries)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		if (a.AdminLevel == domain.AdminLevelProvince) != (b.AdminLevel == domain.AdminLevelProvince) {
			return b.AdminLevel == domain.AdminLevelProvince
		}

		if a.Population != b.Population {
			return a.Population > b.Population
		}

		return a.AdminLevel < b.AdminLevel
	})

	g := &Gazetteer{
		byLocal:   make(map[string]domain.GazetteerEntry, len(ordered)),
		provinces: make(map[string][]domain.GazetteerEntry),
	}

	for _, e := range ordered {
		if _, exists := g.byLocal[e.LocalName]; !exists {
			g.byLocal[e.LocalName] = e
		}

		if e.AdminLevel == domain.AdminLevelProvince && e.ProvinceCode != "" {
			g.provinces[e.ProvinceCode] = append(g.provinces[e.ProvinceCode], e)
		}
	}

	return g
}

// LocalNames returns all distinct local names in the index.
func (g *Gazetteer) LocalNames() []string {
	names := make([]string, 0, len(g.byLocal))
	for name := range g.byLocal {
		names = append(names, name)
	}

	return names
}

// Len returns the number of distinct local names in the index.
func (g *Gazetteer) Len() int {
	return len(g.byLocal)
}

// ByLocalName returns the highest-priority entry for an exact local name.
func (g *Gazetteer) ByLocalName(name string) (domain.GazetteerEntry, bool) {
	e, ok := g.byLocal[name]
	return e, ok
}

// ProvinceForCity reverse-looks-up a city's province: the city's province
// code leads to that code's canonical province entry.
func (g *Gazetteer) ProvinceForCity(city string) (domain.ProvinceInfo, bool) {
	e, ok := g.byLocal[city]
	if !ok || e.ProvinceCode == "" {
		return domain.ProvinceInfo{}, false
	}

	return g.provinceByCode(e.ProvinceCode)
}

// provinceByCode selects the canonical province entry for a code: entries
// whose local name carries the provincial-name prefix are preferred, and
// among those the shortest name wins.
func (g *Gazetteer) provinceByCode(code string) (domain.ProvinceInfo, bool) {
	candidates := g.provinces[code]
	if len(candidates) == 0 {
		return domain.ProvinceInfo{}, false
	}

	best := candidates[0]
	bestPrefixed := strings.HasPrefix(best.LocalName, provincePrefix)

	for _, c := range candidates[1:] {
		prefixed := strings.HasPrefix(c.LocalName, provincePrefix)

		switch {
		case prefixed && !bestPrefixed:
			best, bestPrefixed = c, true
		case prefixed == bestPrefixed && len(c.LocalName) < len(best.LocalName):
			best = c
		}
	}

	return domain.ProvinceInfo{NameFa: best.LocalName, NameEn: best.ForeignName, Code: code}, true
}
