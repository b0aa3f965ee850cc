package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavehram/ganjine/internal/core/domain"
)

func testGazetteer() *Gazetteer {
	return NewGazetteer([]domain.GazetteerEntry{
		// Province row inserted before the city row on purpose: priority
		// ordering, not insertion order, must decide the winner.
		{LocalName: "تهران", ForeignName: "Tehran Province", Latitude: 35.5, Longitude: 51.6, Population: 0, AdminLevel: domain.AdminLevelProvince, ProvinceCode: "26"},
		{LocalName: "استان تهران", ForeignName: "Tehran Province", Latitude: 35.5, Longitude: 51.6, Population: 0, AdminLevel: domain.AdminLevelProvince, ProvinceCode: "26"},
		{LocalName: "تهران", ForeignName: "Tehran", Latitude: 35.6892, Longitude: 51.3890, Population: 8846782, AdminLevel: domain.AdminLevelMajorCity, ProvinceCode: "26"},
		{LocalName: "ونک", ForeignName: "Vanak", Latitude: 35.7575, Longitude: 51.4104, Population: 0, AdminLevel: domain.AdminLevelNeighborhood, ProvinceCode: "26"},
		{LocalName: "اصفهان", ForeignName: "Isfahan", Latitude: 32.6546, Longitude: 51.6680, Population: 1961260, AdminLevel: domain.AdminLevelMajorCity, ProvinceCode: "28"},
		{LocalName: "استان اصفهان", ForeignName: "Isfahan Province", Latitude: 32.5, Longitude: 51.5, Population: 0, AdminLevel: domain.AdminLevelProvince, ProvinceCode: "28"},
		{LocalName: "شهرستان اصفهان", ForeignName: "Isfahan County", Latitude: 32.5, Longitude: 51.5, Population: 0, AdminLevel: domain.AdminLevelProvince, ProvinceCode: "28"},
		// Two same-named towns; the bigger one must shadow the smaller.
		{LocalName: "آباده", ForeignName: "Abadeh (small)", Latitude: 30.0, Longitude: 52.0, Population: 100, AdminLevel: domain.AdminLevelCity, ProvinceCode: "07"},
		{LocalName: "آباده", ForeignName: "Abadeh", Latitude: 31.1608, Longitude: 52.6506, Population: 59042, AdminLevel: domain.AdminLevelCity, ProvinceCode: "07"},
		{LocalName: "استان فارس", ForeignName: "Fars Province", Latitude: 29.6, Longitude: 52.5, Population: 0, AdminLevel: domain.AdminLevelProvince, ProvinceCode: "07"},
	})
}

func newTestResolver() *Resolver {
	return NewResolver(testGazetteer(), "تهران", "Tehran")
}

func TestAmbiguousNameResolvesToCity(t *testing.T) {
	g := testGazetteer()

	e, ok := g.ByLocalName("تهران")
	require.True(t, ok)
	assert.Equal(t, domain.AdminLevelMajorCity, e.AdminLevel)
	assert.Equal(t, "Tehran", e.ForeignName)
}

func TestCapitalShadowsMorePopulousProvinceRow(t *testing.T) {
	// Real dump figures: the ADM1 row counts the whole province and
	// outpopulates the city row. The city must still win the lookup.
	g := NewGazetteer([]domain.GazetteerEntry{
		{LocalName: "تهران", ForeignName: "Tehran Province", Latitude: 35.5, Longitude: 51.6, Population: 13267637, AdminLevel: domain.AdminLevelProvince, ProvinceCode: "26"},
		{LocalName: "استان تهران", ForeignName: "Tehran Province", Latitude: 35.5, Longitude: 51.6, Population: 13267637, AdminLevel: domain.AdminLevelProvince, ProvinceCode: "26"},
		{LocalName: "تهران", ForeignName: "Tehran", Latitude: 35.6892, Longitude: 51.3890, Population: 8846782, AdminLevel: domain.AdminLevelMajorCity, ProvinceCode: "26"},
	})

	e, ok := g.ByLocalName("تهران")
	require.True(t, ok)
	assert.Equal(t, domain.AdminLevelMajorCity, e.AdminLevel)
	assert.Equal(t, "Tehran", e.ForeignName)

	// Reverse lookup still reaches the demoted province rows.
	info, ok := g.ProvinceForCity("تهران")
	require.True(t, ok)
	assert.Equal(t, "استان تهران", info.NameFa)
}

func TestSameNameHigherPopulationWins(t *testing.T) {
	g := testGazetteer()

	e, ok := g.ByLocalName("آباده")
	require.True(t, ok)
	assert.Equal(t, "Abadeh", e.ForeignName)
}

func TestProvinceForCityPrefersPrefixedShortestName(t *testing.T) {
	g := testGazetteer()

	info, ok := g.ProvinceForCity("اصفهان")
	require.True(t, ok)
	assert.Equal(t, "استان اصفهان", info.NameFa)
	assert.Equal(t, "Isfahan Province", info.NameEn)
}

func TestResolveFillsForeignNamesAndProvince(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(domain.LocationCandidate{CityFa: "اصفهان"})

	assert.Equal(t, "Isfahan", res.CityEn)
	assert.Equal(t, "استان اصفهان", res.ProvinceFa)
	assert.Equal(t, "Isfahan Province", res.ProvinceEn)
	assert.InDelta(t, 32.6546, res.Latitude, 1e-6)
	assert.Empty(t, res.Untranslated)
}

func TestResolveProvinceOverrideBeatsGazetteer(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(domain.LocationCandidate{CityFa: "تهران"})

	assert.Equal(t, "استان تهران", res.ProvinceFa)
	assert.Equal(t, "Tehran Province", res.ProvinceEn)
}

func TestResolveAreaCoordinatesBeatCity(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(domain.LocationCandidate{CityFa: "تهران", AreaFa: "ونک"})

	assert.Equal(t, "Vanak", res.AreaEn)
	assert.InDelta(t, 35.7575, res.Latitude, 1e-6)
	assert.InDelta(t, 51.4104, res.Longitude, 1e-6)
}

func TestResolveNeighborhoodAnchorsHomeCity(t *testing.T) {
	r := newTestResolver()

	// Candidate names a neighborhood in the city field; the resolver must
	// anchor the city and demote the name to area, not leave city empty.
	res := r.Resolve(domain.LocationCandidate{CityFa: "تجریش"})

	assert.Equal(t, "تهران", res.CityFa)
	assert.Equal(t, "Tehran", res.CityEn)
	assert.Equal(t, "تجریش", res.AreaFa)
	assert.Equal(t, "Tajrish", res.AreaEn)
}

func TestResolveUntranslatedCollectedOncePerName(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(domain.LocationCandidate{CityFa: "روستای ناشناخته", AreaFa: "روستای ناشناخته"})

	assert.Equal(t, []string{"روستای ناشناخته"}, res.Untranslated)
	assert.Empty(t, res.CityEn)
	assert.Empty(t, res.AreaEn)
}

func TestResolveForeignSkipsGazetteer(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(domain.LocationCandidate{CountryFa: "عراق", CityFa: "نجف", Foreign: true})

	assert.Equal(t, "Iraq", res.CountryEn)
	assert.Equal(t, "Najaf", res.CityEn)
	assert.Empty(t, res.ProvinceFa)
	assert.Empty(t, res.Untranslated)
}

func TestResolveEmptyCandidate(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(domain.LocationCandidate{})

	assert.True(t, res.IsEmpty())
	assert.Empty(t, res.Untranslated)
}
