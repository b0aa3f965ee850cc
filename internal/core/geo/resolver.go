package geo

import "github.com/kavehram/ganjine/internal/core/domain"

// Resolver normalizes location candidates against the gazetteer and the
// static tables. It is stateless per call and never fails: fields that
// cannot be determined are simply left absent.
type Resolver struct {
	gaz        *Gazetteer
	homeCityFa string
	homeCityEn string
}

// NewResolver creates a resolver anchored to the channel's home city.
func NewResolver(gaz *Gazetteer, homeCityFa, homeCityEn string) *Resolver {
	return &Resolver{gaz: gaz, homeCityFa: homeCityFa, homeCityEn: homeCityEn}
}

// Resolve enriches a candidate into a bilingual resolution. Local names
// that neither the gazetteer nor the static table can translate are
// collected in the Untranslated list, once per unique name.
func (r *Resolver) Resolve(cand domain.LocationCandidate) *domain.LocationResolution {
	res := &domain.LocationResolution{LocationCandidate: cand}

	if cand.Foreign {
		r.resolveForeign(res)
		return res
	}

	r.anchorNeighborhood(res)

	seen := make(map[string]struct{})

	res.CityEn = r.translate(res.CityFa, res.CityEn, res, seen)
	res.AreaEn = r.translate(res.AreaFa, res.AreaEn, res, seen)
	res.ProvinceEn = r.translate(res.ProvinceFa, res.ProvinceEn, res, seen)

	r.inferProvince(res)
	r.pickCoordinates(res)

	return res
}

// resolveForeign passes a location outside the home country through mostly
// unchanged; only the small country-name table is consulted, never the
// gazetteer (it covers the home country only).
func (r *Resolver) resolveForeign(res *domain.LocationResolution) {
	if res.CountryEn == "" && res.CountryFa != "" {
		if en, ok := TranslateCountry(res.CountryFa); ok {
			res.CountryEn = en
		}
	}

	if res.CityEn == "" && res.CityFa != "" {
		if en, ok := TranslateCountry(res.CityFa); ok {
			res.CityEn = en
		}
	}
}

// anchorNeighborhood moves a known home-city neighborhood mentioned as the
// city down to the area field and anchors the city to the home city.
func (r *Resolver) anchorNeighborhood(res *domain.LocationResolution) {
	if res.CityFa == "" || res.AreaFa != "" {
		return
	}

	if _, ok := Neighborhood(res.CityFa); !ok {
		return
	}

	res.AreaFa, res.AreaEn = res.CityFa, ""
	res.CityFa, res.CityEn = r.homeCityFa, r.homeCityEn
}

// translate fills in the foreign name for one populated local field:
// gazetteer exact match first, static table second, untranslated list last.
func (r *Resolver) translate(local, existing string, res *domain.LocationResolution, seen map[string]struct{}) string {
	if existing != "" || local == "" {
		return existing
	}

	if e, ok := r.gaz.ByLocalName(local); ok && e.ForeignName != "" {
		return e.ForeignName
	}

	if en, ok := TranslateStatic(local); ok {
		return en
	}

	if en, ok := Neighborhood(local); ok {
		return en
	}

	if _, dup := seen[local]; !dup {
		seen[local] = struct{}{}
		res.Untranslated = append(res.Untranslated, local)
	}

	return ""
}

// inferProvince derives the province from the city when it is not supplied.
// The per-city override table beats the gazetteer-derived province.
func (r *Resolver) inferProvince(res *domain.LocationResolution) {
	if res.ProvinceFa != "" || res.CityFa == "" {
		return
	}

	if info, ok := provinceOverrides[res.CityFa]; ok {
		res.ProvinceFa, res.ProvinceEn = info.NameFa, info.NameEn
		return
	}

	if info, ok := r.gaz.ProvinceForCity(res.CityFa); ok {
		res.ProvinceFa, res.ProvinceEn = info.NameFa, info.NameEn
	}
}

// pickCoordinates takes coordinates from the most specific resolved level:
// an area match beats the city; granularities are never mixed.
func (r *Resolver) pickCoordinates(res *domain.LocationResolution) {
	if res.AreaFa != "" {
		if e, ok := r.gaz.ByLocalName(res.AreaFa); ok {
			res.Latitude, res.Longitude = e.Latitude, e.Longitude
			return
		}
	}

	if res.Latitude != 0 || res.Longitude != 0 {
		return
	}

	if res.CityFa != "" {
		if e, ok := r.gaz.ByLocalName(res.CityFa); ok {
			res.Latitude, res.Longitude = e.Latitude, e.Longitude
		}
	}
}
