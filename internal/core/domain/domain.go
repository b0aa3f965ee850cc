package domain

import "time"

// MediaItem represents a downloaded media post from the tracked channel.
type MediaItem struct {
	ID          string
	TGMessageID int64
	TGDate      time.Time
	Caption     string
	MediaType   string
	FilePath    string
	ArchivePath string
	Status      string

	Date     *ResolvedDate
	Location *LocationResolution

	CreatedAt time.Time
}

// Item status constants.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusArchived = "archived"
	StatusFailed   = "failed"
)

// DateSource records which resolution strategy produced a resolved date.
type DateSource string

// Date provenance tags. Once set on a ResolvedDate they are never overwritten.
const (
	SourceNumericJalali   DateSource = "exact-numeric-jalali"
	SourceMonthName       DateSource = "month-name-match"
	SourceRelativeDay     DateSource = "relative-day"
	SourceWeekday         DateSource = "weekday-match"
	SourceCaptionFallback DateSource = "caption-fallback"
	SourceOriginTimestamp DateSource = "origin-timestamp-fallback"
)

// ResolvedDate is an exact Gregorian day with its Jalali rendering and the
// provenance of the resolution. Gregorian is always UTC midnight.
type ResolvedDate struct {
	Gregorian time.Time
	Jalali    string
	Source    DateSource
}

// CaptionExtraction is what the AI layer returns for one caption: zero or
// more Jalali date-phrase strings plus an optional sparse location record.
type CaptionExtraction struct {
	DatePhrases []string           `json:"date_phrases"`
	Location    *LocationCandidate `json:"location"`
}

// LocationCandidate is a sparse bilingual location record. An empty field
// means "not mentioned", not "unknown".
type LocationCandidate struct {
	CountryFa  string  `json:"country_fa,omitempty"`
	CountryEn  string  `json:"country_en,omitempty"`
	ProvinceFa string  `json:"province_fa,omitempty"`
	ProvinceEn string  `json:"province_en,omitempty"`
	CityFa     string  `json:"city_fa,omitempty"`
	CityEn     string  `json:"city_en,omitempty"`
	AreaFa     string  `json:"area_fa,omitempty"`
	AreaEn     string  `json:"area_en,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Foreign    bool    `json:"outside_iran,omitempty"`
}

// IsEmpty reports whether no location field was mentioned at all.
func (c *LocationCandidate) IsEmpty() bool {
	if c == nil {
		return true
	}

	return c.CountryFa == "" && c.CountryEn == "" &&
		c.ProvinceFa == "" && c.ProvinceEn == "" &&
		c.CityFa == "" && c.CityEn == "" &&
		c.AreaFa == "" && c.AreaEn == ""
}

// LocationResolution is a LocationCandidate enriched by the resolver:
// foreign names filled where known, province inferred from city, and
// coordinates taken from the most specific resolved level.
type LocationResolution struct {
	LocationCandidate

	// Untranslated holds local-script names that neither the gazetteer nor
	// the static table could translate, for a later batched translation.
	Untranslated []string
}

// Gazetteer admin levels, ordered by lookup priority for same-named places.
const (
	AdminLevelProvince     = 0
	AdminLevelMajorCity    = 1
	AdminLevelCity         = 2
	AdminLevelNeighborhood = 3
)

// GazetteerEntry is one row of the offline-built place-name index.
type GazetteerEntry struct {
	LocalName    string
	ForeignName  string
	Latitude     float64
	Longitude    float64
	Population   int64
	AdminLevel   int
	ProvinceCode string
}

// ProvinceInfo is the canonical bilingual identity of a province.
type ProvinceInfo struct {
	NameFa string
	NameEn string
	Code   string
}
