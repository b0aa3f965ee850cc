// Package geonames parses GeoNames dump files into gazetteer entries. The
// dump is the tab-separated "IR.txt" country extract plus the matching
// alternate-names file carrying Farsi spellings.
package geonames

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kavehram/ganjine/internal/core/domain"
	"github.com/kavehram/ganjine/internal/core/farsitext"
)

// GeoNames main-file column indexes.
const (
	colGeonameID  = 0
	colName       = 1
	colLatitude   = 4
	colLongitude  = 5
	colFeatureCls = 6
	colFeatureCod = 7
	colAdmin1     = 10
	colPopulation = 14
	mainFileCols  = 19
)

// Alternate-names file column indexes.
const (
	altColGeonameID = 1
	altColLang      = 2
	altColName      = 3
	altColPreferred = 4
	altFileCols     = 8
)

const farsiLang = "fa"

// Options configures the parse.
type Options struct {
	// MinPopulation drops settlements below this size. Provinces and
	// neighborhoods are kept regardless.
	MinPopulation int64
}

// Parse reads a GeoNames country dump and its alternate-names file and
// returns gazetteer entries for every place that has a Farsi name.
func Parse(main, alternates io.Reader, opts Options) ([]domain.GazetteerEntry, error) {
	faNames, err := parseAlternates(alternates)
	if err != nil {
		return nil, err
	}

	reader := newTSVReader(main)

	var entries []domain.GazetteerEntry

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read geonames record: %w", err)
		}

		if len(record) < mainFileCols {
			continue
		}

		entry, ok, err := toEntry(record, faNames, opts)
		if err != nil {
			return nil, err
		}

		if ok {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func newTSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	return reader
}

// parseAlternates builds geonameID -> Farsi name, preferring rows flagged
// as the preferred name.
func parseAlternates(r io.Reader) (map[string]string, error) {
	reader := newTSVReader(r)

	names := make(map[string]string)
	preferred := make(map[string]bool)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read alternate name record: %w", err)
		}

		if len(record) < altFileCols || record[altColLang] != farsiLang {
			continue
		}

		id := record[altColGeonameID]
		name := farsitext.Normalize(strings.TrimSpace(record[altColName]))

		if name == "" {
			continue
		}

		isPreferred := record[altColPreferred] == "1"

		if _, seen := names[id]; seen && !isPreferred || preferred[id] && !isPreferred {
			continue
		}

		names[id] = name
		preferred[id] = isPreferred
	}

	return names, nil
}

func toEntry(record []string, faNames map[string]string, opts Options) (domain.GazetteerEntry, bool, error) {
	level, ok := adminLevel(record[colFeatureCls], record[colFeatureCod])
	if !ok {
		return domain.GazetteerEntry{}, false, nil
	}

	localName, ok := faNames[record[colGeonameID]]
	if !ok {
		return domain.GazetteerEntry{}, false, nil
	}

	population, err := strconv.ParseInt(record[colPopulation], 10, 64)
	if err != nil {
		population = 0
	}

	// Population gating applies to settlements only. A tiny province or a
	// zero-population neighborhood entry is still useful for lookup.
	if (level == domain.AdminLevelCity || level == domain.AdminLevelMajorCity) && population < opts.MinPopulation {
		return domain.GazetteerEntry{}, false, nil
	}

	lat, err := strconv.ParseFloat(record[colLatitude], 64)
	if err != nil {
		return domain.GazetteerEntry{}, false, fmt.Errorf("parse latitude %q: %w", record[colLatitude], err)
	}

	lon, err := strconv.ParseFloat(record[colLongitude], 64)
	if err != nil {
		return domain.GazetteerEntry{}, false, fmt.Errorf("parse longitude %q: %w", record[colLongitude], err)
	}

	return domain.GazetteerEntry{
		LocalName:    localName,
		ForeignName:  strings.TrimSpace(record[colName]),
		Latitude:     lat,
		Longitude:    lon,
		Population:   population,
		AdminLevel:   level,
		ProvinceCode: record[colAdmin1],
	}, true, nil
}

// adminLevel maps GeoNames feature classes and codes onto the gazetteer's
// four levels. Anything that is not a province or populated place is skipped.
func adminLevel(class, code string) (int, bool) {
	switch {
	case class == "A" && code == "ADM1":
		return domain.AdminLevelProvince, true
	case class == "P" && (code == "PPLA" || code == "PPLC"):
		return domain.AdminLevelMajorCity, true
	case class == "P" && code == "PPLX":
		return domain.AdminLevelNeighborhood, true
	case class == "P" && strings.HasPrefix(code, "PPL"):
		return domain.AdminLevelCity, true
	default:
		return 0, false
	}
}
