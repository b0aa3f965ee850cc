package geonames

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavehram/ganjine/internal/core/domain"
)

// Rows follow the 19-column GeoNames main-file layout; only the columns the
// parser reads are filled in.
func mainRow(id, name, lat, lon, cls, code, admin1, population string) string {
	cols := make([]string, 19)
	cols[0] = id
	cols[1] = name
	cols[4] = lat
	cols[5] = lon
	cols[6] = cls
	cols[7] = code
	cols[10] = admin1
	cols[14] = population

	return strings.Join(cols, "\t")
}

func altRow(id, lang, name, preferred string) string {
	cols := make([]string, 8)
	cols[1] = id
	cols[2] = lang
	cols[3] = name
	cols[4] = preferred

	return strings.Join(cols, "\t")
}

func TestParse(t *testing.T) {
	main := strings.Join([]string{
		mainRow("112931", "Tehran", "35.69439", "51.42151", "P", "PPLC", "26", "7153309"),
		mainRow("128226", "Ostan-e Tehran", "35.5", "51.0", "A", "ADM1", "26", "13267637"),
		mainRow("10630176", "Narmak", "35.74800", "51.50700", "P", "PPLX", "26", "0"),
		mainRow("140463", "Borazjan", "29.26697", "51.21593", "P", "PPL", "22", "109567"),
		mainRow("999001", "Tiny Village", "30.0", "50.0", "P", "PPL", "22", "120"),
		mainRow("999002", "Some Mountain", "30.0", "50.0", "T", "MT", "22", "0"),
		mainRow("999003", "No Farsi Name", "30.0", "50.0", "P", "PPL", "22", "50000"),
	}, "\n")

	alternates := strings.Join([]string{
		altRow("112931", "fa", "تهران", "1"),
		altRow("112931", "en", "Tehran", "1"),
		altRow("128226", "fa", "استان تهران", ""),
		altRow("10630176", "fa", "نارمک", ""),
		altRow("140463", "fa", "برازجان", ""),
		altRow("999001", "fa", "ده کوچک", ""),
		altRow("999002", "fa", "کوه", ""),
	}, "\n")

	entries, err := Parse(strings.NewReader(main), strings.NewReader(alternates), Options{MinPopulation: 5000})
	require.NoError(t, err)

	byLocal := make(map[string]domain.GazetteerEntry, len(entries))
	for _, e := range entries {
		byLocal[e.LocalName] = e
	}

	require.Len(t, entries, 4)

	tehran := byLocal["تهران"]
	assert.Equal(t, "Tehran", tehran.ForeignName)
	assert.Equal(t, domain.AdminLevelMajorCity, tehran.AdminLevel)
	assert.Equal(t, int64(7153309), tehran.Population)
	assert.Equal(t, "26", tehran.ProvinceCode)
	assert.InDelta(t, 35.69439, tehran.Latitude, 1e-6)

	province := byLocal["استان تهران"]
	assert.Equal(t, domain.AdminLevelProvince, province.AdminLevel)

	// Neighborhoods survive the population gate.
	narmak := byLocal["نارمک"]
	assert.Equal(t, domain.AdminLevelNeighborhood, narmak.AdminLevel)

	assert.Equal(t, domain.AdminLevelCity, byLocal["برازجان"].AdminLevel)

	// Under-threshold settlements, non-places, and rows with no Farsi
	// name are dropped.
	assert.NotContains(t, byLocal, "ده کوچک")
	assert.NotContains(t, byLocal, "کوه")
	assert.NotContains(t, byLocal, "No Farsi Name")
}

func TestParsePrefersPreferredAlternate(t *testing.T) {
	main := mainRow("112931", "Tehran", "35.69439", "51.42151", "P", "PPLC", "26", "7153309")

	alternates := strings.Join([]string{
		altRow("112931", "fa", "طهران", ""),
		altRow("112931", "fa", "تهران", "1"),
	}, "\n")

	entries, err := Parse(strings.NewReader(main), strings.NewReader(alternates), Options{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "تهران", entries[0].LocalName)
}

func TestParseEmptyInputs(t *testing.T) {
	entries, err := Parse(strings.NewReader(""), strings.NewReader(""), Options{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
