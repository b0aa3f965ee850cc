package geo

import "github.com/kavehram/ganjine/internal/core/domain"

// staticTranslations is the fallback Farsi -> English place-name table,
// consulted when the gazetteer has no exact match. Covers provincial
// capitals and places the gazetteer dump is known to miss.
var staticTranslations = map[string]string{
	"ایران":      "Iran",
	"تهران":      "Tehran",
	"مشهد":       "Mashhad",
	"اصفهان":     "Isfahan",
	"کرج":        "Karaj",
	"شیراز":      "Shiraz",
	"تبریز":      "Tabriz",
	"قم":         "Qom",
	"اهواز":      "Ahvaz",
	"کرمانشاه":   "Kermanshah",
	"ارومیه":     "Urmia",
	"رشت":        "Rasht",
	"زاهدان":     "Zahedan",
	"همدان":      "Hamadan",
	"کرمان":      "Kerman",
	"یزد":        "Yazd",
	"اردبیل":     "Ardabil",
	"بندرعباس":   "Bandar Abbas",
	"اراک":       "Arak",
	"زنجان":      "Zanjan",
	"سنندج":      "Sanandaj",
	"قزوین":      "Qazvin",
	"خرم‌آباد":    "Khorramabad",
	"گرگان":      "Gorgan",
	"ساری":       "Sari",
	"شهرکرد":     "Shahrekord",
	"بجنورد":     "Bojnord",
	"بیرجند":     "Birjand",
	"بوشهر":      "Bushehr",
	"سمنان":      "Semnan",
	"یاسوج":      "Yasuj",
	"ایلام":      "Ilam",
	"کیش":        "Kish",
	"قشم":        "Qeshm",
	"آبادان":     "Abadan",
	"دزفول":      "Dezful",
	"کاشان":      "Kashan",
	"نیشابور":    "Nishapur",
	"بابل":       "Babol",
	"آمل":        "Amol",
}

// countryTranslations translates country names and well-known foreign
// cities; used for candidates flagged as outside Iran, which the gazetteer
// does not cover.
var countryTranslations = map[string]string{
	"ایران":      "Iran",
	"عراق":       "Iraq",
	"ترکیه":      "Turkey",
	"افغانستان":  "Afghanistan",
	"پاکستان":    "Pakistan",
	"سوریه":      "Syria",
	"لبنان":      "Lebanon",
	"امارات":     "United Arab Emirates",
	"عربستان":    "Saudi Arabia",
	"آذربایجان":  "Azerbaijan",
	"ارمنستان":   "Armenia",
	"ترکمنستان":  "Turkmenistan",
	"گرجستان":    "Georgia",
	"قطر":        "Qatar",
	"کویت":       "Kuwait",
	"عمان":       "Oman",
	"بغداد":      "Baghdad",
	"استانبول":   "Istanbul",
	"آنکارا":     "Ankara",
	"دبی":        "Dubai",
	"دوحه":       "Doha",
	"کابل":       "Kabul",
	"نجف":        "Najaf",
	"کربلا":      "Karbala",
	"دمشق":       "Damascus",
	"بیروت":      "Beirut",
	"باکو":       "Baku",
	"ایروان":     "Yerevan",
}

// provinceOverrides corrects known gazetteer province-attribution errors for
// major cities. An override always beats the gazetteer-derived province.
var provinceOverrides = map[string]domain.ProvinceInfo{
	"تهران":    {NameFa: "استان تهران", NameEn: "Tehran Province", Code: "26"},
	"کرج":      {NameFa: "استان البرز", NameEn: "Alborz Province", Code: "32"},
	"مشهد":     {NameFa: "استان خراسان رضوی", NameEn: "Razavi Khorasan Province", Code: "42"},
	"اهواز":    {NameFa: "استان خوزستان", NameEn: "Khuzestan Province", Code: "15"},
	"بندرعباس": {NameFa: "استان هرمزگان", NameEn: "Hormozgan Province", Code: "11"},
}

// neighborhoods is the curated set of home-city neighborhood names. Any
// match implicitly anchors the city to the channel's home city even when
// the city name itself never appears in the caption.
var neighborhoods = map[string]string{
	"ونک":        "Vanak",
	"تجریش":      "Tajrish",
	"نارمک":      "Narmak",
	"اکباتان":    "Ekbatan",
	"سعادت‌آباد":  "Saadat Abad",
	"شهرک غرب":   "Shahrak-e Gharb",
	"پونک":       "Punak",
	"جنت‌آباد":    "Janat Abad",
	"یوسف‌آباد":   "Yusef Abad",
	"امیرآباد":   "Amirabad",
	"نازی‌آباد":   "Naziabad",
	"افسریه":     "Afsariyeh",
	"پیروزی":     "Piroozi",
	"آزادی":      "Azadi",
	"انقلاب":     "Enghelab",
	"ولیعصر":     "Valiasr",
	"شوش":        "Shush",
	"بهارستان":   "Baharestan",
	"ستارخان":    "Sattarkhan",
	"گیشا":       "Gisha",
	"زعفرانیه":   "Zafaraniyeh",
	"نیاوران":    "Niavaran",
	"لویزان":     "Lavizan",
	"تهرانپارس":  "Tehranpars",
	"شهران":      "Shahran",
}

// provincePrefix is the standard prefix carried by canonical province rows.
const provincePrefix = "استان"

// TranslateStatic looks a local name up in the static fallback table.
func TranslateStatic(name string) (string, bool) {
	en, ok := staticTranslations[name]
	return en, ok
}

// TranslateCountry looks a name up in the country/foreign-city table.
func TranslateCountry(name string) (string, bool) {
	en, ok := countryTranslations[name]
	return en, ok
}

// Neighborhood returns the English name of a home-city neighborhood.
func Neighborhood(name string) (string, bool) {
	en, ok := neighborhoods[name]
	return en, ok
}

// KnownPlaceNames returns every local-script name in the curated tables,
// for the caption extractor's sliding-window scan.
func KnownPlaceNames() []string {
	names := make([]string, 0, len(staticTranslations)+len(neighborhoods))
	for name := range staticTranslations {
		names = append(names, name)
	}

	for name := range neighborhoods {
		names = append(names, name)
	}

	return names
}
