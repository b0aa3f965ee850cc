package llm

import (
	"fmt"
	"strings"
)

// extractionPrompt instructs the model to pull Jalali date phrases and a
// location record out of a Farsi caption. The model must echo phrases
// verbatim; resolution to calendar dates happens deterministically here.
const extractionPrompt = `You are given the Farsi caption of a media post.
Find any date expressions and the location it mentions.

Rules:
- Copy date expressions VERBATIM from the caption (Jalali numeric dates,
  month-name phrases, relative words, weekday names). Do not convert them.
- Report at most one location: the most specific place mentioned.
- Set "outside_iran" to true only when the location is not in Iran.
- Omit fields that are not mentioned. Do not guess.

Respond with ONLY a JSON object:
{"date_phrases": ["..."], "location": {"country_fa": "", "province_fa": "", "city_fa": "", "area_fa": "", "outside_iran": false}}

Caption:
%s`

// translationPrompt asks for a batch of place-name translations in one call.
const translationPrompt = `Translate each of these Iranian place names from Farsi to English.
Use the common romanized English form.

Respond with ONLY a JSON object mapping each Farsi name to its English
translation. Leave out names you cannot translate.

Names:
%s`

func buildExtractionPrompt(caption string) string {
	return fmt.Sprintf(extractionPrompt, caption)
}

func buildTranslationPrompt(names []string) string {
	return fmt.Sprintf(translationPrompt, strings.Join(names, "\n"))
}
