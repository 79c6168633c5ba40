package advisor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

// NormalizeProfile trims and cases the raw input. Gender and occupation are
// matched lower-cased; their display forms are Capitalized and Title Cased.
func NormalizeProfile(in domain.ProfileInput) domain.Profile {
	gender := strings.ToLower(strings.TrimSpace(in.Gender))
	occupation := strings.ToLower(strings.TrimSpace(in.Occupation))

	return domain.Profile{
		Name:       titleCase(in.Name),
		Age:        in.Age,
		Gender:     domain.ParseGender(gender),
		Occupation: domain.ParseOccupation(occupation),
		District:   titleCase(in.District),
		Pincode:    strings.TrimSpace(in.Pincode),

		GenderDisplay:     capitalize(gender),
		OccupationDisplay: titleCase(occupation),
	}
}

// titleCase upper-cases every letter that does not follow another letter, so
// "o'brien" becomes "O'Brien" and "3rd" becomes "3Rd".
func titleCase(v string) string {
	// cases.Caser is stateful, so a fresh one is built per call.
	titled := cases.Title(language.Und).String(strings.TrimSpace(v))

	var b strings.Builder
	b.Grow(len(titled))
	prevLetter := false
	for _, r := range titled {
		if unicode.IsLetter(r) && !prevLetter {
			r = unicode.ToTitle(r)
		}
		prevLetter = unicode.IsLetter(r)
		b.WriteRune(r)
	}
	return b.String()
}

func capitalize(v string) string {
	if v == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(v)
	return string(unicode.ToUpper(first)) + strings.ToLower(v[size:])
}
