package currency

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// locale is the display convention of a Windows locale identifier.
type locale struct {
	tag string
	// inverting locales display ',' as decimal and '.' as thousands.
	inverting bool
}

// locales maps hex LCIDs (upper case, no leading zeros) to display conventions.
var locales = map[string]locale{
	"409":  {tag: "en-US"},
	"809":  {tag: "en-GB"},
	"1009": {tag: "en-CA"},
	"C09":  {tag: "en-AU"},
	"1409": {tag: "en-NZ"},
	"1809": {tag: "en-IE"},
	"4009": {tag: "en-IN"},
	"439":  {tag: "hi-IN"},
	"411":  {tag: "ja-JP"},
	"804":  {tag: "zh-CN"},
	"404":  {tag: "zh-TW"},
	"C04":  {tag: "zh-HK"},
	"412":  {tag: "ko-KR"},
	"80A":  {tag: "es-MX"},
	"807":  {tag: "de-CH"},
	"100C": {tag: "fr-CH"},
	"810":  {tag: "it-CH"},
	"40D":  {tag: "he-IL"},
	"41E":  {tag: "th-TH"},
	"407":  {tag: "de-DE", inverting: true},
	"C07":  {tag: "de-AT", inverting: true},
	"1007": {tag: "de-LU", inverting: true},
	"40C":  {tag: "fr-FR", inverting: true},
	"80C":  {tag: "fr-BE", inverting: true},
	"140C": {tag: "fr-LU", inverting: true},
	"410":  {tag: "it-IT", inverting: true},
	"40A":  {tag: "es-ES", inverting: true},
	"C0A":  {tag: "es-ES", inverting: true},
	"413":  {tag: "nl-NL", inverting: true},
	"813":  {tag: "nl-BE", inverting: true},
	"816":  {tag: "pt-PT", inverting: true},
	"416":  {tag: "pt-BR", inverting: true},
	"419":  {tag: "ru-RU", inverting: true},
	"422":  {tag: "uk-UA", inverting: true},
	"415":  {tag: "pl-PL", inverting: true},
	"405":  {tag: "cs-CZ", inverting: true},
	"41B":  {tag: "sk-SK", inverting: true},
	"40E":  {tag: "hu-HU", inverting: true},
	"418":  {tag: "ro-RO", inverting: true},
	"402":  {tag: "bg-BG", inverting: true},
	"41A":  {tag: "hr-HR", inverting: true},
	"424":  {tag: "sl-SI", inverting: true},
	"406":  {tag: "da-DK", inverting: true},
	"41D":  {tag: "sv-SE", inverting: true},
	"414":  {tag: "nb-NO", inverting: true},
	"40B":  {tag: "fi-FI", inverting: true},
	"408":  {tag: "el-GR", inverting: true},
	"41F":  {tag: "tr-TR", inverting: true},
	"425":  {tag: "et-EE", inverting: true},
	"426":  {tag: "lv-LV", inverting: true},
	"427":  {tag: "lt-LT", inverting: true},
	"421":  {tag: "id-ID", inverting: true},
	"2C0A": {tag: "es-AR", inverting: true},
	"240A": {tag: "es-CO", inverting: true},
	"340A": {tag: "es-CL", inverting: true},
}

// lookupLocale resolves a hex locale code such as "407" or "0407".
// Longer codes carry calendar and numeral bits in the high word
// (e.g. "1010409"); only the low 16 bits name the locale.
func lookupLocale(code string) (locale, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) > 4 {
		c = c[len(c)-4:]
	}
	c = strings.TrimLeft(c, "0")
	l, ok := locales[c]
	return l, ok
}

// regionCurrency returns the ISO code of the currency used in the region of
// a BCP 47 tag, e.g. "de-DE" -> "EUR".
func regionCurrency(tag string) (string, bool) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", false
	}
	region, _ := t.Region()
	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", false
	}
	return unit.String(), true
}

// IsISOCode reports whether s is a known ISO 4217 currency code.
func IsISOCode(s string) bool {
	if len(s) != 3 || strings.ToUpper(s) != s {
		return false
	}
	_, err := currency.ParseISO(s)
	return err == nil
}
