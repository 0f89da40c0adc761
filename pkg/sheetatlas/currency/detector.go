// Package currency extracts currency semantics from Excel number format strings.
//
// The numeric part of a format is always written in the invariant
// convention (',' groups thousands, '.' marks decimals). The locale code of a
// bracketed token such as [$€-407] only decides how the number is displayed,
// so separator-inverting locales report the swapped separators.
package currency

import (
	"sort"
	"strings"
	"unicode"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/numfmt"
)

// uniqueSymbols maps symbols with a single meaning to ISO codes.
var uniqueSymbols = map[string]string{
	"€":   "EUR",
	"£":   "GBP",
	"₹":   "INR",
	"₽":   "RUB",
	"руб": "RUB",
	"₩":   "KRW",
	"₺":   "TRY",
	"zł":  "PLN",
	"Kč":  "CZK",
	"R$":  "BRL",
	"Fr.": "CHF",
	"₪":   "ILS",
	"฿":   "THB",
	"₴":   "UAH",
	"Ft":  "HUF",
	"lei": "RON",
	"лв":  "BGN",
	"US$": "USD",
	"C$":  "CAD",
	"CA$": "CAD",
	"A$":  "AUD",
	"AU$": "AUD",
	"NZ$": "NZD",
	"HK$": "HKD",
	"S$":  "SGD",
	"Rp":  "IDR",
	"₫":   "VND",
	"₱":   "PHP",
	"RM":  "MYR",
	"元":   "CNY",
}

// ambiguousSymbols maps symbols used by several currencies to their
// candidates, most common first.
var ambiguousSymbols = map[string][]string{
	"$":   {"USD", "CAD", "AUD", "NZD", "MXN", "HKD", "SGD", "ARS", "CLP", "COP"},
	"¥":   {"JPY", "CNY"},
	"￥":   {"JPY", "CNY"},
	"kr":  {"SEK", "NOK", "DKK", "ISK"},
	"kr.": {"DKK", "SEK", "NOK", "ISK"},
}

// knownSymbols lists every symbol, longest first, for substring search.
var knownSymbols = func() []string {
	var out []string
	for s := range uniqueSymbols {
		out = append(out, s)
	}
	for s := range ambiguousSymbols {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}()

// DetectCurrency returns the currency of a number format string, or nil when
// the format carries no currency evidence.
func DetectCurrency(format string) *models.CurrencyInfo {
	if strings.TrimSpace(format) == "" {
		return nil
	}
	info := numfmt.Parse(format)
	if info.Date || info.Text {
		return nil
	}

	for _, b := range info.Brackets {
		if b.Symbol == "" {
			continue
		}
		loc, known := lookupLocale(b.LocaleCode)
		code, ambiguous := resolveCode(b.Symbol, loc.tag)
		if code == "" && known {
			code, _ = regionCurrency(loc.tag)
		}
		confidence := models.ConfidenceProbable
		switch {
		case b.LocaleCode != "" && code != "":
			confidence = models.ConfidenceCertain
		case ambiguous || code == "":
			confidence = models.ConfidenceAmbiguous
		}
		return build(info, code, b.Symbol, b.BeforeNumber, loc, known, confidence)
	}

	for _, lit := range info.Literals {
		symbol, ok := findSymbol(lit.Value)
		if !ok {
			continue
		}
		code, ambiguous := resolveCode(symbol, "")
		confidence := models.ConfidenceProbable
		if ambiguous {
			confidence = models.ConfidenceAmbiguous
		}
		return build(info, code, symbol, lit.BeforeNumber, locale{}, false, confidence)
	}
	return nil
}

// DetectMixedCurrencies returns the distinct currencies of formats by code,
// in order of first appearance.
func DetectMixedCurrencies(formats []string) []models.CurrencyInfo {
	var out []models.CurrencyInfo
	seen := make(map[string]bool)
	for _, f := range formats {
		ci := DetectCurrency(f)
		if ci == nil || seen[ci.Code] {
			continue
		}
		seen[ci.Code] = true
		out = append(out, *ci)
	}
	return out
}

// IsCurrencyFormat reports whether format carries currency evidence.
func IsCurrencyFormat(format string) bool {
	return DetectCurrency(format) != nil
}

// Symbols returns every known currency symbol, longest first.
func Symbols() []string {
	return append([]string(nil), knownSymbols...)
}

func build(info numfmt.Info, code, symbol string, prefix bool, loc locale, known bool, confidence models.CurrencyConfidence) *models.CurrencyInfo {
	decimal, thousand := '.', ','
	if loc.inverting {
		decimal, thousand = thousand, decimal
	}
	position := models.PositionSuffix
	if prefix {
		position = models.PositionPrefix
	}
	ci := &models.CurrencyInfo{
		Code:              code,
		Symbol:            symbol,
		Position:          position,
		DecimalSeparator:  decimal,
		ThousandSeparator: thousand,
		DecimalPlaces:     info.DecimalPlaces,
		Confidence:        confidence,
	}
	if known {
		ci.Locale = loc.tag
	}
	return ci
}

// resolveCode maps a symbol to an ISO code. A locale tag picks between the
// candidates of an ambiguous symbol; ambiguous reports that no tag could.
func resolveCode(symbol, tag string) (code string, ambiguous bool) {
	s := strings.TrimSpace(symbol)
	if up := strings.ToUpper(s); IsISOCode(up) {
		return up, false
	}
	if c, ok := uniqueSymbols[s]; ok {
		return c, false
	}
	candidates, ok := ambiguousSymbols[s]
	if !ok {
		candidates, ok = ambiguousSymbols[strings.ToLower(s)]
	}
	if !ok {
		return "", false
	}
	if tag != "" {
		if rc, ok := regionCurrency(tag); ok {
			for _, c := range candidates {
				if c == rc {
					return c, false
				}
			}
		}
	}
	return candidates[0], true
}

// findSymbol finds a currency symbol or ISO code inside literal text.
func findSymbol(text string) (string, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", false
	}
	if IsISOCode(t) {
		return t, true
	}
	if _, ok := uniqueSymbols[t]; ok {
		return t, true
	}
	if _, ok := ambiguousSymbols[t]; ok {
		return t, true
	}
	for _, field := range strings.Fields(t) {
		if IsISOCode(field) {
			return field, true
		}
	}
	for _, s := range knownSymbols {
		if isWordLike(s) {
			continue
		}
		if strings.Contains(t, s) {
			return s, true
		}
	}
	return "", false
}

// isWordLike reports whether a symbol is made only of letters and dots,
// which would match inside ordinary words.
func isWordLike(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '.' {
			return false
		}
	}
	return true
}
