package normalize

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/currency"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

// numberHint carries what a currency format says about displayed amounts.
type numberHint struct {
	decimal  rune
	thousand rune
	symbol   string
}

// hintFrom builds a numberHint from detected currency metadata.
func hintFrom(ci *models.CurrencyInfo) *numberHint {
	if ci == nil {
		return nil
	}
	return &numberHint{decimal: ci.DecimalSeparator, thousand: ci.ThousandSeparator, symbol: ci.Symbol}
}

// numberResult is the outcome of parsing numeric text.
type numberResult struct {
	value      models.CellValue
	outOfRange bool
}

var (
	scientificPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)[eE][+-]?\d+$`)
	digitsPattern     = regexp.MustCompile(`^[0-9.,]+$`)
)

// groupSpaces are characters used to group thousands in addition to ',' and '.'.
var groupSpaces = map[rune]bool{
	' ':      true,
	'\u00a0': true, // no-break space
	'\u202f': true, // narrow no-break space
	'\u2009': true, // thin space
	'\'':     true,
	'\u2019': true, // right single quotation mark
}

var nonFiniteTokens = map[string]bool{
	"nan": true, "inf": true, "+inf": true, "-inf": true,
	"infinity": true, "+infinity": true, "-infinity": true,
}

// isNonFinite reports whether s spells NaN or infinity.
func isNonFinite(s string) bool {
	return nonFiniteTokens[strings.ToLower(s)]
}

// parseNumber parses numeric text. Currency symbols, ISO codes and percent
// signs are stripped; a percent sign (or percent set by the format) divides
// by 100. hint, when non-nil, fixes the separators and names the symbol.
func parseNumber(s string, hint *numberHint, percent bool) (numberResult, bool) {
	body := strings.TrimSpace(s)
	if body == "" {
		return numberResult{}, false
	}

	negative := false
	if strings.HasPrefix(body, "(") && strings.HasSuffix(body, ")") {
		negative = true
		body = strings.TrimSpace(body[1 : len(body)-1])
	}
	body, neg := stripSign(body)
	negative = negative != neg

	hadCurrency := false
	if hint != nil && hint.symbol != "" {
		if rest, ok := strings.CutPrefix(body, hint.symbol); ok {
			body, hadCurrency = strings.TrimSpace(rest), true
		} else if rest, ok := strings.CutSuffix(body, hint.symbol); ok {
			body, hadCurrency = strings.TrimSpace(rest), true
		}
	}
	if !hadCurrency {
		body, hadCurrency = stripCurrency(body)
	}
	body, neg = stripSign(body)
	negative = negative != neg

	if strings.HasSuffix(body, "%") {
		percent = true
		body = strings.TrimSpace(strings.TrimSuffix(body, "%"))
	} else if strings.HasPrefix(body, "%") {
		percent = true
		body = strings.TrimSpace(strings.TrimPrefix(body, "%"))
	}
	if body == "" {
		return numberResult{}, false
	}

	canonical, fractional, ok := canonicalDigits(body, hint)
	if !ok {
		return numberResult{}, false
	}
	if negative {
		canonical = "-" + canonical
	}

	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return numberResult{}, false
	}
	if percent {
		d = d.Shift(-2)
	}

	// Amounts under a currency format are Number even when integral.
	if !fractional && !percent && !hadCurrency && hint == nil {
		if bi := d.BigInt(); d.Equal(decimal.NewFromBigInt(bi, 0)) && bi.IsInt64() {
			return numberResult{value: models.Integer(bi.Int64())}, true
		}
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return numberResult{outOfRange: true}, true
	}
	return numberResult{value: models.Number(f)}, true
}

// stripSign removes one leading or trailing sign.
func stripSign(s string) (string, bool) {
	switch {
	case strings.HasPrefix(s, "-") || strings.HasPrefix(s, "\u2212"):
		_, size := utf8.DecodeRuneInString(s)
		return strings.TrimSpace(s[size:]), true
	case strings.HasPrefix(s, "+"):
		return strings.TrimSpace(s[1:]), false
	case strings.HasSuffix(s, "-") && len(s) > 1:
		return strings.TrimSpace(s[:len(s)-1]), true
	}
	return s, false
}

// stripCurrency removes a leading or trailing currency symbol or ISO code.
func stripCurrency(s string) (string, bool) {
	for _, sym := range currency.Symbols() {
		if rest, ok := strings.CutPrefix(s, sym); ok && boundary(rest, true) {
			return strings.TrimSpace(rest), true
		}
		if rest, ok := strings.CutSuffix(s, sym); ok && boundary(rest, false) {
			return strings.TrimSpace(rest), true
		}
	}
	if len(s) > 3 {
		if currency.IsISOCode(s[:3]) && boundary(s[3:], true) {
			return strings.TrimSpace(s[3:]), true
		}
		if currency.IsISOCode(s[len(s)-3:]) && boundary(s[:len(s)-3], false) {
			return strings.TrimSpace(s[:len(s)-3]), true
		}
	}
	return s, false
}

// boundary reports whether rest (the text left after cutting a symbol) does
// not continue a word at the cut.
func boundary(rest string, cutPrefix bool) bool {
	if rest == "" {
		return false
	}
	var r rune
	if cutPrefix {
		r, _ = utf8.DecodeRuneInString(rest)
	} else {
		r, _ = utf8.DecodeLastRuneInString(rest)
	}
	return !unicode.IsLetter(r)
}

// canonicalDigits turns grouped numeric text into a plain "1234.56" string.
// fractional reports a decimal separator or exponent in the input.
func canonicalDigits(s string, hint *numberHint) (canonical string, fractional bool, ok bool) {
	if scientificPattern.MatchString(s) {
		return s, true, true
	}

	// Spaces and apostrophes only ever group thousands.
	if strings.IndexFunc(s, func(r rune) bool { return groupSpaces[r] }) >= 0 {
		groups := strings.FieldsFunc(s, func(r rune) bool { return groupSpaces[r] })
		if len(groups) < 2 || !validGroups(groups[:len(groups)-1], groups[len(groups)-1]) {
			return "", false, false
		}
		s = strings.Join(groups, "")
	}

	if !digitsPattern.MatchString(s) {
		return "", false, false
	}

	if hint != nil && hint.decimal != hint.thousand {
		if c, frac, ok := splitWith(s, hint.decimal, hint.thousand); ok {
			return c, frac, true
		}
	}

	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")
	switch {
	case commas == 0 && dots == 0:
		if len(s) > 1 && s[0] == '0' {
			return "", false, false
		}
		return s, false, true
	case commas > 0 && dots > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			return splitWith(s, ',', '.')
		}
		return splitWith(s, '.', ',')
	case commas > 1:
		return splitWith(s, '.', ',')
	case dots > 1:
		return splitWith(s, ',', '.')
	}

	sep := ","
	if dots == 1 {
		sep = "."
	}
	intPart, frac, _ := strings.Cut(s, sep)
	// A single separator followed by exactly three digits groups thousands,
	// unless the integer part is empty or zero.
	if len(frac) == 3 && intPart != "" && intPart != "0" && len(intPart) <= 3 && intPart[0] != '0' {
		return intPart + frac, false, true
	}
	if frac == "" {
		return "", false, false
	}
	if intPart == "" {
		intPart = "0"
	}
	return intPart + "." + frac, true, true
}

// splitWith resolves s with a known decimal and thousands separator.
func splitWith(s string, dec, thou rune) (string, bool, bool) {
	if strings.Count(s, string(dec)) > 1 {
		return "", false, false
	}
	intPart, frac, hasDec := strings.Cut(s, string(dec))
	if strings.ContainsRune(frac, thou) {
		return "", false, false
	}
	if hasDec && frac == "" {
		return "", false, false
	}
	if strings.ContainsRune(intPart, thou) {
		groups := strings.Split(intPart, string(thou))
		if !validGroups(groups, "") {
			return "", false, false
		}
		intPart = strings.Join(groups, "")
	}
	// Any other separator left in the integer part is malformed.
	if strings.ContainsAny(intPart, ".,") {
		return "", false, false
	}
	if intPart == "" {
		intPart = "0"
	}
	if !hasDec {
		return intPart, false, true
	}
	return intPart + "." + frac, true, true
}

// validGroups checks thousands grouping: 1-3 leading digits then groups of
// exactly 3. last, when non-empty, is the final group which may carry a
// decimal tail ("234,56" or "234.56").
func validGroups(groups []string, last string) bool {
	all := groups
	if last != "" {
		tail := last
		if idx := strings.IndexAny(tail, ".,"); idx >= 0 {
			tail = tail[:idx]
		}
		all = append(append([]string(nil), groups...), tail)
	}
	for i, g := range all {
		if g == "" || strings.Trim(g, "0123456789") != "" {
			return false
		}
		if i == 0 && len(g) > 3 {
			return false
		}
		if i > 0 && len(g) != 3 {
			return false
		}
	}
	return true
}
