// Package numfmt classifies Excel number format strings.
package numfmt

import (
	"strings"

	"github.com/xuri/nfp"
)

// Bracket is a bracketed currency/locale token such as [$€-407].
type Bracket struct {
	// Symbol is the text between "$" and "-" (may be empty).
	Symbol string
	// LocaleCode is the hex locale identifier after "-" (may be empty).
	LocaleCode string
	// BeforeNumber is set when the token precedes the first digit placeholder.
	BeforeNumber bool
}

// Literal is a literal text token of the format.
type Literal struct {
	Value        string
	BeforeNumber bool
}

// Info is the classification of a number format string.
type Info struct {
	// Raw is the format string as given.
	Raw string
	// General is set for "General" and the empty format.
	General bool
	// Date is set when the format renders dates or times.
	Date bool
	// Percent is set when the format contains a percent sign.
	Percent bool
	// Text is set for the "@" text format.
	Text bool
	// Exponential is set for scientific formats.
	Exponential bool
	// Thousands is set when the format groups thousands.
	Thousands bool
	// DecimalPoint is set when the format has a decimal point.
	DecimalPoint bool
	// DecimalPlaces counts digit placeholders after the decimal point.
	DecimalPlaces int
	// DayFirst is set for date formats whose day token precedes the month token.
	DayFirst bool
	// Brackets holds bracketed currency/locale tokens in order.
	Brackets []Bracket
	// Literals holds literal text tokens in order.
	Literals []Literal
}

// Parse classifies format. Only the first section (positive numbers) is
// inspected. Parse never fails; unknown tokens are ignored.
func Parse(format string) Info {
	info := Info{Raw: format}
	trimmed := strings.TrimSpace(format)
	if trimmed == "" || strings.EqualFold(trimmed, "general") {
		info.General = true
		return info
	}

	p := nfp.NumberFormatParser()
	sections := p.Parse(format)
	if len(sections) == 0 {
		info.General = true
		return info
	}

	seenNumber := false
	afterDecimal := false
	dayAt, monthAt := -1, -1
	hasPlaceholder := false
	for idx, token := range sections[0].Items {
		switch token.TType {
		case nfp.TokenTypeGeneral:
			info.General = true
		case nfp.TokenTypeTextPlaceHolder:
			info.Text = true
		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			info.Date = true
			lower := strings.ToLower(token.TValue)
			if dayAt < 0 && strings.HasPrefix(lower, "d") {
				dayAt = idx
			}
			if monthAt < 0 && strings.HasPrefix(lower, "m") {
				monthAt = idx
			}
		case nfp.TokenTypePercent:
			info.Percent = true
		case nfp.TokenTypeExponential:
			info.Exponential = true
			afterDecimal = false
		case nfp.TokenTypeThousandsSeparator:
			info.Thousands = true
		case nfp.TokenTypeDecimalPoint:
			info.DecimalPoint = true
			afterDecimal = true
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder, nfp.TokenTypeDigitalPlaceHolder:
			if !info.Date {
				hasPlaceholder = true
			}
			seenNumber = true
			if afterDecimal {
				info.DecimalPlaces += len([]rune(token.TValue))
			}
		case nfp.TokenTypeCurrencyLanguage:
			info.Brackets = append(info.Brackets, parseBracket(token.TValue, !seenNumber))
		case nfp.TokenTypeLiteral:
			afterDecimal = false
			if v := strings.Trim(token.TValue, `"\ `); v != "" {
				info.Literals = append(info.Literals, Literal{Value: v, BeforeNumber: !seenNumber})
			}
		}
	}

	if len(info.Literals) == 0 {
		info.Literals = scanLiterals(format)
	}

	// Digit placeholders ahead of any date token make it a number format.
	if info.Date && hasPlaceholder {
		info.Date = false
	}
	if info.Date && dayAt >= 0 && monthAt >= 0 && dayAt < monthAt {
		info.DayFirst = true
	}
	return info
}

// HasCurrencyBracket reports whether a bracket carries a currency symbol.
func (i Info) HasCurrencyBracket() bool {
	for _, b := range i.Brackets {
		if b.Symbol != "" {
			return true
		}
	}
	return false
}

// IsDateFormat reports whether format renders dates or times.
func IsDateFormat(format string) bool {
	return Parse(format).Date
}

// IsPercentFormat reports whether format is a percentage format.
func IsPercentFormat(format string) bool {
	return Parse(format).Percent
}

// IsTextFormat reports whether format is the "@" text format.
func IsTextFormat(format string) bool {
	return Parse(format).Text
}

// parseBracket splits the inside of a [$symbol-locale] token.
func parseBracket(value string, beforeNumber bool) Bracket {
	v := strings.TrimSpace(value)
	v = strings.TrimPrefix(v, "[")
	v = strings.TrimSuffix(v, "]")
	v = strings.TrimPrefix(v, "$")

	b := Bracket{BeforeNumber: beforeNumber}
	if idx := strings.LastIndex(v, "-"); idx >= 0 {
		b.Symbol = v[:idx]
		b.LocaleCode = strings.ToUpper(strings.TrimSpace(v[idx+1:]))
	} else {
		b.Symbol = v
	}
	b.Symbol = strings.TrimSpace(b.Symbol)
	return b
}

// scanLiterals extracts literal runs from the first section of format:
// quoted text, backslash-escaped characters and characters that are not
// format codes. Bracketed expressions are skipped.
func scanLiterals(format string) []Literal {
	var (
		out     []Literal
		run     strings.Builder
		seenNum bool
		state   int // 0 plain, 1 quoted, 2 escaped, 3 bracket
	)
	flush := func() {
		if v := strings.TrimSpace(run.String()); v != "" {
			out = append(out, Literal{Value: v, BeforeNumber: !seenNum})
		}
		run.Reset()
	}
	for _, c := range format {
		switch state {
		case 1:
			if c == '"' {
				state = 0
				flush()
				continue
			}
			run.WriteRune(c)
			continue
		case 2:
			run.WriteRune(c)
			state = 0
			continue
		case 3:
			if c == ']' {
				state = 0
			}
			continue
		}
		switch {
		case c == ';':
			flush()
			return out
		case c == '"':
			flush()
			state = 1
		case c == '\\':
			state = 2
		case c == '[':
			flush()
			state = 3
		case c == '0' || c == '#' || c == '?':
			flush()
			seenNum = true
		case strings.ContainsRune(".,%Ee+-_*@ ", c):
			flush()
		default:
			run.WriteRune(c)
		}
	}
	flush()
	return out
}
