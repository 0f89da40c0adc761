package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

func TestDetectCurrencyBracketedLocale(t *testing.T) {
	tests := []struct {
		format   string
		code     string
		decimal  rune
		thousand rune
		locale   string
	}{
		{"[$€-407] #,##0.00", "EUR", ',', '.', "de-DE"},
		{"[$$-409] #,##0.00", "USD", '.', ',', "en-US"},
		{"[$£-809]#,##0.00", "GBP", '.', ',', "en-GB"},
		{"[$$-1009]#,##0.00", "CAD", '.', ',', "en-CA"},
		{"[$€-40C] #,##0.00", "EUR", ',', '.', "fr-FR"},
		{"[$CHF-807] #,##0.00", "CHF", '.', ',', "de-CH"},
		{"[$kr.-406] #,##0.00", "DKK", ',', '.', "da-DK"},
		{"[$¥-411]#,##0", "JPY", '.', ',', "ja-JP"},
		{"[$¥-804]#,##0.00", "CNY", '.', ',', "zh-CN"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ci := DetectCurrency(tt.format)
			require.NotNil(t, ci)
			assert.Equal(t, tt.code, ci.Code)
			assert.Equal(t, string(tt.decimal), string(ci.DecimalSeparator))
			assert.Equal(t, string(tt.thousand), string(ci.ThousandSeparator))
			assert.Equal(t, tt.locale, ci.Locale)
			assert.Equal(t, models.ConfidenceCertain, ci.Confidence)
		})
	}
}

func TestDetectCurrencyDetails(t *testing.T) {
	ci := DetectCurrency("[$€-407] #,##0.00")
	require.NotNil(t, ci)
	assert.Equal(t, "€", ci.Symbol)
	assert.Equal(t, models.PositionPrefix, ci.Position)
	assert.Equal(t, 2, ci.DecimalPlaces)

	ci = DetectCurrency("#,##0.000 [$€-407]")
	require.NotNil(t, ci)
	assert.Equal(t, models.PositionSuffix, ci.Position)
	assert.Equal(t, 3, ci.DecimalPlaces)

	ci = DetectCurrency("[$$-409]#,##0")
	require.NotNil(t, ci)
	assert.Equal(t, 0, ci.DecimalPlaces)
}

func TestDetectCurrencyBareSymbol(t *testing.T) {
	tests := []struct {
		format     string
		code       string
		confidence models.CurrencyConfidence
		position   models.SymbolPosition
	}{
		{`"€"#,##0.00`, "EUR", models.ConfidenceProbable, models.PositionPrefix},
		{`#,##0.00 "€"`, "EUR", models.ConfidenceProbable, models.PositionSuffix},
		{`"£"#,##0`, "GBP", models.ConfidenceProbable, models.PositionPrefix},
		{`#,##0.00 "EUR"`, "EUR", models.ConfidenceProbable, models.PositionSuffix},
		{`"$"#,##0.00`, "USD", models.ConfidenceAmbiguous, models.PositionPrefix},
		{`"¥"#,##0`, "JPY", models.ConfidenceAmbiguous, models.PositionPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ci := DetectCurrency(tt.format)
			require.NotNil(t, ci)
			assert.Equal(t, tt.code, ci.Code)
			assert.Equal(t, tt.confidence, ci.Confidence)
			assert.Equal(t, tt.position, ci.Position)
			assert.Equal(t, '.', ci.DecimalSeparator)
			assert.Equal(t, ',', ci.ThousandSeparator)
		})
	}
}

func TestDetectCurrencyNone(t *testing.T) {
	for _, f := range []string{"", "General", "0.00", "#,##0", "0%", "yyyy-mm-dd", "[$-409]mmmm d, yyyy", "@", `0.0 "kg"`} {
		assert.Nil(t, DetectCurrency(f), f)
	}
}

func TestDetectMixedCurrencies(t *testing.T) {
	got := DetectMixedCurrencies([]string{
		"[$€-407] #,##0.00",
		"0.00",
		"[$$-409] #,##0.00",
		"[$€-40C] #,##0.00",
		"",
		`"£"#,##0`,
	})
	require.Len(t, got, 3)
	assert.Equal(t, "EUR", got[0].Code)
	assert.Equal(t, "de-DE", got[0].Locale)
	assert.Equal(t, "USD", got[1].Code)
	assert.Equal(t, "GBP", got[2].Code)

	assert.Empty(t, DetectMixedCurrencies(nil))
	assert.Empty(t, DetectMixedCurrencies([]string{"0.00", "General"}))
}

func TestLookupLocale(t *testing.T) {
	l, ok := lookupLocale("0407")
	require.True(t, ok)
	assert.Equal(t, "de-DE", l.tag)
	assert.True(t, l.inverting)

	l, ok = lookupLocale("c07")
	require.True(t, ok)
	assert.Equal(t, "de-AT", l.tag)

	l, ok = lookupLocale("1010409")
	require.True(t, ok)
	assert.Equal(t, "en-US", l.tag)
	assert.False(t, l.inverting)

	_, ok = lookupLocale("FFFF")
	assert.False(t, ok)
}

func TestRegionCurrency(t *testing.T) {
	code, ok := regionCurrency("de-DE")
	require.True(t, ok)
	assert.Equal(t, "EUR", code)

	code, ok = regionCurrency("en-GB")
	require.True(t, ok)
	assert.Equal(t, "GBP", code)
}

func TestFindSymbolIgnoresWords(t *testing.T) {
	_, ok := findSymbol("Total")
	assert.False(t, ok)
	_, ok = findSymbol("all")
	assert.False(t, ok)
	s, ok := findSymbol("US$")
	assert.True(t, ok)
	assert.Equal(t, "US$", s)
}
