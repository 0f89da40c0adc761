package models

import (
	"encoding/json"
	"fmt"
)

// SymbolPosition is where the currency symbol sits relative to the amount.
type SymbolPosition string

const (
	PositionPrefix SymbolPosition = "prefix"
	PositionSuffix SymbolPosition = "suffix"
)

// CurrencyConfidence grades how the currency was identified.
type CurrencyConfidence string

const (
	// ConfidenceCertain means a bracketed symbol with a locale code was found.
	ConfidenceCertain CurrencyConfidence = "certain"
	// ConfidenceProbable means a symbol or ISO code with a single meaning was found.
	ConfidenceProbable CurrencyConfidence = "probable"
	// ConfidenceAmbiguous means the symbol maps to several currencies.
	ConfidenceAmbiguous CurrencyConfidence = "ambiguous"
)

// CurrencyInfo is the currency semantics of one number format string.
type CurrencyInfo struct {
	// Code is the ISO 4217 code (e.g. "EUR").
	Code string `json:"code"`
	// Symbol as written in the format.
	Symbol string `json:"symbol"`
	// Position of the symbol.
	Position SymbolPosition `json:"position"`
	// DecimalSeparator used for display.
	DecimalSeparator rune `json:"decimal_separator"`
	// ThousandSeparator used for display.
	ThousandSeparator rune `json:"thousand_separator"`
	// DecimalPlaces is the number of digits after the decimal point.
	DecimalPlaces int `json:"decimal_places"`
	// Locale is the BCP 47 tag of the locale code, when present.
	Locale string `json:"locale,omitempty"`
	// Confidence of the detection.
	Confidence CurrencyConfidence `json:"confidence"`
}

func (c CurrencyInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", c.Code, c.Symbol, c.Confidence)
}

// MarshalJSON writes the separators as one-character strings.
func (c CurrencyInfo) MarshalJSON() ([]byte, error) {
	type plain CurrencyInfo
	return json.Marshal(struct {
		plain
		DecimalSeparator  string `json:"decimal_separator"`
		ThousandSeparator string `json:"thousand_separator"`
	}{
		plain:             plain(c),
		DecimalSeparator:  string(c.DecimalSeparator),
		ThousandSeparator: string(c.ThousandSeparator),
	})
}
