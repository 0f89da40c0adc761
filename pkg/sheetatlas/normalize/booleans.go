package normalize

import "strings"

// "X", "1" and "0" are not booleans in text cells.
var (
	trueTokens  = map[string]bool{"true": true, "yes": true, "y": true, "✓": true, "✔": true, "☑": true}
	falseTokens = map[string]bool{"false": true, "no": true, "n": true, "✗": true, "✘": true, "☐": true}
)

// parseBoolean matches s against the boolean whitelist, ignoring case.
func parseBoolean(s string) (value bool, ok bool) {
	t := strings.ToLower(s)
	switch {
	case trueTokens[t]:
		return true, true
	case falseTokens[t]:
		return false, true
	}
	return false, false
}
