package types

import "strings"

// DefaultCurrency is used when neither the caller nor the quote supplies one.
const DefaultCurrency = "USD"

// NormalizeCurrency uppercases and truncates a currency code to three
// characters, falling back to the default when the input is blank.
func NormalizeCurrency(value string) string {
	code := strings.ToUpper(strings.TrimSpace(value))
	if code == "" {
		return DefaultCurrency
	}
	if len(code) > 3 {
		code = code[:3]
	}
	return code
}
