package util

import (
	"net/url"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ToValidUTF8 ensures a string is valid UTF-8.
// Invalid input is decoded as Latin-1, which is what spreadsheet exports
// from older ERP systems tend to be.
func ToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err == nil {
		return decoded
	}

	// Latin-1 maps 1:1 to code points 0-255
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return string(runes)
}

// ToValidUTF8Bytes ensures bytes represent valid UTF-8.
func ToValidUTF8Bytes(b []byte) []byte {
	if utf8.Valid(b) {
		return b
	}
	return []byte(ToValidUTF8(string(b)))
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a money value with thousands separators and two
// decimals, e.g. 1,200.00.
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("%.2f", v)
}

// Truncate shortens s to max runes, ending in "…" when cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

// RedactURL hides the password of a connection url.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
