package utils

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// PrefixLen counts characters, not bytes, so length limits treat multi-byte input fairly
func PrefixLen(s string) int {
	return utf8.RuneCountInString(s)
}
