// Package money renders monetary amounts as grouped, two-decimal strings.
// The grouping algorithm is explicit and locale-independent so the same value
// always formats to the same bytes on every host.
package money

import (
	"strconv"
	"strings"
)

// Format renders value with exactly two fractional digits, '.' as the decimal
// separator and the integer part grouped in clusters of three digits separated
// by a single space. Negative values get a leading minus sign. No currency
// symbol is added.
//
//	Format(2000)     == "2 000.00"
//	Format(0.5)      == "0.50"
//	Format(-1234.5)  == "-1 234.50"
func Format(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		// NaN or Inf; nothing sensible to group
		return s
	}
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	n := len(intPart)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteString(frac)
	return b.String()
}
