package monitoring

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses the leading decimal number of a stored numeric string.
// Surrounding whitespace is ignored and trailing text after the number is
// dropped, so "2500 Kg" yields 2500. Only decimal notation with an optional
// exponent is read: "0x1p4" yields 0. Anything without a leading number,
// including the empty string, yields 0.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	end := numericPrefix(s)
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FirstNumber parses the first non-empty field among fields on r.
func FirstNumber(r Record, fields ...string) float64 {
	for _, f := range fields {
		if v := Field(r, f); v != "" {
			return ParseNumber(v)
		}
	}
	return 0
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > start {
			i = j
		}
	}
	return i
}
