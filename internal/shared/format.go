package shared

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var indonesian = language.Indonesian

// FormatNumber renders v with Indonesian digit grouping, e.g. 1.234,5.
func FormatNumber(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	p := message.NewPrinter(indonesian)
	return p.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// FormatInteger renders n with Indonesian digit grouping.
func FormatInteger(n int) string {
	return message.NewPrinter(indonesian).Sprintf("%d", n)
}

// FormatSAR renders a Saudi riyal amount without decimals.
func FormatSAR(v float64) string {
	return "SAR " + FormatNumber(v, 0)
}

var (
	longDays   = []string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	longMonths = []string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli",
		"Agustus", "September", "Oktober", "November", "Desember"}
)

// FormatLongDate renders t as "Senin, 22 Juni 2026".
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s, %d %s %d", longDays[t.Weekday()], t.Day(), longMonths[t.Month()-1], t.Year())
}
