package monitoring

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateToISO converts a stored DD/MM/YYYY date into the YYYY-MM-DD form used
// by date pickers. Empty input stays empty; input without three parts is
// returned unchanged.
func DateToISO(display string) string {
	display = strings.TrimSpace(display)
	if display == "" {
		return ""
	}
	parts := strings.Split(display, "/")
	if len(parts) != 3 {
		return display
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// DateFromISO converts a YYYY-MM-DD picker value into DD/MM/YYYY. A cleared
// picker yields "".
func DateFromISO(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// TimeToPicker converts a stored HH.MM time into HH:MM.
func TimeToPicker(stored string) string {
	if stored == "" {
		return ""
	}
	return strings.Replace(stored, ".", ":", 1)
}

// TimeFromPicker converts an HH:MM picker value into the stored HH.MM form.
func TimeFromPicker(picker string) string {
	return strings.Replace(picker, ":", ".", 1)
}

// TitleCase upper-cases the first letter of every word and leaves the rest
// of each word as typed.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	// Casers keep state between calls and cannot be shared across goroutines.
	return cases.Title(language.Indonesian, cases.NoLower).String(s)
}
