package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumberIndonesian(t *testing.T) {
	assert.Equal(t, "1.234,50", FormatNumber(1234.5, 2))
	assert.Equal(t, "350", FormatNumber(350, 0))
	assert.Equal(t, "SAR 15.000", FormatSAR(15000))
	assert.Equal(t, "12.345", FormatInteger(12345))
}

func TestFormatLongDate(t *testing.T) {
	day := time.Date(2026, 6, 22, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Senin, 22 Juni 2026", FormatLongDate(day))
	assert.Empty(t, FormatLongDate(time.Time{}))
}
