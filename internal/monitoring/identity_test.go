package monitoring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateConversion(t *testing.T) {
	assert.Equal(t, "2026-06-20", DateToISO("20/06/2026"))
	assert.Equal(t, "20/06/2026", DateFromISO("2026-06-20"))
	assert.Equal(t, "", DateToISO(""))
	assert.Equal(t, "", DateFromISO(""))
	assert.Equal(t, "kemarin", DateToISO("kemarin"))

	for _, d := range []string{"01/01/2026", "31/12/2025"} {
		assert.Equal(t, d, DateFromISO(DateToISO(d)))
	}
}

func TestTimeConversion(t *testing.T) {
	assert.Equal(t, "08:30", TimeToPicker("08.30"))
	assert.Equal(t, "08.30", TimeFromPicker("08:30"))
	assert.Equal(t, "", TimeToPicker(""))
	assert.Equal(t, "11:00", TimeToPicker("11:00"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Dapur Sektor 1", TitleCase("dapur sektor 1"))
	assert.Equal(t, "Hotel ABC", TitleCase("hotel ABC"))
	assert.Equal(t, "", TitleCase(""))
}

func TestTitleCaseConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := TitleCase("fulan bin fulan"); got != "Fulan Bin Fulan" {
				t.Errorf("unexpected title case %q", got)
			}
		}()
	}
	wg.Wait()
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"":        0,
		"abc":     0,
		"2500":    2500,
		" 12.5 ":  12.5,
		"2500 Kg": 2500,
		"3.25t":   3.25,
		".5":      0.5,
		"-4":      -4,
		"NaN":     0,
		"1_000":   1,
		"0x1p4":   0,
		"0x10":    0,
		"1e3":     1000,
		"2.5E-1x": 0.25,
		"2e":      2,
		"Inf":     0,
		"+7":      7,
	}
	for raw, want := range cases {
		assert.Equalf(t, want, ParseNumber(raw), "ParseNumber(%q)", raw)
	}
}

func TestFirstNumber(t *testing.T) {
	exp := &ExpeditionRecord{Weight: "800", PricePerKg: "13"}
	assert.Equal(t, 800.0, FirstNumber(exp, "volume", "weight"))
	assert.Equal(t, 13.0, FirstNumber(exp, "price", "rentCost", "pricePerKg"))

	rice := &RiceRecord{Volume: "", Price: "x"}
	assert.Equal(t, 0.0, FirstNumber(rice, "volume", "weight"))
	assert.Equal(t, 0.0, FirstNumber(rice, "price"))
}

func TestRecordFieldAccess(t *testing.T) {
	r := &SpiceRecord{Meta: Meta{ID: 3}, Name: "Bumbu Opor"}
	assert.Equal(t, "3", Field(r, "id"))
	assert.Equal(t, "false", Field(r, "isUsed"))
	assert.True(t, r.Set("isUsed", "ya"))
	assert.True(t, r.IsUsed)
	assert.False(t, r.Set("id", "9"))
	assert.False(t, r.Set("shopName", "x"))
	assert.Equal(t, 3, r.RecordID())

	clone := r.Clone().(*SpiceRecord)
	clone.Name = "changed"
	assert.Equal(t, "Bumbu Opor", r.Name)

	_, ok := (&TenantRecord{}).Get("isUsed")
	assert.False(t, ok)
}
