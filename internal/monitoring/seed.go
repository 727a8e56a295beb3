package monitoring

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// SeedFunc builds the initial content of every collection.
type SeedFunc func(now time.Time) map[Collection][]Record

type catalogEntry struct {
	company string
	item    string
}

// spiceCatalog is the fixed list of 28 monitored spice pastes.
var spiceCatalog = []catalogEntry{
	{"PT. Halalan Thayyiban Indonesia (HTI)", "Bumbu Nasi Kuning"},
	{"PT. Foodindo Dwivestama", "Bumbu Gulai"},
	{"PT. Pangansari Utama Food", "Bumbu Tongseng"},
	{"PT. Laukita Bersama Indonesia", "Bumbu Nasi Goreng"},
	{"PT. Alnusakon Era Laju", "Bumbu Opor"},
	{"PT. Sekar Laut", "Bumbu Bistik/Teriyaki"},
	{"PT. Foodex Inti Ingredients", "Bumbu Nasi Goreng Kampung"},
	{"PT. Ikafood Putramas", "Bumbu Kecap"},
	{"PT. Niaga Citra Mandiri", "Bumbu Gepuk"},
	{"PT. Berkah Abadi Pangan", "Bumbu Krengsengan"},
	{"", "Bumbu Nasi Uduk"},
	{"", "Bumbu Woku"},
	{"", "Bumbu Balado"},
	{"", "Bumbu Rica"},
	{"", "Bumbu Semur"},
	{"", "Bumbu Rajang"},
	{"", "Bumbu Bali"},
	{"", "Bumbu Saus Tiram"},
	{"", "Bumbu Tumis"},
	{"", "Bumbu Lada Hitam"},
	{"", "Bumbu Saus Mentega"},
	{"", "Bumbu Asam Manis"},
	{"", "Bumbu Rujak"},
	{"", "Bumbu Rendang"},
	{"", "Bumbu Kuning"},
	{"", "Bumbu Dabu-Dabu"},
	{"", "Bumbu Pesmol"},
	{"", "Bumbu Habang"},
}

// rteCatalog lists the ready-to-eat caterers and their menus.
var rteCatalog = []catalogEntry{
	{"PT. Halalan Thayyiban Indonesia (HTI)", "Nasi, Rendang Daging, Kacang Merah"},
	{"PT. Family Food Indonesia", "Nasi, Bumbu Daging Balado, Wortel dan kentang"},
	{"PT. Berkat Pangan Abadi", "Nasi, Sayur, Semur Ayam, Kacang Merah"},
	{"PT. Laukita Bersama Indonesia (Umara)", "Nasi, Kari Ayam, Kentang"},
	{"PT. Foodex inti Ingredients", "Nasi, Gulai Ayam, Wortel, Kentang"},
	{"PT. Indo Niara Agro (Inagro)", "Nasi, Daging Bumbu lada hitam, Kacang Merah"},
	{"PT. Adipura Mandiri Indotama", "Nasi, Ikan Fillet Asam Manis"},
	{"PT. Jakarana Tama", "Mie Goreng Ayam Spesial"},
	{"PT. Pangansari Utama Food Distribution", "Nasi, Sapi Lada Hitam"},
	{"PT Kokikit Indonesia Teknologi", "Nasi, Ayam Woku"},
}

const (
	usedSpices = 6
	usedRTE    = 4
)

// DefaultSeed returns the demo dataset. Random volumes and prices are drawn
// from a source seeded with seed, so equal seeds give equal datasets.
func DefaultSeed(seed int64) SeedFunc {
	return func(now time.Time) map[Collection][]Record {
		rng := rand.New(rand.NewSource(seed))
		return map[Collection][]Record{
			CollectionSpiceMakkah:  seedSpices(rng, LocationMakkah, now),
			CollectionSpiceMadinah: seedSpices(rng, LocationMadinah, now),
			CollectionRTE:          seedRTE(rng, now),
			CollectionTenant:       seedTenants(now),
			CollectionExpedition:   seedExpeditions(now),
			CollectionRice:         seedRice(now),
			CollectionTelecom:      seedTelecom(now),
		}
	}
}

func seedSpices(rng *rand.Rand, loc Location, now time.Time) []Record {
	out := make([]Record, 0, len(spiceCatalog))
	for idx, entry := range spiceCatalog {
		r := &SpiceRecord{
			Meta:        Meta{ID: idx + 1, CreatedAt: now},
			Name:        entry.item,
			CompanyName: entry.company,
			IsUsed:      idx < usedSpices,
			KitchenName: fmt.Sprintf("Dapur %s Sektor %d", loc, idx%5+1),
			Address:     fmt.Sprintf("Jalan %s No. %d", loc, idx+10),
			PIC:         "Abdullah",
			Surveyor:    "Fulan bin Fulan",
			Date:        "20/06/2026",
			Time:        "08:30",
		}
		if r.CompanyName == "" {
			r.CompanyName = fmt.Sprintf("Supplier %s %d", loc, idx+1)
		}
		if r.IsUsed {
			r.Volume = strconv.FormatFloat(rng.Float64()*5+1, 'f', 2, 64)
			r.Price = strconv.FormatFloat(rng.Float64()*5000+15000, 'f', 0, 64)
			r.OriginProduct = "Indonesia"
			r.ProductPrice = strconv.FormatFloat(rng.Float64()*4000+12000, 'f', 0, 64)
		}
		if idx == 0 {
			r.OtherIngredients = "Daun Salam, Serai"
		}
		out = append(out, r)
	}
	return out
}

func seedRTE(rng *rand.Rand, now time.Time) []Record {
	out := make([]Record, 0, len(rteCatalog))
	for idx, entry := range rteCatalog {
		r := &RTERecord{
			Meta:        Meta{ID: idx + 1, CreatedAt: now},
			CompanyName: entry.company,
			Menu:        entry.item,
			IsUsed:      idx < usedRTE,
			KitchenName: fmt.Sprintf("Dapur Katering %d", idx+1),
			Address:     "Makkah Al Mukarramah",
			HotelName:   fmt.Sprintf("Hotel Al Kiswah Tower %d", idx+1),
			HotelNumber: fmt.Sprintf("90%d", idx),
			KloterName:  fmt.Sprintf("JKG-%d", idx+10),
			PIC:         "Muhammad Ali",
			Surveyor:    "Ahmad S.",
			Date:        "21/06/2026",
			Time:        "11:00",
		}
		if r.IsUsed {
			r.Volume = strconv.Itoa(rng.Intn(2000) + 1000)
			r.Price = strconv.Itoa(rng.Intn(5) + 12)
		}
		out = append(out, r)
	}
	return out
}

func seedTenants(now time.Time) []Record {
	m := Meta{CreatedAt: now}
	return []Record{
		&TenantRecord{Meta: withID(m, 1), ShopName: "Toko Indonesia Barokah", ProductType: "Makanan & Minuman Indonesia",
			BestSeller: "Indomie, Saus Sambal", RentCost: "15000", HotelName: "Al Kiswah Towers", Address: "Jarwal, Makkah",
			Sector: "1", Location: "Lantai Dasar", PIC: "H. Slamet", Surveyor: "Budi Santoso", Date: "22/06/2026", Time: "09:00"},
		&TenantRecord{Meta: withID(m, 2), ShopName: "Bin Dawood Souvenir", ProductType: "Oleh-oleh Haji",
			BestSeller: "Sajadah, Kurma Ajwa", RentCost: "25000", HotelName: "Makkah Clock Tower", Address: "Ajyad, Makkah",
			Sector: "3", Location: "Lantai 1", PIC: "Ahmed", Surveyor: "Budi Santoso", Date: "22/06/2026", Time: "10:30"},
		&TenantRecord{Meta: withID(m, 3), ShopName: "Bakso Mang Oedin", ProductType: "Makanan Siap Saji",
			BestSeller: "Bakso Urat", RentCost: "18000", HotelName: "Sofwah Tower", Address: "Ajyad, Makkah",
			Sector: "3", Location: "Food Court", PIC: "Udin", Surveyor: "Budi Santoso", Date: "22/06/2026", Time: "12:00"},
	}
}

func seedExpeditions(now time.Time) []Record {
	m := Meta{CreatedAt: now}
	return []Record{
		&ExpeditionRecord{Meta: withID(m, 1), CompanyName: "Nusantara Cargo", PricePerKg: "12", Weight: "2500",
			HotelName: "Kiswah Tower 1", Address: "Jarwal", Sector: "1", Location: "Lobby Utama", PIC: "Rudi",
			Surveyor: "Joko", Date: "23/06/2026", Time: "14:00"},
		&ExpeditionRecord{Meta: withID(m, 2), CompanyName: "Pos Indonesia", PricePerKg: "15", Weight: "1200",
			HotelName: "Arkan Bakkah", Address: "Mahbas Jin", Sector: "2", Location: "Area Parkir", PIC: "Siti",
			Surveyor: "Joko", Date: "23/06/2026", Time: "15:30"},
		&ExpeditionRecord{Meta: withID(m, 3), CompanyName: "TIKI Arab Saudi", PricePerKg: "13", Weight: "800",
			HotelName: "Rawda Al Aseel", Address: "Syisah", Sector: "4", Location: "Lantai M", PIC: "Bambang",
			Surveyor: "Joko", Date: "23/06/2026", Time: "16:45"},
	}
}

func seedRice(now time.Time) []Record {
	m := Meta{CreatedAt: now}
	return []Record{
		&RiceRecord{Meta: withID(m, 1), CompanyName: "Perum BULOG", RiceType: "Beras Premium", IsUsed: true,
			Volume: "200", Price: "3500", OtherRice: "-", OriginProduct: "Indonesia", ProductPrice: "12000",
			KitchenName: "Dapur Sektor 1", Address: "Makkah", PIC: "Kepala Dapur", Surveyor: "Admin",
			Date: "19/06/2026", Time: "07:00"},
		&RiceRecord{Meta: withID(m, 2), CompanyName: "Al-Watania Poultry (Rice Div)", RiceType: "Beras Basmati", IsUsed: true,
			Volume: "150", Price: "4200", OtherRice: "-", OriginProduct: "Arab Saudi", ProductPrice: "4000",
			KitchenName: "Dapur Sektor 2", Address: "Madinah", PIC: "Syekh Ali", Surveyor: "Admin",
			Date: "19/06/2026", Time: "08:00"},
		&RiceRecord{Meta: withID(m, 3), CompanyName: "PT. Padi Unggul", RiceType: "Beras Pandan Wangi",
			OriginProduct: "Indonesia"},
	}
}

func seedTelecom(now time.Time) []Record {
	m := Meta{CreatedAt: now}
	return []Record{
		&TelecomRecord{Meta: withID(m, 1), ProviderName: "Telkomsel", RoamingPackage: "RoaMax Haji 40GB",
			RespondentName: "H. Amirudin", Kloter: "SUB-45", Embarkation: "Surabaya", Province: "Jawa Timur",
			Surveyor: "Rina", Date: "24/06/2026"},
		&TelecomRecord{Meta: withID(m, 2), ProviderName: "Indosat Ooredoo", RoamingPackage: "Freedom Internet Haji",
			RespondentName: "Hj. Siti Aminah", Kloter: "JKG-12", Embarkation: "Jakarta", Province: "DKI Jakarta",
			Surveyor: "Rina", Date: "24/06/2026"},
		&TelecomRecord{Meta: withID(m, 3), ProviderName: "STC (Saudi Telecom)", RoamingPackage: "Sawa Ziyara",
			RespondentName: "H. Budi", Kloter: "SOC-20", Embarkation: "Solo", Province: "Jawa Tengah",
			Surveyor: "Rina", Date: "24/06/2026"},
		&TelecomRecord{Meta: withID(m, 4), ProviderName: "Mobily", RoamingPackage: "Hajj & Umrah Package",
			RespondentName: "Hj. Dewi", Kloter: "MES-05", Embarkation: "Medan", Province: "Sumatera Utara",
			Surveyor: "Rina", Date: "24/06/2026"},
	}
}

func withID(m Meta, id int) Meta {
	m.ID = id
	return m
}
