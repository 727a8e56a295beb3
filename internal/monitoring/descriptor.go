package monitoring

// Input types used when rendering a field in a form.
const (
	InputText   = "text"
	InputNumber = "number"
	InputToggle = "toggle"
	InputDate   = "date"
	InputTime   = "time"
)

// FieldSpec describes one editable field.
type FieldSpec struct {
	Field string
	Label string
	Input string
}

// Cell renders one line of a report column from a record field.
type Cell struct {
	Field  string
	Prefix string
	Suffix string
	// Dash renders "-" in place of an empty value.
	Dash bool
	// Present and Absent turn the cell into a filled/empty badge.
	Present string
	Absent  string
}

// Column is one report table column.
type Column struct {
	Header string
	Cells  []Cell
}

// PortalCard is the data-entry portal tile for a kind.
type PortalCard struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	LastUpdate  string `json:"lastUpdate"`
}

// Descriptor is the per-kind metadata that keeps search, reports, forms and
// exports generic over the entity kind.
type Descriptor struct {
	Kind        Kind
	Label       string
	FormTitle   string
	Color       string
	Icon        string
	Placeholder string
	Portal      PortalCard

	// FilterFields is the reports search whitelist.
	FilterFields []string
	// VolumeFields and PriceFields are tried in order by the volume and price sorts.
	VolumeFields []string
	PriceFields  []string
	Columns      []Column

	Identity []FieldSpec
	Entry    []FieldSpec

	// Quick search.
	SearchType       string
	TitleField       string
	SearchFields     []string
	SubtitleField    string
	SubtitleSuffix   string
	SubtitleFallback string

	// RequireSurveyorDate gates form submission on the surveyor and date identity fields.
	RequireSurveyorDate bool
}

// IdentityFields lists the identity field names of the kind.
func (d Descriptor) IdentityFields() []string {
	out := make([]string, 0, len(d.Identity))
	for _, f := range d.Identity {
		out = append(out, f.Field)
	}
	return out
}

// IsIdentity reports whether field is a broadcast identity field of the kind.
func (d Descriptor) IsIdentity(field string) bool {
	for _, f := range d.Identity {
		if f.Field == field {
			return true
		}
	}
	return false
}

var surveyorTimeColumn = Column{Header: "Surveyor & Waktu", Cells: []Cell{
	{Field: "surveyor", Dash: true},
	{Field: "date", Dash: true},
	{Field: "time", Dash: true},
}}

var kitchenIdentity = []FieldSpec{
	{Field: "kitchenName", Label: "Nama Dapur", Input: InputText},
	{Field: "address", Label: "Alamat", Input: InputText},
	{Field: "pic", Label: "Penanggung Jawab Dapur", Input: InputText},
	{Field: "date", Label: "Tanggal Monitoring", Input: InputDate},
	{Field: "time", Label: "Waktu Monitoring", Input: InputTime},
	{Field: "surveyor", Label: "Surveyor", Input: InputText},
}

var hotelIdentity = []FieldSpec{
	{Field: "hotelName", Label: "Nama Hotel", Input: InputText},
	{Field: "address", Label: "Alamat", Input: InputText},
	{Field: "sector", Label: "Sektor", Input: InputText},
	{Field: "location", Label: "Lokasi", Input: InputText},
	{Field: "pic", Label: "Penanggung Jawab", Input: InputText},
	{Field: "surveyor", Label: "Surveyor", Input: InputText},
	{Field: "date", Label: "Tanggal Monitoring", Input: InputDate},
	{Field: "time", Label: "Waktu Monitoring", Input: InputTime},
}

var descriptors = map[Kind]Descriptor{
	KindSpice: {
		Kind:        KindSpice,
		Label:       "Konsumsi Bumbu",
		FormTitle:   "Monitoring Bumbu Pasta",
		Color:       "#064E3B",
		Icon:        "chef-hat",
		Placeholder: "Cari bumbu, dapur, PIC...",
		Portal: PortalCard{
			Title: "Bumbu Pasta", Subtitle: "Makkah & Madinah",
			Description: "Monitoring penggunaan 28 jenis bumbu dan harga pasar.",
			Status:      "draft", Progress: 40, LastUpdate: "Baru saja",
		},
		FilterFields: []string{"name", "companyName", "loc", "kitchenName", "address", "pic"},
		VolumeFields: []string{"volume", "weight"},
		PriceFields:  []string{"price", "rentCost", "pricePerKg"},
		Columns: []Column{
			{Header: "Jenis Bumbu", Cells: []Cell{{Field: "name"}, {Field: "companyName"}}},
			{Header: "Detail Dapur & PIC", Cells: []Cell{
				{Field: "loc"}, {Field: "kitchenName", Dash: true}, {Field: "address"},
				{Field: "pic", Prefix: "PIC: ", Dash: true},
			}},
			{Header: "Data Bumbu", Cells: []Cell{
				{Field: "volume", Suffix: " Ton"},
				{Field: "otherIngredients", Prefix: "Bahan Lain: ", Dash: true},
			}},
			{Header: "Harga (SAR)", Cells: []Cell{{Field: "price", Prefix: "SAR "}}},
			surveyorTimeColumn,
		},
		Identity: kitchenIdentity,
		Entry: []FieldSpec{
			{Field: "name", Label: "Nama Bumbu", Input: InputText},
			{Field: "isUsed", Label: "Digunakan", Input: InputToggle},
			{Field: "companyName", Label: "Perusahaan", Input: InputText},
			{Field: "volume", Label: "Volume (Ton)", Input: InputNumber},
			{Field: "price", Label: "Harga (SAR)", Input: InputNumber},
			{Field: "otherIngredients", Label: "Bahan Lain", Input: InputText},
			{Field: "originProduct", Label: "Asal Produk", Input: InputText},
			{Field: "productPrice", Label: "Harga Produk Asal", Input: InputNumber},
		},
		SearchType:          "Bumbu",
		TitleField:          "name",
		SearchFields:        []string{"name", "companyName"},
		SubtitleField:       "companyName",
		SubtitleFallback:    "Supplier belum diisi",
		RequireSurveyorDate: true,
	},
	KindRice: {
		Kind:        KindRice,
		Label:       "Monitoring Beras",
		FormTitle:   "Monitoring Beras",
		Color:       "#059669",
		Icon:        "shopping-cart",
		Placeholder: "Cari perusahaan, jenis beras...",
		Portal: PortalCard{
			Title: "Monitoring Beras", Subtitle: "Stok & Kualitas",
			Description: "Data beras premium dan volume distribusi.",
			Status:      "pending", Progress: 0, LastUpdate: "-",
		},
		FilterFields: []string{"companyName", "riceType", "volume"},
		VolumeFields: []string{"volume", "weight"},
		PriceFields:  []string{"price", "rentCost", "pricePerKg"},
		Columns: []Column{
			{Header: "Perusahaan", Cells: []Cell{{Field: "companyName"}}},
			{Header: "Jenis & Volume", Cells: []Cell{{Field: "riceType"}, {Field: "volume", Prefix: "Vol: ", Suffix: " Ton"}}},
			{Header: "Harga (SAR)", Cells: []Cell{{Field: "price", Prefix: "SAR "}}},
			{Header: "Asal Produk", Cells: []Cell{
				{Field: "originProduct", Dash: true},
				{Field: "productPrice", Prefix: "Harga Asal: ", Dash: true},
			}},
			{Header: "Surveyor & Waktu", Cells: []Cell{{Field: "surveyor", Dash: true}, {Field: "date", Dash: true}}},
		},
		Identity: kitchenIdentity,
		Entry: []FieldSpec{
			{Field: "companyName", Label: "Perusahaan", Input: InputText},
			{Field: "riceType", Label: "Jenis Beras", Input: InputText},
			{Field: "isUsed", Label: "Digunakan", Input: InputToggle},
			{Field: "volume", Label: "Volume (Ton)", Input: InputNumber},
			{Field: "price", Label: "Harga (SAR)", Input: InputNumber},
			{Field: "otherRice", Label: "Beras Lain", Input: InputText},
			{Field: "originProduct", Label: "Asal Produk", Input: InputText},
			{Field: "productPrice", Label: "Harga Produk Asal", Input: InputNumber},
		},
		SearchType:    "Beras",
		TitleField:    "companyName",
		SearchFields:  []string{"companyName"},
		SubtitleField: "riceType",
	},
	KindRTE: {
		Kind:        KindRTE,
		Label:       "RTE (Siap Saji)",
		FormTitle:   "Makanan Siap Saji",
		Color:       "#D4AF37",
		Icon:        "utensils",
		Placeholder: "Cari perusahaan, menu...",
		Portal: PortalCard{
			Title: "Makanan Siap Saji", Subtitle: "Distribusi RTE",
			Description: "Monitoring porsi dan perusahaan penyedia.",
			Status:      "pending", Progress: 0, LastUpdate: "-",
		},
		FilterFields: []string{"companyName", "menu"},
		VolumeFields: []string{"volume", "weight"},
		PriceFields:  []string{"price", "rentCost", "pricePerKg"},
		Columns: []Column{
			{Header: "Perusahaan", Cells: []Cell{{Field: "companyName"}}},
			{Header: "Menu / Jenis", Cells: []Cell{{Field: "menu"}}},
			{Header: "Lokasi & PIC", Cells: []Cell{
				{Field: "kitchenName", Dash: true}, {Field: "address", Dash: true},
				{Field: "pic", Prefix: "PIC: ", Dash: true},
			}},
			{Header: "Volume & Harga", Cells: []Cell{{Field: "volume", Suffix: " Porsi"}, {Field: "price", Prefix: "SAR "}}},
			surveyorTimeColumn,
		},
		Identity: []FieldSpec{
			{Field: "kitchenName", Label: "Nama Dapur", Input: InputText},
			{Field: "address", Label: "Alamat", Input: InputText},
			{Field: "hotelName", Label: "Nama Hotel", Input: InputText},
			{Field: "hotelNumber", Label: "Nomor Hotel", Input: InputText},
			{Field: "kloterName", Label: "Nama Kloter", Input: InputText},
			{Field: "pic", Label: "Penanggung Jawab", Input: InputText},
			{Field: "surveyor", Label: "Surveyor", Input: InputText},
			{Field: "date", Label: "Tanggal Monitoring", Input: InputDate},
			{Field: "time", Label: "Waktu Monitoring", Input: InputTime},
		},
		Entry: []FieldSpec{
			{Field: "companyName", Label: "Perusahaan", Input: InputText},
			{Field: "menu", Label: "Menu", Input: InputText},
			{Field: "isUsed", Label: "Digunakan", Input: InputToggle},
			{Field: "volume", Label: "Volume (Porsi)", Input: InputNumber},
			{Field: "price", Label: "Harga (SAR)", Input: InputNumber},
		},
		SearchType:    "RTE",
		TitleField:    "companyName",
		SearchFields:  []string{"companyName"},
		SubtitleField: "menu",
	},
	KindTenant: {
		Kind:        KindTenant,
		Label:       "Tenant Hotel",
		FormTitle:   "Potensi Ekonomi",
		Color:       "#1E3A8A",
		Icon:        "store",
		Placeholder: "Cari toko, hotel, PIC...",
		Portal: PortalCard{
			Title: "Potensi Ekonomi", Subtitle: "Survei Hotel & Tenant",
			Description: "Sewa toko dan produk bestseller.",
			Status:      "pending", Progress: 0, LastUpdate: "-",
		},
		FilterFields: []string{"shopName", "hotelName", "location", "pic"},
		VolumeFields: []string{"volume", "weight"},
		PriceFields:  []string{"price", "rentCost", "pricePerKg"},
		Columns: []Column{
			{Header: "Nama Toko", Cells: []Cell{{Field: "shopName"}}},
			{Header: "Lokasi Hotel & PIC", Cells: []Cell{
				{Field: "hotelName", Dash: true}, {Field: "location", Dash: true},
				{Field: "pic", Prefix: "PIC: ", Dash: true},
			}},
			{Header: "Produk Utama", Cells: []Cell{{Field: "productType"}, {Field: "bestSeller", Prefix: "Best: "}}},
			{Header: "Biaya Sewa", Cells: []Cell{{Field: "rentCost", Prefix: "SAR "}}},
			surveyorTimeColumn,
		},
		Identity: hotelIdentity,
		Entry: []FieldSpec{
			{Field: "shopName", Label: "Nama Toko", Input: InputText},
			{Field: "productType", Label: "Jenis Produk", Input: InputText},
			{Field: "bestSeller", Label: "Produk Terlaris", Input: InputText},
			{Field: "rentCost", Label: "Biaya Sewa (SAR)", Input: InputNumber},
		},
		SearchType:    "Tenant",
		TitleField:    "shopName",
		SearchFields:  []string{"shopName"},
		SubtitleField: "productType",
	},
	KindExpedition: {
		Kind:        KindExpedition,
		Label:       "Ekspedisi Barang",
		FormTitle:   "Ekspedisi",
		Color:       "#B45309",
		Icon:        "truck",
		Placeholder: "Cari perusahaan, hotel, PIC...",
		Portal: PortalCard{
			Title: "Ekspedisi", Subtitle: "Kargo Jemaah",
			Description: "Harga kargo per kilo dan berat volume.",
			Status:      "draft", Progress: 15, LastUpdate: "1 jam lalu",
		},
		FilterFields: []string{"companyName", "hotelName", "location", "pic"},
		VolumeFields: []string{"volume", "weight"},
		PriceFields:  []string{"price", "rentCost", "pricePerKg"},
		Columns: []Column{
			{Header: "Perusahaan", Cells: []Cell{{Field: "companyName"}}},
			{Header: "Lokasi Asal & PIC", Cells: []Cell{
				{Field: "hotelName", Dash: true}, {Field: "location", Dash: true},
				{Field: "pic", Prefix: "PIC: ", Dash: true},
			}},
			{Header: "Berat (Kg)", Cells: []Cell{{Field: "weight", Suffix: " Kg"}}},
			{Header: "Harga / Kg", Cells: []Cell{{Field: "pricePerKg", Prefix: "SAR "}}},
			surveyorTimeColumn,
		},
		Identity: hotelIdentity,
		Entry: []FieldSpec{
			{Field: "companyName", Label: "Perusahaan", Input: InputText},
			{Field: "pricePerKg", Label: "Harga per Kg (SAR)", Input: InputNumber},
			{Field: "weight", Label: "Berat (Kg)", Input: InputNumber},
		},
		SearchType:     "Ekspedisi",
		TitleField:     "companyName",
		SearchFields:   []string{"companyName"},
		SubtitleField:  "weight",
		SubtitleSuffix: " Kg",
	},
	KindTelecom: {
		Kind:        KindTelecom,
		Label:       "Telekomunikasi",
		FormTitle:   "Telekomunikasi",
		Color:       "#7C3AED",
		Icon:        "signal",
		Placeholder: "Cari provider, jemaah, kloter...",
		Portal: PortalCard{
			Title: "Telekomunikasi", Subtitle: "Provider Jemaah",
			Description: "Survei penggunaan RoaMax dan provider.",
			Status:      "pending", Progress: 0, LastUpdate: "-",
		},
		FilterFields: []string{"providerName", "respondentName", "kloter", "embarkation", "province"},
		VolumeFields: []string{"volume", "weight"},
		PriceFields:  []string{"price", "rentCost", "pricePerKg"},
		Columns: []Column{
			{Header: "Provider", Cells: []Cell{{Field: "providerName"}}},
			{Header: "Identitas Jemaah", Cells: []Cell{
				{Field: "respondentName", Dash: true},
				{Field: "kloter", Prefix: "Kloter: ", Dash: true},
				{Field: "embarkation", Dash: true},
				{Field: "province"},
			}},
			{Header: "Paket Roaming", Cells: []Cell{{Field: "roamingPackage", Dash: true}}},
			{Header: "Status", Cells: []Cell{{Field: "roamingPackage", Present: "Terisi", Absent: "Kosong"}}},
			{Header: "Surveyor & Waktu", Cells: []Cell{{Field: "surveyor", Dash: true}, {Field: "date", Dash: true}}},
		},
		Identity: []FieldSpec{
			{Field: "respondentName", Label: "Nama Responden", Input: InputText},
			{Field: "kloter", Label: "Kloter", Input: InputText},
			{Field: "embarkation", Label: "Embarkasi", Input: InputText},
			{Field: "province", Label: "Provinsi", Input: InputText},
			{Field: "surveyor", Label: "Surveyor", Input: InputText},
			{Field: "date", Label: "Tanggal Monitoring", Input: InputDate},
		},
		Entry: []FieldSpec{
			{Field: "providerName", Label: "Provider", Input: InputText},
			{Field: "roamingPackage", Label: "Paket Roaming", Input: InputText},
		},
		SearchType:    "Telco",
		TitleField:    "providerName",
		SearchFields:  []string{"providerName"},
		SubtitleField: "roamingPackage",
	},
}

// Describe returns the descriptor of kind. Unknown kinds yield the zero value.
func Describe(kind Kind) Descriptor {
	return descriptors[kind]
}

// DescribeCollection returns the descriptor of the kind stored in c.
func DescribeCollection(c Collection) Descriptor {
	return descriptors[c.Kind()]
}
