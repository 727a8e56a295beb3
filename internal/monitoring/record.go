package monitoring

import (
	"strconv"
	"strings"
	"time"
)

// Record is implemented by the six survey record types. Field access goes
// through the camelCase wire names so forms, broadcast and queries stay
// generic over the kind.
type Record interface {
	RecordID() int
	Kind() Kind
	Get(field string) (string, bool)
	Set(field, value string) bool
	Clone() Record

	meta() *Meta
}

// Meta carries the bookkeeping shared by every record.
type Meta struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordID returns the collection-local identifier.
func (m *Meta) RecordID() int { return m.ID }

func (m *Meta) meta() *Meta { return m }

const (
	fieldID      = "id"
	fieldIsUsed  = "isUsed"
	fieldCreated = "createdAt"
)

func getField(m *Meta, field string, strs map[string]*string, used *bool) (string, bool) {
	switch field {
	case fieldID:
		return strconv.Itoa(m.ID), true
	case fieldCreated:
		if m.CreatedAt.IsZero() {
			return "", true
		}
		return m.CreatedAt.Format(time.RFC3339), true
	case fieldIsUsed:
		if used == nil {
			return "", false
		}
		return strconv.FormatBool(*used), true
	}
	ptr, ok := strs[field]
	if !ok {
		return "", false
	}
	return *ptr, true
}

func setField(field, value string, strs map[string]*string, used *bool) bool {
	if field == fieldIsUsed {
		if used == nil {
			return false
		}
		*used = ParseBool(value)
		return true
	}
	ptr, ok := strs[field]
	if !ok {
		return false
	}
	*ptr = value
	return true
}

// ParseBool accepts the checkbox and toggle spellings posted by forms.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes", "ya":
		return true
	default:
		return false
	}
}

// SpiceRecord tracks one catalog spice at a kitchen.
type SpiceRecord struct {
	Meta
	Name             string `json:"name"`
	IsUsed           bool   `json:"isUsed"`
	Volume           string `json:"volume"`
	Price            string `json:"price"`
	OtherIngredients string `json:"otherIngredients"`
	OriginProduct    string `json:"originProduct"`
	ProductPrice     string `json:"productPrice"`
	CompanyName      string `json:"companyName"`
	KitchenName      string `json:"kitchenName"`
	Address          string `json:"address"`
	PIC              string `json:"pic"`
	Surveyor         string `json:"surveyor"`
	Date             string `json:"date"`
	Time             string `json:"time"`
}

func (r *SpiceRecord) Kind() Kind { return KindSpice }

func (r *SpiceRecord) textFields() map[string]*string {
	return map[string]*string{
		"name":             &r.Name,
		"volume":           &r.Volume,
		"price":            &r.Price,
		"otherIngredients": &r.OtherIngredients,
		"originProduct":    &r.OriginProduct,
		"productPrice":     &r.ProductPrice,
		"companyName":      &r.CompanyName,
		"kitchenName":      &r.KitchenName,
		"address":          &r.Address,
		"pic":              &r.PIC,
		"surveyor":         &r.Surveyor,
		"date":             &r.Date,
		"time":             &r.Time,
	}
}

func (r *SpiceRecord) Get(field string) (string, bool) {
	return getField(&r.Meta, field, r.textFields(), &r.IsUsed)
}

func (r *SpiceRecord) Set(field, value string) bool {
	return setField(field, value, r.textFields(), &r.IsUsed)
}

func (r *SpiceRecord) Clone() Record {
	c := *r
	return &c
}

// RiceRecord tracks rice supplied to a kitchen.
type RiceRecord struct {
	Meta
	CompanyName   string `json:"companyName"`
	RiceType      string `json:"riceType"`
	IsUsed        bool   `json:"isUsed"`
	Volume        string `json:"volume"`
	Price         string `json:"price"`
	OtherRice     string `json:"otherRice"`
	OriginProduct string `json:"originProduct"`
	ProductPrice  string `json:"productPrice"`
	KitchenName   string `json:"kitchenName"`
	Address       string `json:"address"`
	PIC           string `json:"pic"`
	Surveyor      string `json:"surveyor"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

func (r *RiceRecord) Kind() Kind { return KindRice }

func (r *RiceRecord) textFields() map[string]*string {
	return map[string]*string{
		"companyName":   &r.CompanyName,
		"riceType":      &r.RiceType,
		"volume":        &r.Volume,
		"price":         &r.Price,
		"otherRice":     &r.OtherRice,
		"originProduct": &r.OriginProduct,
		"productPrice":  &r.ProductPrice,
		"kitchenName":   &r.KitchenName,
		"address":       &r.Address,
		"pic":           &r.PIC,
		"surveyor":      &r.Surveyor,
		"date":          &r.Date,
		"time":          &r.Time,
	}
}

func (r *RiceRecord) Get(field string) (string, bool) {
	return getField(&r.Meta, field, r.textFields(), &r.IsUsed)
}

func (r *RiceRecord) Set(field, value string) bool {
	return setField(field, value, r.textFields(), &r.IsUsed)
}

func (r *RiceRecord) Clone() Record {
	c := *r
	return &c
}

// RTERecord tracks ready-to-eat meal distribution by a catering company.
type RTERecord struct {
	Meta
	CompanyName string `json:"companyName"`
	Menu        string `json:"menu"`
	IsUsed      bool   `json:"isUsed"`
	Volume      string `json:"volume"`
	Price       string `json:"price"`
	KitchenName string `json:"kitchenName"`
	Address     string `json:"address"`
	HotelName   string `json:"hotelName"`
	HotelNumber string `json:"hotelNumber"`
	KloterName  string `json:"kloterName"`
	PIC         string `json:"pic"`
	Surveyor    string `json:"surveyor"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

func (r *RTERecord) Kind() Kind { return KindRTE }

func (r *RTERecord) textFields() map[string]*string {
	return map[string]*string{
		"companyName": &r.CompanyName,
		"menu":        &r.Menu,
		"volume":      &r.Volume,
		"price":       &r.Price,
		"kitchenName": &r.KitchenName,
		"address":     &r.Address,
		"hotelName":   &r.HotelName,
		"hotelNumber": &r.HotelNumber,
		"kloterName":  &r.KloterName,
		"pic":         &r.PIC,
		"surveyor":    &r.Surveyor,
		"date":        &r.Date,
		"time":        &r.Time,
	}
}

func (r *RTERecord) Get(field string) (string, bool) {
	return getField(&r.Meta, field, r.textFields(), &r.IsUsed)
}

func (r *RTERecord) Set(field, value string) bool {
	return setField(field, value, r.textFields(), &r.IsUsed)
}

func (r *RTERecord) Clone() Record {
	c := *r
	return &c
}

// TenantRecord tracks a shop renting space in a pilgrim hotel.
type TenantRecord struct {
	Meta
	ShopName    string `json:"shopName"`
	ProductType string `json:"productType"`
	BestSeller  string `json:"bestSeller"`
	RentCost    string `json:"rentCost"`
	HotelName   string `json:"hotelName"`
	Address     string `json:"address"`
	Sector      string `json:"sector"`
	Location    string `json:"location"`
	PIC         string `json:"pic"`
	Surveyor    string `json:"surveyor"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

func (r *TenantRecord) Kind() Kind { return KindTenant }

func (r *TenantRecord) textFields() map[string]*string {
	return map[string]*string{
		"shopName":    &r.ShopName,
		"productType": &r.ProductType,
		"bestSeller":  &r.BestSeller,
		"rentCost":    &r.RentCost,
		"hotelName":   &r.HotelName,
		"address":     &r.Address,
		"sector":      &r.Sector,
		"location":    &r.Location,
		"pic":         &r.PIC,
		"surveyor":    &r.Surveyor,
		"date":        &r.Date,
		"time":        &r.Time,
	}
}

func (r *TenantRecord) Get(field string) (string, bool) {
	return getField(&r.Meta, field, r.textFields(), nil)
}

func (r *TenantRecord) Set(field, value string) bool {
	return setField(field, value, r.textFields(), nil)
}

func (r *TenantRecord) Clone() Record {
	c := *r
	return &c
}

// ExpeditionRecord tracks a cargo company shipping pilgrim luggage.
type ExpeditionRecord struct {
	Meta
	CompanyName string `json:"companyName"`
	PricePerKg  string `json:"pricePerKg"`
	Weight      string `json:"weight"`
	HotelName   string `json:"hotelName"`
	Address     string `json:"address"`
	Sector      string `json:"sector"`
	Location    string `json:"location"`
	PIC         string `json:"pic"`
	Surveyor    string `json:"surveyor"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

func (r *ExpeditionRecord) Kind() Kind { return KindExpedition }

func (r *ExpeditionRecord) textFields() map[string]*string {
	return map[string]*string{
		"companyName": &r.CompanyName,
		"pricePerKg":  &r.PricePerKg,
		"weight":      &r.Weight,
		"hotelName":   &r.HotelName,
		"address":     &r.Address,
		"sector":      &r.Sector,
		"location":    &r.Location,
		"pic":         &r.PIC,
		"surveyor":    &r.Surveyor,
		"date":        &r.Date,
		"time":        &r.Time,
	}
}

func (r *ExpeditionRecord) Get(field string) (string, bool) {
	return getField(&r.Meta, field, r.textFields(), nil)
}

func (r *ExpeditionRecord) Set(field, value string) bool {
	return setField(field, value, r.textFields(), nil)
}

func (r *ExpeditionRecord) Clone() Record {
	c := *r
	return &c
}

// TelecomRecord tracks the roaming provider used by one respondent.
type TelecomRecord struct {
	Meta
	ProviderName   string `json:"providerName"`
	RoamingPackage string `json:"roamingPackage"`
	RespondentName string `json:"respondentName"`
	Kloter         string `json:"kloter"`
	Embarkation    string `json:"embarkation"`
	Province       string `json:"province"`
	Surveyor       string `json:"surveyor"`
	Date           string `json:"date"`
}

func (r *TelecomRecord) Kind() Kind { return KindTelecom }

func (r *TelecomRecord) textFields() map[string]*string {
	return map[string]*string{
		"providerName":   &r.ProviderName,
		"roamingPackage": &r.RoamingPackage,
		"respondentName": &r.RespondentName,
		"kloter":         &r.Kloter,
		"embarkation":    &r.Embarkation,
		"province":       &r.Province,
		"surveyor":       &r.Surveyor,
		"date":           &r.Date,
	}
}

func (r *TelecomRecord) Get(field string) (string, bool) {
	return getField(&r.Meta, field, r.textFields(), nil)
}

func (r *TelecomRecord) Set(field, value string) bool {
	return setField(field, value, r.textFields(), nil)
}

func (r *TelecomRecord) Clone() Record {
	c := *r
	return &c
}

// NewRecord returns an empty record of the given kind.
func NewRecord(kind Kind) Record {
	switch kind {
	case KindSpice:
		return &SpiceRecord{}
	case KindRice:
		return &RiceRecord{}
	case KindRTE:
		return &RTERecord{}
	case KindTenant:
		return &TenantRecord{}
	case KindExpedition:
		return &ExpeditionRecord{}
	case KindTelecom:
		return &TelecomRecord{}
	default:
		return nil
	}
}

// Field returns the named field of r, or "" when the kind has no such field.
func Field(r Record, field string) string {
	if r == nil {
		return ""
	}
	v, _ := r.Get(field)
	return v
}

func cloneAll(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}
