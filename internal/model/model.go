package model

// Category is the listing type tag. The wire values are the Russian labels
// the backend stores verbatim, so do not translate them.
type Category string

const (
	CategoryRealEstate Category = "Недвижимость"
	CategoryAuto       Category = "Авто"
	CategoryServices   Category = "Услуги"
)

// Categories returns the closed set of selectable categories, in the order
// the category picker offers them.
func Categories() []Category {
	return []Category{CategoryRealEstate, CategoryAuto, CategoryServices}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryRealEstate, CategoryAuto, CategoryServices:
		return true
	}
	return false
}

// ItemDraft is the in-progress field set for a listing being created or
// edited: everything an Item has except the server-assigned id. Category may
// be empty while the user has not picked one yet; fields belonging to other
// categories are allowed to carry stale values and are simply ignored by
// display and validation.
type ItemDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    Category `json:"type"`
	Image       string   `json:"image,omitempty"`

	// Real estate.
	PropertyType string   `json:"propertyType,omitempty"`
	Area         *float64 `json:"area,omitempty"`
	Rooms        *int     `json:"rooms,omitempty"`
	Price        *float64 `json:"price,omitempty"`

	// Auto.
	Brand   string `json:"brand,omitempty"`
	Model   string `json:"model,omitempty"`
	Year    *int   `json:"year,omitempty"`
	Mileage *int   `json:"mileage,omitempty"`

	// Services.
	ServiceType  string   `json:"serviceType,omitempty"`
	Experience   *int     `json:"experience,omitempty"`
	Cost         *float64 `json:"cost,omitempty"`
	WorkSchedule string   `json:"workSchedule,omitempty"`
}

// Item is a published listing as the backend returns it.
type Item struct {
	ID int `json:"id"`
	ItemDraft
}

// Draft returns the editable field set of an existing item (everything but
// the id), used when the form is mounted in edit mode.
func (it Item) Draft() ItemDraft {
	return it.ItemDraft
}
