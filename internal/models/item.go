package models

import "time"

const (
	StatusLost  = "lost"
	StatusFound = "found"

	MaxItemNameLen = 100
	MaxItemDescLen = 250
)

// ValidStatus reports whether s is one of the two item statuses.
func ValidStatus(s string) bool {
	return s == StatusLost || s == StatusFound
}

// OppositeStatus returns the complementary status, or "" for an invalid one.
func OppositeStatus(s string) string {
	switch s {
	case StatusLost:
		return StatusFound
	case StatusFound:
		return StatusLost
	}
	return ""
}

type Item struct {
	ID            int        `json:"id"`
	UserID        *int       `json:"user_id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	CategoryID    *int       `json:"category_id,omitempty"`
	LocationID    *int       `json:"location_id,omitempty"`
	ColorID       *int       `json:"color_id,omitempty"`
	BrandID       *int       `json:"brand_id,omitempty"`
	Status        string     `json:"status"`
	FoundLostDate *time.Time `json:"found_lost_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	Version       int        `json:"version"`

	// Joined attribute codes, empty when the reference is null.
	CategoryCode string `json:"-"`
	LocationCode string `json:"-"`
	ColorCode    string `json:"-"`
	BrandCode    string `json:"-"`

	CategoryName string `json:"category_name,omitempty"`
	LocationName string `json:"location_name,omitempty"`

	Images []ItemImage `json:"images,omitempty"`
}

// Barcode concatenates the four attribute codes, "00" for a null reference.
func (i Item) Barcode() string {
	return codeOr(i.CategoryCode) + codeOr(i.LocationCode) + codeOr(i.ColorCode) + codeOr(i.BrandCode)
}

func codeOr(code string) string {
	if code == "" {
		return "00"
	}
	return code
}

type ItemImage struct {
	ID       int    `json:"id"`
	ItemID   int    `json:"item_id"`
	ImageURL string `json:"image_url"`
}

// ItemFilter carries the optional equality filters and free-text query used by the
// item listing endpoints.
type ItemFilter struct {
	Status     string
	CategoryID *int
	LocationID *int
	ColorID    *int
	BrandID    *int
	UserID     *int
	Query      string
	Page       int
	PageSize   int
}

type ItemPage struct {
	Items      []Item `json:"results"`
	Count      int    `json:"count"`
	TotalFound int    `json:"total_found"`
	TotalLost  int    `json:"total_lost"`
}
