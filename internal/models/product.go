package models

import "time"

// Product genders. Any other value is rejected by the validation layer.
const (
	GenderMen    = "men"
	GenderWomen  = "women"
	GenderKid    = "kid"
	GenderUnisex = "unisex"
)

// Product represents a product in the catalog.
//
// Title and Slug are unique across the catalog. Slug is always stored
// normalized (lowercase, underscores instead of spaces, no apostrophes);
// normalization is applied by the service layer before every insert and
// update, never by a persistence hook.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string         `json:"title" gorm:"uniqueIndex;type:varchar(255);not null"`
	Price       float64        `json:"price" gorm:"not null;default:0"`
	Description string         `json:"description" gorm:"type:text"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;type:varchar(255);not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Sizes       []string       `json:"sizes" gorm:"serializer:json"`
	Gender      string         `json:"gender" gorm:"type:varchar(16);not null"`
	Images      []ProductImage `json:"images" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// ProductImage is an image attached to a product. Images have no lifecycle
// of their own: they are created with their product (or on image-set
// replacement) and removed together with it.
type ProductImage struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	URL       string `json:"url" gorm:"type:text;not null"`
	ProductID string `json:"-" gorm:"type:varchar(36);index;not null"`
}

// ImageURLs projects the image set to a flat list of URL strings, the shape
// read operations expose to API clients.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
