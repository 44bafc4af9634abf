package dto

// ProductFilters narrows the public product listing. Only active products are
// ever listed.
type ProductFilters struct {
	Category     string `json:"category,omitempty"`
	FeaturedOnly bool   `json:"featuredOnly,omitempty"`
	Search       string `json:"search,omitempty"` // matched against name, description and category
}
