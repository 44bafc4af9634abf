package dto

type CategoryFilters struct {
	FeaturedOnly bool // count featured products only
}
