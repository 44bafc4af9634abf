package dto

// ProductInput carries product fields as the client sent them. Numeric and
// boolean fields stay textual here; the use case coerces them.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Images      []string
	Videos      []string
	Category    string
	Colors      []string
	Stock       string
	Featured    string
	Active      *string // nil when the client omitted it
}
