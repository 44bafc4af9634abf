package model

// Category is derived from the category label of active products; it has no
// storage of its own.
type Category struct {
	Name         string `db:"name" json:"name" bson:"_id"`
	ProductCount int    `db:"product_count" json:"productCount" bson:"product_count"`
}
