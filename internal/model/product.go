package model

type Product struct {
	BaseModel   `bson:",inline"`
	Name        string     `db:"name" json:"name" bson:"name"`
	Description string     `db:"description" json:"description" bson:"description"`
	Price       float64    `db:"price" json:"price" bson:"price"`
	Images      StringList `db:"images" json:"images" bson:"images"`
	Videos      StringList `db:"videos" json:"videos" bson:"videos"`
	Category    string     `db:"category" json:"category" bson:"category"`
	Colors      StringList `db:"colors" json:"colors" bson:"colors"`
	Stock       int        `db:"stock" json:"stock" bson:"stock"`
	Featured    bool       `db:"featured" json:"featured" bson:"featured"`
	Active      bool       `db:"active" json:"active" bson:"active"`
}

// DefaultStock is assigned when a product is created without a usable stock value.
const DefaultStock = 1
