package model

import (
	"database/sql/driver"
	"encoding/json"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

var OrderStatuses = []OrderStatus{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Customer struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address" bson:"address"`
}

func (c Customer) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Customer) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// LineItem is a copy of the product as it was when the order was placed.
type LineItem struct {
	ProductID string  `json:"productId" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image" bson:"image"`
}

type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]LineItem(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *LineItems) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func (l LineItems) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]LineItem(l))
}

type Order struct {
	BaseModel `bson:",inline"`
	Customer  Customer    `db:"customer" json:"customer" bson:"customer"`
	LineItems LineItems   `db:"line_items" json:"lineItems" bson:"line_items"`
	Total     float64     `db:"total" json:"total" bson:"total"`
	Status    OrderStatus `db:"status" json:"status" bson:"status"`
	Notes     string      `db:"notes" json:"notes" bson:"notes"`
}

type Stats struct {
	ActiveProductCount int     `json:"totalProducts"`
	OrderCount         int     `json:"totalOrders"`
	PendingOrderCount  int     `json:"pendingOrders"`
	TotalRevenue       float64 `json:"totalRevenue"`
}
