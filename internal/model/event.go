package model

type ProductCreated struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

func (e ProductCreated) Type() string        { return "ProductCreated" }
func (e ProductCreated) AggregateID() string { return e.ProductID }

type ProductUpdated struct {
	ProductID string `json:"productId"`
	Active    bool   `json:"active"`
}

func (e ProductUpdated) Type() string        { return "ProductUpdated" }
func (e ProductUpdated) AggregateID() string { return e.ProductID }

type ProductDeleted struct {
	ProductID string `json:"productId"`
}

func (e ProductDeleted) Type() string        { return "ProductDeleted" }
func (e ProductDeleted) AggregateID() string { return e.ProductID }

type OrderCreated struct {
	OrderID   string  `json:"orderId"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

func (e OrderCreated) Type() string        { return "OrderCreated" }
func (e OrderCreated) AggregateID() string { return e.OrderID }

type OrderStatusChanged struct {
	OrderID   string      `json:"orderId"`
	OldStatus OrderStatus `json:"oldStatus"`
	NewStatus OrderStatus `json:"newStatus"`
}

func (e OrderStatusChanged) Type() string        { return "OrderStatusChanged" }
func (e OrderStatusChanged) AggregateID() string { return e.OrderID }
