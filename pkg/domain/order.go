package domain

import "time"

// OrderItem is a single product line within an order.
type OrderItem struct {
	ProductID string  `json:"product"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

// Order represents a placed order as the backend reports it.
type Order struct {
	ID            string      `json:"_id"`
	UserID        string      `json:"user"`
	UserName      string      `json:"userName,omitempty"` // populated on admin listings
	Items         []OrderItem `json:"orderItems"`
	ItemsPrice    float64     `json:"itemsPrice"`
	ShippingPrice float64     `json:"shippingPrice"`
	TotalPrice    float64     `json:"totalPrice"`
	IsPaid        bool        `json:"isPaid"`
	IsDelivered   bool        `json:"isDelivered"`
	DeliveredAt   *time.Time  `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// ItemCount returns the total number of units across all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Qty
	}
	return n
}
