package cart

import (
	"time"

	"chandra-dukan-be/internal/product"
)

type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *product.Product `json:"product,omitempty"`
}

// Summary is the cart plus the same pricing preview the order workflow will
// apply, so the client can show totals before checkout.
type Summary struct {
	Items          []*CartItem `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	DeliveryCharge float64     `json:"delivery_charge"`
	Total          float64     `json:"total"`
}
