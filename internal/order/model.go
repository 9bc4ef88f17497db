package order

import "time"

type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "cod"
	PaymentRazorpay PaymentMethod = "razorpay"
	PaymentPhonePe  PaymentMethod = "phonepe"
	PaymentUPI      PaymentMethod = "upi"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentRazorpay, PaymentPhonePe, PaymentUPI:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Pricing is the order's money breakdown. Total is always recomputed
// server-side, never trusted from the client.
type Pricing struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"delivery_charge"`
	Discount       float64 `json:"discount"`
	Tax            float64 `json:"tax"`
	Total          float64 `json:"total"`
}

// OrderItem is a snapshot of the product at order time. Later catalog edits
// never alter historical orders.
type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	ImageURL  *string `json:"image_url,omitempty"`
}

type StatusEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      *string   `json:"note,omitempty"`
}

type CustomerDetails struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	Landmark *string `json:"landmark,omitempty"`
	Pincode  string  `json:"pincode"`
}

type Order struct {
	ID                 int64           `json:"id"`
	OrderNumber        string          `json:"order_number"`
	UserID             int64           `json:"user_id"`
	Items              []OrderItem     `json:"items"`
	Pricing            Pricing         `json:"pricing"`
	PaymentMethod      PaymentMethod   `json:"payment_method"`
	PaymentStatus      PaymentStatus   `json:"payment_status"`
	Status             Status          `json:"status"`
	StatusHistory      []StatusEntry   `json:"status_history"`
	Customer           CustomerDetails `json:"customer"`
	DeliveryDate       *time.Time      `json:"delivery_date,omitempty"`
	CancellationReason *string         `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type PlaceOrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type PlaceOrderInput struct {
	Items         []PlaceOrderItem `json:"items"`
	Customer      CustomerDetails  `json:"customer"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
}

type ListFilter struct {
	UserID   *int64
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int32
	Page     int32
}

// TrackingInfo is the public view returned by order tracking; it omits
// customer and payment internals.
type TrackingInfo struct {
	OrderNumber   string        `json:"order_number"`
	Status        Status        `json:"status"`
	StatusHistory []StatusEntry `json:"status_history"`
	Items         []OrderItem   `json:"items"`
	Total         float64       `json:"total"`
	DeliveryDate  *time.Time    `json:"delivery_date,omitempty"`
}
