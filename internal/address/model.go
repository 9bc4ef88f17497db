package address

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID     uuid.UUID `json:"id"`
	UserID int64     `json:"user_id"`

	Name  string `json:"name"`
	Phone string `json:"phone"`

	AddressLine string  `json:"address_line"`
	Landmark    *string `json:"landmark,omitempty"`
	City        string  `json:"city"`
	Pincode     string  `json:"pincode"`

	IsDefault bool `json:"is_default"`
	IsActive  bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

type CreateAddressInput struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	AddressLine  string  `json:"address_line"`
	Landmark     *string `json:"landmark"`
	City         string  `json:"city"`
	Pincode      string  `json:"pincode"`
	SetAsDefault bool    `json:"set_as_default"`
}
