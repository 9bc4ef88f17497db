package product

import "time"

type Product struct {
	ID          int64     `json:"id"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	Name        string    `json:"name"`
	NameHi      *string   `json:"name_hi,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Stock       int       `json:"stock"`
	Sold        int       `json:"sold"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListOptions struct {
	CategoryID      *int64
	Search          *string
	InStock         bool
	IncludeInactive bool
	Limit           int32
	Page            int32
}

type CreateInput struct {
	CategoryID  *int64  `json:"category_id"`
	Name        string  `json:"name"`
	NameHi      *string `json:"name_hi"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	ImageURL    *string `json:"image_url"`
	Stock       int     `json:"stock"`
}

type UpdateInput struct {
	CategoryID  *int64   `json:"category_id"`
	Name        *string  `json:"name"`
	NameHi      *string  `json:"name_hi"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Unit        *string  `json:"unit"`
	ImageURL    *string  `json:"image_url"`
	Stock       *int     `json:"stock"`
	Active      *bool    `json:"active"`
}
