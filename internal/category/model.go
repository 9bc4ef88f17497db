package category

import "time"

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	NameHi    *string   `json:"name_hi,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateInput struct {
	Name      string  `json:"name"`
	NameHi    *string `json:"name_hi"`
	ImageURL  *string `json:"image_url"`
	SortOrder int     `json:"sort_order"`
}

type UpdateInput struct {
	Name      *string `json:"name"`
	NameHi    *string `json:"name_hi"`
	ImageURL  *string `json:"image_url"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}
