package request

// CreateTitleRequest takes category and genres by slug; the service resolves
// them to foreign keys and rejects unresolvable slugs.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category" validate:"required,max=50,slug"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,max=50,slug"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50,slug"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,min=1,dive,max=50,slug"`
}
