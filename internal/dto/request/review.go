package request

type CreateReviewRequest struct {
	// Score has no struct tag validation: zero is out of range, not
	// missing, and the range check reports which bound was crossed.
	Score int    `json:"score"`
	Text  string `json:"text" validate:"required"`
}

type UpdateReviewRequest struct {
	Score *int    `json:"score,omitempty"`
	Text  *string `json:"text,omitempty" validate:"omitempty,min=1"`
}
