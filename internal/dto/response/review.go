package response

import (
	"time"

	"reviewhub/internal/data/entity"
)

type ReviewResponse struct {
	ID      string    `json:"id"`
	TitleID string    `json:"title_id"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, author string) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID.String(),
		TitleID: review.TitleID.String(),
		Author:  author,
		Score:   review.Score,
		Text:    review.Text,
		PubDate: review.CreatedAt,
	}
}
