package response

import (
	"reviewhub/internal/data/entity"
)

// TitleResponse nests the full category and genre objects and carries the
// computed rating, which stays null until the first review lands.
type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func TitleToResponse(title *entity.Title, category *entity.Category, genres []*entity.Genre) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Rating:      title.Rating,
		Description: title.Description,
		Genre:       GenresToResponse(genres),
	}

	if category != nil {
		categoryResp := CategoryToResponse(category)
		resp.Category = &categoryResp
	}

	return resp
}
