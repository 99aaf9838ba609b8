package entity

import (
	"github.com/google/uuid"
)

type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
	// Rating is never stored; it is the mean review score aggregated by
	// the repository on every read, nil when the title has no reviews.
	Rating *float64 `db:"rating"`
}
