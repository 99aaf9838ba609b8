package entity

import (
	"github.com/google/uuid"
)

const (
	ScoreMin = 1
	ScoreMax = 10
)

type Review struct {
	BaseSimple
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Score    int       `db:"score"` // 1-10
	Text     string    `db:"text"`
}
