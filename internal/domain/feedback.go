package domain

import "time"

type Feedback struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:140;not null"`
	Feedback  string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (Feedback) TableName() string { return "feedbacks" }

// FAQEntry is one question/answer pair of the FAQ text source.
type FAQEntry struct {
	Q string `json:"q"`
	A string `json:"a"`
}
