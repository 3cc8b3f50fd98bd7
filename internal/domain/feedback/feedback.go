package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Category string

const (
	CategoryExperience Category = "experience"
	CategoryContent    Category = "content"
	CategoryBug        Category = "bug"
	CategoryIdea       Category = "idea"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryExperience, CategoryContent, CategoryBug, CategoryIdea:
		return true
	}
	return false
}

type Feedback struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Message   string         `gorm:"type:text;not null" json:"message"`
	Category  string         `gorm:"type:text;not null;index" json:"category"`
	Context   string         `gorm:"type:text" json:"context"`
	Metadata  datatypes.JSON `json:"metadata"`
	UserID    *string        `gorm:"type:text" json:"user_id,omitempty"`
	UserEmail *string        `gorm:"type:text" json:"user_email,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }
