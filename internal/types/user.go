package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID         uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string                         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password   string                         `gorm:"not null;column:password" json:"-"`
	FirstName  string                         `gorm:"not null;column:first_name" json:"first_name"`
	LastName   string                         `gorm:"not null;column:last_name" json:"last_name"`
	SkillLevel Level                          `gorm:"not null;default:beginner;column:skill_level" json:"skill_level"`
	NextWords  datatypes.JSONType[LevelCursor] `gorm:"column:next_words" json:"next_words"`
	CreatedAt  time.Time                      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time                      `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

func (u *User) Cursor() LevelCursor {
	return u.NextWords.Data()
}
