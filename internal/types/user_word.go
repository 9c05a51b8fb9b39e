package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinProgress = 1
	MaxProgress = 5
)

// UserWord joins a user to a catalog word and carries the learning state for
// that pair. Difficulty is copied from the user at creation time and stays
// frozen even if the user's skill level changes later. LastSeenAt is NULL
// until the word is first surfaced to the user.
type UserWord struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_user_word_pair,priority:1" json:"userId"`
	WordID       uuid.UUID  `gorm:"type:uuid;not null;column:word_id;uniqueIndex:idx_user_word_pair,priority:2" json:"wordId"`
	Difficulty   Level      `gorm:"not null;column:difficulty;index" json:"difficulty"`
	Progress     int        `gorm:"not null;default:1;column:progress" json:"progress"`
	LastSeenAt   *time.Time `gorm:"column:last_seen_at;index" json:"lastSeenAt"`
	AlreadyKnown bool       `gorm:"not null;default:false;column:already_known" json:"alreadyKnown"`
	Learned      bool       `gorm:"not null;default:false;column:learned" json:"learned"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (UserWord) TableName() string {
	return "user_word"
}
