package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Word is an immutable catalog entry. Rows are authored out of band; this
// service only reads them. Index is dense and contiguous within a difficulty
// level, which is what makes range selection off the user cursor work.
type Word struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Text        string         `gorm:"not null;column:text" json:"text"`
	Translation string         `gorm:"not null;column:translation" json:"translation"`
	Examples    datatypes.JSON `gorm:"column:examples" json:"examples"`
	Difficulty  Level          `gorm:"not null;column:difficulty;index:idx_word_difficulty_index,priority:1" json:"difficulty"`
	Index       int            `gorm:"not null;column:word_index;index:idx_word_difficulty_index,priority:2" json:"index"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (Word) TableName() string {
	return "word"
}
