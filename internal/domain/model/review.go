package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRating 評分必須落在 1~5
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Review struct {
	ReviewID uint   `gorm:"primaryKey" json:"review_id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	BookID   uint   `gorm:"not null;index" json:"book_id"`
	Rating   int    `gorm:"not null" json:"rating"`
	Comment  string `gorm:"type:text" json:"comment"`
	BaseModel
}

// Validate 驗證評分範圍
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, r.Rating)
	}
	return nil
}

// Favorite (user, book) 為唯一鍵，除時間戳外沒有其他資料
type Favorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	BookID    uint      `gorm:"primaryKey" json:"book_id"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}
