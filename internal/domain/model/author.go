package model

import "time"

type Author struct {
	AuthorID  uint       `gorm:"primaryKey" json:"author_id"`
	Name      string     `gorm:"not null;type:varchar(255)" json:"name"`
	Bio       string     `gorm:"type:text" json:"bio"`
	BirthDate *time.Time `json:"birth_date"`
	BaseModel
}

type Genre struct {
	GenreID uint   `gorm:"primaryKey" json:"genre_id"`
	Name    string `gorm:"not null;type:varchar(100);unique" json:"name"`
	BaseModel
}

// BookGenre 書籍與分類的多對多關聯，帶自己的建立時間
type BookGenre struct {
	BookID    uint      `gorm:"primaryKey" json:"book_id"`
	GenreID   uint      `gorm:"primaryKey" json:"genre_id"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

// AuthorStats 作者聚合統計
type AuthorStats struct {
	AuthorID      uint    `json:"author_id"`
	BooksCount    int64   `json:"books_count"`
	AvgBookRating float64 `json:"avg_book_rating"`
}

// GenreStats 分類聚合統計
type GenreStats struct {
	GenreID    uint  `json:"genre_id"`
	BooksCount int64 `json:"books_count"`
}
