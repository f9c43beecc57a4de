package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BookStatus string

const (
	BookStatusAvailable  BookStatus = "available"    // 有庫存可販售
	BookStatusOutOfStock BookStatus = "out_of_stock" // 無庫存
	BookStatusPreOrder   BookStatus = "pre_order"    // 預購
)

var (
	// ErrInvalidDiscountConfig 折扣設定不完整或區間錯誤
	ErrInvalidDiscountConfig = errors.New("invalid discount configuration")
	// ErrStatusStockMismatch 書籍狀態與庫存數量不一致
	ErrStatusStockMismatch = errors.New("book status does not match stock quantity")
)

type Book struct {
	BookID          uint            `gorm:"primaryKey" json:"book_id"`
	Title           string          `gorm:"not null;type:varchar(200)" json:"title"`
	AuthorID        uint            `gorm:"not null;index" json:"author_id"`
	Author          Author          `gorm:"foreignKey:AuthorID" json:"author"`
	Description     string          `gorm:"type:text" json:"description"`
	Price           decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Status          BookStatus      `gorm:"not null;type:varchar(20);default:available" json:"status"`
	StockQuantity   uint            `gorm:"not null;default:0" json:"stock_quantity"`
	HasDiscount     bool            `gorm:"not null;default:false" json:"has_discount"`
	DiscountPercent uint            `gorm:"not null;default:0" json:"discount_percent"`
	DiscountStart   *time.Time      `json:"discount_start"`
	DiscountEnd     *time.Time      `json:"discount_end"`
	PublishedAt     *time.Time      `json:"published_at"`
	BaseModel
}

// IsDiscountActive 判斷 now 是否落在折扣區間 [DiscountStart, DiscountEnd] 內
// 折扣起迄任一未設定時一律視為未啟用
func (b *Book) IsDiscountActive(now time.Time) bool {
	if !b.HasDiscount || b.DiscountPercent == 0 {
		return false
	}
	if b.DiscountStart == nil || b.DiscountEnd == nil {
		return false
	}
	return !now.Before(*b.DiscountStart) && !now.After(*b.DiscountEnd)
}

// CurrentPrice 計算當前售價
// 折扣啟用時為 Price - Price*DiscountPercent/100，全部使用 decimal 運算
func (b *Book) CurrentPrice(now time.Time) decimal.Decimal {
	if !b.IsDiscountActive(now) {
		return b.Price
	}
	discount := b.Price.Mul(decimal.NewFromInt(int64(b.DiscountPercent))).
		Div(decimal.NewFromInt(100))
	return b.Price.Sub(discount)
}

// DiscountAmount 當前折抵金額，未啟用折扣時為 0
func (b *Book) DiscountAmount(now time.Time) decimal.Decimal {
	return b.Price.Sub(b.CurrentPrice(now))
}

// CheckStock 檢查是否可以購買 quantity 本
// 回傳是否可購買與不可購買的原因
func (b *Book) CheckStock(quantity uint) (bool, string) {
	if b.Status != BookStatusAvailable {
		return false, fmt.Sprintf("book %q is not available for sale", b.Title)
	}
	if b.StockQuantity < quantity {
		return false, fmt.Sprintf("only %d of %q left in stock", b.StockQuantity, b.Title)
	}
	return true, ""
}

// ValidateDiscount 驗證折扣設定
// HasDiscount 為 true 時百分比必須落在 (0,100]，起迄都要設定且 start < end
func (b *Book) ValidateDiscount() error {
	if !b.HasDiscount {
		return nil
	}
	if b.DiscountPercent == 0 || b.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount percent %d", ErrInvalidDiscountConfig, b.DiscountPercent)
	}
	if b.DiscountStart == nil || b.DiscountEnd == nil {
		return fmt.Errorf("%w: discount window is not set", ErrInvalidDiscountConfig)
	}
	if !b.DiscountStart.Before(*b.DiscountEnd) {
		return fmt.Errorf("%w: discount start is not before discount end", ErrInvalidDiscountConfig)
	}
	return nil
}

// ValidateStatusStock 驗證狀態與庫存的一致性
// available 必須有庫存，out_of_stock 必須為零庫存，pre_order 不限制
func (b *Book) ValidateStatusStock() error {
	switch b.Status {
	case BookStatusAvailable:
		if b.StockQuantity == 0 {
			return fmt.Errorf("%w: status available with zero stock", ErrStatusStockMismatch)
		}
	case BookStatusOutOfStock:
		if b.StockQuantity > 0 {
			return fmt.Errorf("%w: status out_of_stock with stock %d", ErrStatusStockMismatch, b.StockQuantity)
		}
	}
	return nil
}

// BookStats 書籍聚合統計
type BookStats struct {
	BookID         uint    `json:"book_id"`
	AvgRating      float64 `json:"avg_rating"`
	ReviewsCount   int64   `json:"reviews_count"`
	TotalSales     int64   `json:"total_sales"`
	FavoritesCount int64   `json:"favorites_count"`
}
