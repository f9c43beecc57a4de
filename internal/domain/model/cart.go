package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart 一個使用者只會有一台購物車，於第一次加入商品時建立
type Cart struct {
	CartID uint       `gorm:"primaryKey" json:"cart_id"`
	UserID uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	BaseModel
}

// CartItem (cart, book) 為唯一鍵，同一本書重複加入時合併數量
type CartItem struct {
	CartID   uint `gorm:"primaryKey" json:"cart_id"`
	BookID   uint `gorm:"primaryKey" json:"book_id"`
	Book     Book `gorm:"foreignKey:BookID" json:"book"`
	Quantity uint `gorm:"not null;default:1" json:"quantity"`
	BaseModel
}

// LineTotal 此列的小計，以讀取當下的售價計算，不做快取
func (i *CartItem) LineTotal(now time.Time) decimal.Decimal {
	return i.Book.CurrentPrice(now).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalPrice 整車總價 = Σ 數量 × 當前售價，空車為 0
// Items 需要已帶出 Book
func (c *Cart) TotalPrice(now time.Time) decimal.Decimal {
	total := decimal.NewFromInt(0)
	for i := range c.Items {
		total = total.Add(c.Items[i].LineTotal(now))
	}
	return total
}
