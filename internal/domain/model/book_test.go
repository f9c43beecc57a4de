package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func discountedBook(percent uint, start, end time.Time) *Book {
	return &Book{
		Title:           "折扣書",
		Price:           decimal.NewFromInt(100),
		Status:          BookStatusAvailable,
		StockQuantity:   10,
		HasDiscount:     true,
		DiscountPercent: percent,
		DiscountStart:   timePtr(start),
		DiscountEnd:     timePtr(end),
	}
}

func TestIsDiscountActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	book := discountedBook(20, now.Add(-time.Hour), now.Add(time.Hour))
	require.True(t, book.IsDiscountActive(now))

	// 視窗邊界本身算啟用
	require.True(t, book.IsDiscountActive(*book.DiscountStart))
	require.True(t, book.IsDiscountActive(*book.DiscountEnd))

	// 視窗之外
	require.False(t, book.IsDiscountActive(now.Add(2*time.Hour)))
	require.False(t, book.IsDiscountActive(now.Add(-2*time.Hour)))
}

func TestIsDiscountActive_MissingDates(t *testing.T) {
	now := time.Now()

	// 起迄沒設定時 has_discount 再怎麼開都不算啟用
	book := &Book{
		Price:           decimal.NewFromInt(100),
		HasDiscount:     true,
		DiscountPercent: 20,
	}
	require.False(t, book.IsDiscountActive(now))

	book.DiscountStart = timePtr(now.Add(-time.Hour))
	require.False(t, book.IsDiscountActive(now))

	book.DiscountStart = nil
	book.DiscountEnd = timePtr(now.Add(time.Hour))
	require.False(t, book.IsDiscountActive(now))
}

func TestIsDiscountActive_ZeroPercent(t *testing.T) {
	now := time.Now()
	book := discountedBook(0, now.Add(-time.Hour), now.Add(time.Hour))
	require.False(t, book.IsDiscountActive(now))
}

func TestCurrentPrice(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	book := discountedBook(20, now.Add(-time.Hour), now.Add(time.Hour))
	require.True(t, book.CurrentPrice(now).Equal(decimal.NewFromInt(80)))
	require.True(t, book.DiscountAmount(now).Equal(decimal.NewFromInt(20)))

	// 視窗外回到原價
	later := now.Add(2 * time.Hour)
	require.True(t, book.CurrentPrice(later).Equal(decimal.NewFromInt(100)))
	require.True(t, book.DiscountAmount(later).Equal(decimal.Zero))
}

func TestCurrentPrice_DecimalExact(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// 99.99 打 33% 折扣不能出現浮點誤差
	book := discountedBook(33, now.Add(-time.Hour), now.Add(time.Hour))
	book.Price = decimal.RequireFromString("99.99")

	want := decimal.RequireFromString("66.9933")
	require.True(t, book.CurrentPrice(now).Equal(want))
}

func TestCurrentPrice_NeverAboveListPrice(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	for _, percent := range []uint{0, 1, 50, 99, 100} {
		book := discountedBook(percent, now.Add(-time.Hour), now.Add(time.Hour))
		require.True(t, book.CurrentPrice(now).LessThanOrEqual(book.Price))
		if percent == 0 {
			require.True(t, book.CurrentPrice(now).Equal(book.Price))
		}
	}
}

func TestCheckStock(t *testing.T) {
	book := &Book{
		Title:         "庫存書",
		Status:        BookStatusAvailable,
		StockQuantity: 10,
	}

	ok, _ := book.CheckStock(5)
	require.True(t, ok)

	ok, reason := book.CheckStock(15)
	require.False(t, ok)
	require.NotEmpty(t, reason)
}

func TestCheckStock_NotAvailable(t *testing.T) {
	// 非 available 狀態下任何數量都不可購買
	for _, status := range []BookStatus{BookStatusOutOfStock, BookStatusPreOrder} {
		book := &Book{Title: "書", Status: status, StockQuantity: 10}
		for _, q := range []uint{0, 1, 10} {
			ok, reason := book.CheckStock(q)
			require.False(t, ok)
			require.NotEmpty(t, reason)
		}
	}
}

func TestValidateDiscount(t *testing.T) {
	now := time.Now()

	book := discountedBook(20, now, now.Add(time.Hour))
	require.NoError(t, book.ValidateDiscount())

	// 沒開折扣就不檢查其他欄位
	book = &Book{Price: decimal.NewFromInt(100)}
	require.NoError(t, book.ValidateDiscount())

	// 百分比超過 100
	book = discountedBook(101, now, now.Add(time.Hour))
	require.ErrorIs(t, book.ValidateDiscount(), ErrInvalidDiscountConfig)

	// 百分比為 0
	book = discountedBook(0, now, now.Add(time.Hour))
	require.ErrorIs(t, book.ValidateDiscount(), ErrInvalidDiscountConfig)

	// 缺少起迄
	book = discountedBook(20, now, now.Add(time.Hour))
	book.DiscountEnd = nil
	require.ErrorIs(t, book.ValidateDiscount(), ErrInvalidDiscountConfig)

	// start >= end
	book = discountedBook(20, now.Add(time.Hour), now)
	require.ErrorIs(t, book.ValidateDiscount(), ErrInvalidDiscountConfig)

	book = discountedBook(20, now, now)
	require.ErrorIs(t, book.ValidateDiscount(), ErrInvalidDiscountConfig)
}

func TestValidateStatusStock(t *testing.T) {
	book := &Book{Status: BookStatusAvailable, StockQuantity: 1}
	require.NoError(t, book.ValidateStatusStock())

	book = &Book{Status: BookStatusAvailable, StockQuantity: 0}
	require.ErrorIs(t, book.ValidateStatusStock(), ErrStatusStockMismatch)

	book = &Book{Status: BookStatusOutOfStock, StockQuantity: 0}
	require.NoError(t, book.ValidateStatusStock())

	book = &Book{Status: BookStatusOutOfStock, StockQuantity: 3}
	require.ErrorIs(t, book.ValidateStatusStock(), ErrStatusStockMismatch)

	// 預購不受庫存限制
	book = &Book{Status: BookStatusPreOrder, StockQuantity: 0}
	require.NoError(t, book.ValidateStatusStock())
}
