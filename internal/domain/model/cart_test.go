package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCartTotalPrice_Empty(t *testing.T) {
	cart := &Cart{}
	require.True(t, cart.TotalPrice(time.Now()).Equal(decimal.Zero))
}

func TestCartTotalPrice(t *testing.T) {
	now := time.Now()

	bookA := Book{Title: "A", Price: decimal.NewFromInt(100), Status: BookStatusAvailable, StockQuantity: 10}
	bookB := Book{Title: "B", Price: decimal.NewFromInt(50), Status: BookStatusAvailable, StockQuantity: 10}

	cart := &Cart{
		Items: []CartItem{
			{Book: bookA, Quantity: 2},
			{Book: bookB, Quantity: 1},
		},
	}

	// 2*100 + 1*50 = 250
	require.True(t, cart.TotalPrice(now).Equal(decimal.NewFromInt(250)))
}

func TestCartTotalPrice_WithActiveDiscount(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	discounted := Book{
		Title:           "折扣書",
		Price:           decimal.NewFromInt(100),
		Status:          BookStatusAvailable,
		StockQuantity:   10,
		HasDiscount:     true,
		DiscountPercent: 50,
		DiscountStart:   timePtr(now.Add(-time.Hour)),
		DiscountEnd:     timePtr(now.Add(time.Hour)),
	}

	cart := &Cart{
		Items: []CartItem{{Book: discounted, Quantity: 2}},
	}

	// 總價要用讀取當下的折扣價
	require.True(t, cart.TotalPrice(now).Equal(decimal.NewFromInt(100)))

	// 折扣結束後同一台車換回原價
	after := now.Add(2 * time.Hour)
	require.True(t, cart.TotalPrice(after).Equal(decimal.NewFromInt(200)))
}
