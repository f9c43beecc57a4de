package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookDTO struct {
	Title           string          `json:"title"`
	AuthorID        uint            `json:"author_id"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`
	StockQuantity   uint            `json:"stock_quantity"`
	HasDiscount     bool            `json:"has_discount"`
	DiscountPercent uint            `json:"discount_percent"`
	DiscountStart   *time.Time      `json:"discount_start"`
	DiscountEnd     *time.Time      `json:"discount_end"`
	PublishedAt     *time.Time      `json:"published_at"`
}

type UpdateBookDTO struct {
	CreateBookDTO
}

type CreateAuthorDTO struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type CreateGenreDTO struct {
	Name string `json:"name"`
}

// BookListQuery 書籍列表的查詢條件，全部可選
type BookListQuery struct {
	Title       string `json:"title"`
	AuthorID    uint   `json:"author_id"`
	GenreID     uint   `json:"genre_id"`
	Status      string `json:"status"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
	HasDiscount *bool  `json:"has_discount"`
	InStockOnly bool   `json:"in_stock_only"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}
