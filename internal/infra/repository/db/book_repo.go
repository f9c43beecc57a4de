package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrBookNotFound 書籍不存在
	ErrBookNotFound = errors.New("book not found")
	// ErrInsufficientStock 庫存不足或書籍不可販售
	ErrInsufficientStock = errors.New("insufficient stock")
)

// BookFilter 書籍列表查詢條件，零值欄位不套用
type BookFilter struct {
	Title       string
	AuthorID    uint
	GenreID     uint
	Status      model.BookStatus
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	HasDiscount *bool
	InStockOnly bool
	Page        int
	PageSize    int
}

type BookRepo struct {
	db *DbDao
}

func NewBookRepo(db *DbDao) *BookRepo {
	return &BookRepo{db: db}
}

func (s *BookRepo) CreateBook(ctx context.Context, book *model.Book) error {
	return s.db.WithContext(ctx).Omit("Author").Create(book).Error
}

func (s *BookRepo) GetBookByID(ctx context.Context, bookID uint) (*model.Book, error) {
	var book model.Book
	err := s.db.WithContext(ctx).Preload("Author").First(&book, "book_id = ?", bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBooks 依條件分頁查詢
func (s *BookRepo) GetBooks(ctx context.Context, filter BookFilter) ([]model.Book, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Book{})

	if filter.Title != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Title+"%")
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.GenreID != 0 {
		query = query.Joins("JOIN book_genres ON book_genres.book_id = books.book_id").
			Where("book_genres.genre_id = ?", filter.GenreID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.HasDiscount != nil {
		query = query.Where("has_discount = ?", *filter.HasDiscount)
	}
	if filter.InStockOnly {
		query = query.Where("status = ? AND stock_quantity > 0", model.BookStatusAvailable)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var books []model.Book
	err := query.Preload("Author").Order("books.created_at DESC").Find(&books).Error
	return books, total, err
}

func (s *BookRepo) UpdateBook(ctx context.Context, book *model.Book) error {
	return s.db.WithContext(ctx).Omit("Author").Save(book).Error
}

func (s *BookRepo) DeleteBook(ctx context.Context, bookID uint) error {
	return s.db.WithContext(ctx).Delete(&model.Book{}, "book_id = ?", bookID).Error
}

func (s *BookRepo) GetBookStock(ctx context.Context, bookID uint) (uint, error) {
	book, err := s.GetBookByID(ctx, bookID)
	if err != nil {
		return 0, err
	}
	return book.StockQuantity, nil
}

// DeductBookStock 扣除庫存
// 整段在一個交易內並鎖定書籍列，庫存不足時回傳 ErrInsufficientStock，不會扣到負數
// 扣到零時同步把狀態改為 out_of_stock
func (s *BookRepo) DeductBookStock(ctx context.Context, bookID uint, quantity uint) (uint, error) {
	var remaining uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "book_id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		if book.StockQuantity < quantity {
			return fmt.Errorf("%w: requested %d, stock %d", ErrInsufficientStock, quantity, book.StockQuantity)
		}

		remaining = book.StockQuantity - quantity
		updates := map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
		}
		if remaining == 0 {
			updates["status"] = model.BookStatusOutOfStock
		}
		return tx.Model(&model.Book{}).
			Where("book_id = ?", bookID).
			Updates(updates).Error
	})

	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// AddBookStock 進貨補庫存，從零補到有庫存時狀態轉回 available
func (s *BookRepo) AddBookStock(ctx context.Context, bookID uint, quantity uint) (uint, error) {
	var remaining uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "book_id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		remaining = book.StockQuantity + quantity
		updates := map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", quantity),
		}
		if book.Status == model.BookStatusOutOfStock && remaining > 0 {
			updates["status"] = model.BookStatusAvailable
		}
		return tx.Model(&model.Book{}).
			Where("book_id = ?", bookID).
			Updates(updates).Error
	})

	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// GetBookStats 書籍聚合統計: 平均評分、評論數、總銷量、收藏數
func (s *BookRepo) GetBookStats(ctx context.Context, bookID uint) (*model.BookStats, error) {
	stats := model.BookStats{BookID: bookID}

	row := s.db.WithContext(ctx).Model(&model.Review{}).
		Where("book_id = ?", bookID).
		Select("COALESCE(AVG(rating), 0), COUNT(*)").
		Row()
	if err := row.Scan(&stats.AvgRating, &stats.ReviewsCount); err != nil {
		return nil, err
	}

	row = s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("book_id = ?", bookID).
		Select("COALESCE(SUM(quantity), 0)").
		Row()
	if err := row.Scan(&stats.TotalSales); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("book_id = ?", bookID).
		Count(&stats.FavoritesCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetAuthorStats 作者聚合統計: 著作數與著作平均評分
func (s *BookRepo) GetAuthorStats(ctx context.Context, authorID uint) (*model.AuthorStats, error) {
	stats := model.AuthorStats{AuthorID: authorID}

	if err := s.db.WithContext(ctx).Model(&model.Book{}).
		Where("author_id = ?", authorID).
		Count(&stats.BooksCount).Error; err != nil {
		return nil, err
	}

	row := s.db.WithContext(ctx).Model(&model.Review{}).
		Joins("JOIN books ON books.book_id = reviews.book_id").
		Where("books.author_id = ?", authorID).
		Select("COALESCE(AVG(reviews.rating), 0)").
		Row()
	if err := row.Scan(&stats.AvgBookRating); err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetGenreStats 分類聚合統計: 書籍數
func (s *BookRepo) GetGenreStats(ctx context.Context, genreID uint) (*model.GenreStats, error) {
	stats := model.GenreStats{GenreID: genreID}
	err := s.db.WithContext(ctx).Model(&model.BookGenre{}).
		Where("genre_id = ?", genreID).
		Count(&stats.BooksCount).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetNewBooks 查詢 since 之後上架的書
func (s *BookRepo) GetNewBooks(ctx context.Context, since time.Time) ([]model.Book, error) {
	var books []model.Book
	err := s.db.WithContext(ctx).Preload("Author").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&books).Error
	return books, err
}

// GetBestsellers 依訂單銷量排序
func (s *BookRepo) GetBestsellers(ctx context.Context, limit int) ([]model.Book, error) {
	var books []model.Book
	err := s.db.WithContext(ctx).Model(&model.Book{}).
		Joins("JOIN order_items ON books.book_id = order_items.book_id").
		Group("books.book_id").
		Order("SUM(order_items.quantity) DESC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

// GetHighlyRated 查詢平均評分達 minRating 的書
func (s *BookRepo) GetHighlyRated(ctx context.Context, minRating float64) ([]model.Book, error) {
	var books []model.Book
	err := s.db.WithContext(ctx).Model(&model.Book{}).
		Joins("JOIN reviews ON books.book_id = reviews.book_id").
		Group("books.book_id").
		Having("AVG(reviews.rating) >= ?", minRating).
		Find(&books).Error
	return books, err
}

// 分類關聯維護

func (s *BookRepo) AddBookGenre(ctx context.Context, bookID, genreID uint) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.BookGenre{BookID: bookID, GenreID: genreID}).Error
}

func (s *BookRepo) RemoveBookGenre(ctx context.Context, bookID, genreID uint) error {
	return s.db.WithContext(ctx).
		Where("book_id = ? AND genre_id = ?", bookID, genreID).
		Delete(&model.BookGenre{}).Error
}

func (s *BookRepo) GetBookGenres(ctx context.Context, bookID uint) ([]model.Genre, error) {
	var genres []model.Genre
	err := s.db.WithContext(ctx).Model(&model.Genre{}).
		Joins("JOIN book_genres ON book_genres.genre_id = genres.genre_id").
		Where("book_genres.book_id = ?", bookID).
		Find(&genres).Error
	return genres, err
}
