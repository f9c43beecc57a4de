package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

// 「新書」的定義: 最近 30 天內上架
const newBookWindow = 30 * 24 * time.Hour

// 「高評價」的門檻
const highlyRatedThreshold = 4.0

// BookPricing 價格顯示用的計算結果
type BookPricing struct {
	Price            decimal.Decimal `json:"price"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	IsDiscountActive bool            `json:"is_discount_active"`
}

type ICatalogService interface {
	// 錯誤:
	//   - model.ErrInvalidDiscountConfig: 折扣設定不合法
	//   - model.ErrStatusStockMismatch: 狀態與庫存不一致
	CreateBook(ctx context.Context, book *model.Book) error
	// 錯誤同 CreateBook
	UpdateBook(ctx context.Context, book *model.Book) error
	GetBook(ctx context.Context, bookID uint) (*model.Book, error)
	ListBooks(ctx context.Context, filter db.BookFilter) ([]model.Book, int64, error)
	DeleteBook(ctx context.Context, bookID uint) error
	// GetPricing 計算某本書此刻的售價資訊，純讀取不落地
	GetPricing(ctx context.Context, bookID uint, now time.Time) (*BookPricing, error)
	GetBookStats(ctx context.Context, bookID uint) (*model.BookStats, error)
	GetAuthorStats(ctx context.Context, authorID uint) (*model.AuthorStats, error)
	GetGenreStats(ctx context.Context, genreID uint) (*model.GenreStats, error)
	GetNewBooks(ctx context.Context, now time.Time) ([]model.Book, error)
	GetBestsellers(ctx context.Context, limit int) ([]model.Book, error)
	GetHighlyRated(ctx context.Context) ([]model.Book, error)

	CreateAuthor(ctx context.Context, author *model.Author) error
	GetAuthor(ctx context.Context, authorID uint) (*model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	CreateGenre(ctx context.Context, genre *model.Genre) error
	ListGenres(ctx context.Context) ([]model.Genre, error)
	AssignGenre(ctx context.Context, bookID, genreID uint) error
	RemoveGenre(ctx context.Context, bookID, genreID uint) error
	GetBookGenres(ctx context.Context, bookID uint) ([]model.Genre, error)
}

type CatalogService struct {
	bookRepo   db.IBookRepository
	authorRepo db.IAuthorRepository
}

func NewCatalogService(bookRepo db.IBookRepository, authorRepo db.IAuthorRepository) *CatalogService {
	if bookRepo == nil || authorRepo == nil {
		panic("catalog service missing required dependency")
	}
	return &CatalogService{bookRepo: bookRepo, authorRepo: authorRepo}
}

// validateBook 上架前驗證折扣設定與狀態庫存一致性
func validateBook(book *model.Book) error {
	if err := book.ValidateDiscount(); err != nil {
		return err
	}
	return book.ValidateStatusStock()
}

func (s *CatalogService) CreateBook(ctx context.Context, book *model.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}
	// 作者必須存在
	if _, err := s.authorRepo.GetAuthorByID(ctx, book.AuthorID); err != nil {
		return err
	}
	return s.bookRepo.CreateBook(ctx, book)
}

func (s *CatalogService) UpdateBook(ctx context.Context, book *model.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}
	return s.bookRepo.UpdateBook(ctx, book)
}

func (s *CatalogService) GetBook(ctx context.Context, bookID uint) (*model.Book, error) {
	return s.bookRepo.GetBookByID(ctx, bookID)
}

func (s *CatalogService) ListBooks(ctx context.Context, filter db.BookFilter) ([]model.Book, int64, error) {
	return s.bookRepo.GetBooks(ctx, filter)
}

func (s *CatalogService) DeleteBook(ctx context.Context, bookID uint) error {
	return s.bookRepo.DeleteBook(ctx, bookID)
}

func (s *CatalogService) GetPricing(ctx context.Context, bookID uint, now time.Time) (*BookPricing, error) {
	book, err := s.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return &BookPricing{
		Price:            book.Price,
		CurrentPrice:     book.CurrentPrice(now),
		DiscountAmount:   book.DiscountAmount(now),
		IsDiscountActive: book.IsDiscountActive(now),
	}, nil
}

func (s *CatalogService) GetBookStats(ctx context.Context, bookID uint) (*model.BookStats, error) {
	if _, err := s.bookRepo.GetBookByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.bookRepo.GetBookStats(ctx, bookID)
}

func (s *CatalogService) GetAuthorStats(ctx context.Context, authorID uint) (*model.AuthorStats, error) {
	if _, err := s.authorRepo.GetAuthorByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.bookRepo.GetAuthorStats(ctx, authorID)
}

func (s *CatalogService) GetGenreStats(ctx context.Context, genreID uint) (*model.GenreStats, error) {
	if _, err := s.authorRepo.GetGenreByID(ctx, genreID); err != nil {
		return nil, err
	}
	return s.bookRepo.GetGenreStats(ctx, genreID)
}

func (s *CatalogService) GetNewBooks(ctx context.Context, now time.Time) ([]model.Book, error) {
	return s.bookRepo.GetNewBooks(ctx, now.Add(-newBookWindow))
}

func (s *CatalogService) GetBestsellers(ctx context.Context, limit int) ([]model.Book, error) {
	return s.bookRepo.GetBestsellers(ctx, limit)
}

func (s *CatalogService) GetHighlyRated(ctx context.Context) ([]model.Book, error) {
	return s.bookRepo.GetHighlyRated(ctx, highlyRatedThreshold)
}

func (s *CatalogService) CreateAuthor(ctx context.Context, author *model.Author) error {
	return s.authorRepo.CreateAuthor(ctx, author)
}

func (s *CatalogService) GetAuthor(ctx context.Context, authorID uint) (*model.Author, error) {
	return s.authorRepo.GetAuthorByID(ctx, authorID)
}

func (s *CatalogService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.authorRepo.GetAllAuthors(ctx)
}

func (s *CatalogService) CreateGenre(ctx context.Context, genre *model.Genre) error {
	return s.authorRepo.CreateGenre(ctx, genre)
}

func (s *CatalogService) ListGenres(ctx context.Context) ([]model.Genre, error) {
	return s.authorRepo.GetAllGenres(ctx)
}

func (s *CatalogService) AssignGenre(ctx context.Context, bookID, genreID uint) error {
	if _, err := s.bookRepo.GetBookByID(ctx, bookID); err != nil {
		return err
	}
	if _, err := s.authorRepo.GetGenreByID(ctx, genreID); err != nil {
		return err
	}
	return s.bookRepo.AddBookGenre(ctx, bookID, genreID)
}

func (s *CatalogService) RemoveGenre(ctx context.Context, bookID, genreID uint) error {
	return s.bookRepo.RemoveBookGenre(ctx, bookID, genreID)
}

func (s *CatalogService) GetBookGenres(ctx context.Context, bookID uint) ([]model.Genre, error) {
	return s.bookRepo.GetBookGenres(ctx, bookID)
}

var _ ICatalogService = (*CatalogService)(nil)
