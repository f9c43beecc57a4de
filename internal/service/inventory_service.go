package service

import (
	"context"

	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
)

type IInventoryService interface {
	// CheckAvailability 檢查某本書能否出貨指定數量
	// 不足或狀態不可售時回傳 false 與人類可讀的原因，不回傳錯誤
	CheckAvailability(ctx context.Context, bookID uint, quantity uint) (bool, string, error)
	GetStock(ctx context.Context, bookID uint) (uint, error)
	// 錯誤:
	//   - db.ErrInsufficientStock: 庫存不足
	//   - db.ErrBookNotFound: 書不存在
	DeductStock(ctx context.Context, bookID uint, quantity uint) (uint, error)
	// RestockBook 進貨，庫存由 0 變正時狀態回到可販售
	RestockBook(ctx context.Context, bookID uint, quantity uint) (uint, error)
}

type InventoryService struct {
	bookRepo db.IBookRepository
}

func NewInventoryService(bookRepo db.IBookRepository) *InventoryService {
	if bookRepo == nil {
		panic("inventory service missing book repository")
	}
	return &InventoryService{bookRepo: bookRepo}
}

func (s *InventoryService) CheckAvailability(ctx context.Context, bookID uint, quantity uint) (bool, string, error) {
	book, err := s.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		return false, "", err
	}
	ok, reason := book.CheckStock(quantity)
	return ok, reason, nil
}

func (s *InventoryService) GetStock(ctx context.Context, bookID uint) (uint, error) {
	return s.bookRepo.GetBookStock(ctx, bookID)
}

func (s *InventoryService) DeductStock(ctx context.Context, bookID uint, quantity uint) (uint, error) {
	return s.bookRepo.DeductBookStock(ctx, bookID, quantity)
}

func (s *InventoryService) RestockBook(ctx context.Context, bookID uint, quantity uint) (uint, error) {
	return s.bookRepo.AddBookStock(ctx, bookID, quantity)
}

var _ IInventoryService = (*InventoryService)(nil)
