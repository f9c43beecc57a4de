package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCartNotFound 購物車不存在
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound 購物車內沒有這本書
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

// GetOrCreateCart 取得使用者的購物車，不存在時建立
// 一個使用者只會有一台
func (s *CartRepo) GetOrCreateCart(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).
		Where(model.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCartByUserID 取得購物車與所有商品列，商品帶出書籍資訊
func (s *CartRepo) GetCartByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).
		Preload("Items.Book").
		First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem 加入商品到購物車
// 同一本書已在車內時合併數量，合併後的數量要重新通過庫存檢查
// 整段在一個交易內並鎖定書籍列，避免兩個請求同時搶最後一本
// 檢查失敗時回傳 ErrInsufficientStock，原本的列保持不動
func (s *CartRepo) AddItem(ctx context.Context, userID, bookID uint, quantity uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "book_id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		var cart model.Cart
		if err := tx.Where(model.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		newQuantity := quantity
		err := tx.Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).First(&item).Error
		switch {
		case err == nil:
			newQuantity = item.Quantity + quantity
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = model.CartItem{CartID: cart.CartID, BookID: bookID}
		default:
			return err
		}

		if ok, reason := book.CheckStock(newQuantity); !ok {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, reason)
		}

		item.Quantity = newQuantity
		// 同一本書先前被移除過時會撞到軟刪除的列，一併把deleted_at洗回NULL
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at", "deleted_at"}),
		}).Create(&item).Error
	})

	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity 直接設定某一列的數量，同樣要通過庫存檢查
func (s *CartRepo) UpdateItemQuantity(ctx context.Context, userID, bookID uint, quantity uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "book_id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		var cart model.Cart
		if err := tx.First(&cart, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		if ok, reason := book.CheckStock(quantity); !ok {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, reason)
		}

		result := tx.Model(&model.CartItem{}).
			Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).
			Update("quantity", quantity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// RemoveItem 把書從購物車移除，不在車內時不動作
func (s *CartRepo) RemoveItem(ctx context.Context, userID, bookID uint) error {
	var cart model.Cart
	err := s.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).
		Delete(&model.CartItem{}).Error
}

// ClearCart 清空購物車所有商品列
func (s *CartRepo) ClearCart(ctx context.Context, userID uint) error {
	var cart model.Cart
	err := s.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("cart_id = ?", cart.CartID).
		Delete(&model.CartItem{}).Error
}
