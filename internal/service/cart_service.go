package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

// CartView 回給呼叫端的購物車內容，總價以查詢當下售價計算
type CartView struct {
	Cart       *model.Cart     `json:"cart"`
	TotalPrice decimal.Decimal `json:"total_price"`
	TotalItems uint            `json:"total_items"`
}

type ICartService interface {
	// AddItem 加入購物車，同一本書重複加入時合併數量
	// 合併後的數量會重新檢查庫存，不足時整個操作不生效
	// 錯誤:
	//   - db.ErrInsufficientStock: 庫存不足（含合併後超量）
	//   - db.ErrBookNotFound: 書不存在
	AddItem(ctx context.Context, userID, bookID uint, quantity uint) error
	// UpdateItemQuantity 直接覆寫數量，錯誤同 AddItem
	UpdateItemQuantity(ctx context.Context, userID, bookID uint, quantity uint) error
	RemoveItem(ctx context.Context, userID, bookID uint) error
	ClearCart(ctx context.Context, userID uint) error
	// GetCart 取得購物車與此刻的總價，沒有購物車時回傳空車
	GetCart(ctx context.Context, userID uint, now time.Time) (*CartView, error)
}

type CartService struct {
	cartRepo db.ICartRepository
}

func NewCartService(cartRepo db.ICartRepository) *CartService {
	if cartRepo == nil {
		panic("cart service missing cart repository")
	}
	return &CartService{cartRepo: cartRepo}
}

func (s *CartService) AddItem(ctx context.Context, userID, bookID uint, quantity uint) error {
	_, err := s.cartRepo.AddItem(ctx, userID, bookID, quantity)
	return err
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, bookID uint, quantity uint) error {
	if quantity == 0 {
		return s.cartRepo.RemoveItem(ctx, userID, bookID)
	}
	return s.cartRepo.UpdateItemQuantity(ctx, userID, bookID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, bookID uint) error {
	return s.cartRepo.RemoveItem(ctx, userID, bookID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.cartRepo.ClearCart(ctx, userID)
}

func (s *CartService) GetCart(ctx context.Context, userID uint, now time.Time) (*CartView, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrCartNotFound) {
			return &CartView{
				Cart:       &model.Cart{UserID: userID, Items: []model.CartItem{}},
				TotalPrice: decimal.NewFromInt(0),
			}, nil
		}
		return nil, err
	}

	var totalItems uint
	for i := range cart.Items {
		totalItems += cart.Items[i].Quantity
	}
	return &CartView{
		Cart:       cart,
		TotalPrice: cart.TotalPrice(now),
		TotalItems: totalItems,
	}, nil
}

var _ ICartService = (*CartService)(nil)
