package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrCartEmpty 購物車是空的，無法結帳
	ErrCartEmpty = errors.New("cart is empty")
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// PlaceOrder 結帳
// 全部在一個交易內完成:
//  1. 取出購物車商品列
//  2. 逐本鎖定書籍列後檢查庫存
//  3. 以結帳當下售價建立快照並計算總額
//  4. 驗證地址與金額後建立訂單
//  5. 扣庫存、清空購物車
//
// 任何一步失敗整筆回滾，不會留下扣了一半的庫存或沒有商品的訂單
func (s *OrderRepo) PlaceOrder(ctx context.Context, userID uint, shippingAddress, paymentMethod string, now time.Time) (*model.Order, error) {
	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart model.Cart
		if err := tx.Preload("Items").First(&cart, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartEmpty
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		newOrder := model.Order{
			UserID:          userID,
			Status:          model.OrderStatusPending,
			ShippingAddress: shippingAddress,
			PaymentMethod:   paymentMethod,
		}

		type deduction struct {
			bookID    uint
			quantity  uint
			remaining uint
		}
		deductions := make([]deduction, 0, len(cart.Items))

		for _, cartItem := range cart.Items {
			var book model.Book
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&book, "book_id = ?", cartItem.BookID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBookNotFound
				}
				return err
			}

			if ok, reason := book.CheckStock(cartItem.Quantity); !ok {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, reason)
			}

			orderItem := model.OrderItem{
				BookID:   cartItem.BookID,
				Quantity: cartItem.Quantity,
				Price:    book.CurrentPrice(now),
			}
			newOrder.Items = append(newOrder.Items, orderItem)
			newOrder.TotalAmount = newOrder.TotalAmount.Add(orderItem.LineTotal())

			deductions = append(deductions, deduction{
				bookID:    cartItem.BookID,
				quantity:  cartItem.Quantity,
				remaining: book.StockQuantity - cartItem.Quantity,
			})
		}

		if err := newOrder.Validate(); err != nil {
			return err
		}

		if err := tx.Omit("Items.Book").Create(&newOrder).Error; err != nil {
			return err
		}

		for _, d := range deductions {
			updates := map[string]interface{}{
				"stock_quantity": gorm.Expr("stock_quantity - ?", d.quantity),
			}
			if d.remaining == 0 {
				updates["status"] = model.BookStatusOutOfStock
			}
			if err := tx.Model(&model.Book{}).
				Where("book_id = ?", d.bookID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", cart.CartID).
			Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		order = &newOrder
		return nil
	})

	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderRepo) GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Book").
		First(&order, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Book").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus 套用訂單狀態轉移
// 鎖定訂單列後用狀態機檢查，不允許的轉移回傳 model.ErrInvalidStatusTransition
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID uint, next model.OrderStatus) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if err := order.TransitionTo(next); err != nil {
			return err
		}

		return tx.Model(&model.Order{}).
			Where("order_id = ?", orderID).
			Update("status", next).Error
	})
}
