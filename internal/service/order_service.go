package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
)

type IOrderService interface {
	// PlaceOrder 把購物車結成訂單
	// 庫存檢查、售價快照、扣庫存、清空購物車在同一交易內完成
	// 錯誤:
	//   - db.ErrCartEmpty: 購物車是空的
	//   - db.ErrInsufficientStock: 任一商品庫存不足，整筆回滾
	//   - model.ErrInvalidAddress: 收件地址格式不對
	//   - model.ErrAmountOutOfRange: 總額不在允許區間
	PlaceOrder(ctx context.Context, userID uint, shippingAddress, paymentMethod string, now time.Time) (*model.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID uint) ([]model.Order, error)
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	// 錯誤:
	//   - model.ErrInvalidStatusTransition: 狀態機不允許的轉移
	UpdateOrderStatus(ctx context.Context, orderID uint, next model.OrderStatus) error
	// CancelOrder 非終態的訂單皆可取消，其餘回傳 model.ErrInvalidStatusTransition
	CancelOrder(ctx context.Context, orderID uint) error
}

type OrderService struct {
	orderRepo db.IOrderRepository
}

func NewOrderService(orderRepo db.IOrderRepository) *OrderService {
	if orderRepo == nil {
		panic("order service missing order repository")
	}
	return &OrderService{orderRepo: orderRepo}
}

func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, shippingAddress, paymentMethod string, now time.Time) (*model.Order, error) {
	// 地址先驗證，不用等開交易才失敗
	if err := model.ValidateShippingAddress(shippingAddress); err != nil {
		return nil, err
	}
	return s.orderRepo.PlaceOrder(ctx, userID, shippingAddress, paymentMethod, now)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	return s.orderRepo.GetOrderByID(ctx, orderID)
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]model.Order, error) {
	return s.orderRepo.GetOrdersByUserID(ctx, userID)
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.GetAllOrders(ctx)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint, next model.OrderStatus) error {
	return s.orderRepo.UpdateOrderStatus(ctx, orderID, next)
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID uint) error {
	return s.orderRepo.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled)
}

var _ IOrderService = (*OrderService)(nil)
