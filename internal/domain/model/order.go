package model

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // 待處理
	OrderStatusProcessing OrderStatus = "processing" // 處理中
	OrderStatusShipped    OrderStatus = "shipped"    // 已出貨
	OrderStatusDelivered  OrderStatus = "delivered"  // 已送達
	OrderStatusCancelled  OrderStatus = "cancelled"  // 已取消
)

var (
	// ErrInvalidAddress 收件地址不符合「街道, 門牌[, 公寓], 六碼郵遞區號」格式
	ErrInvalidAddress = errors.New("invalid shipping address")
	// ErrAmountOutOfRange 訂單金額超出允許範圍
	ErrAmountOutOfRange = errors.New("order amount out of range")
	// ErrInvalidStatusTransition 不允許的訂單狀態轉移
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// 訂單金額上下限（含邊界）
var (
	MinOrderAmount = decimal.NewFromInt(500)
	MaxOrderAmount = decimal.NewFromInt(100000)
)

// 地址格式: 街道, 門牌號[字母][, кв./apt. 公寓號], 六碼郵遞區號
// 各段以逗號分隔
var shippingAddressPattern = regexp.MustCompile(
	`^[^,]+,\s*\d+[A-Za-zА-Яа-я]?(,\s*(кв\.?|apt\.?)\s*\d+)?,\s*\d{6}$`)

type Order struct {
	OrderID         uint            `gorm:"primaryKey" json:"order_id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Status          OrderStatus     `gorm:"not null;type:varchar(20);default:pending" json:"status"`
	ShippingAddress string          `gorm:"not null;type:varchar(255)" json:"shipping_address"`
	PaymentMethod   string          `gorm:"not null;type:varchar(50)" json:"payment_method"`
	TotalAmount     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_amount"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	BaseModel
}

// OrderItem 下單當下的售價快照，之後的折扣異動不影響歷史訂單
type OrderItem struct {
	OrderID  uint            `gorm:"primaryKey" json:"order_id"`
	BookID   uint            `gorm:"primaryKey" json:"book_id"`
	Book     Book            `gorm:"foreignKey:BookID" json:"book"`
	Quantity uint            `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	BaseModel
}

// LineTotal 此列小計，使用快照價格
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ValidateShippingAddress 驗證收件地址格式
func ValidateShippingAddress(address string) error {
	if !shippingAddressPattern.MatchString(address) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return nil
}

// ValidateOrderAmount 驗證訂單金額落在 [MinOrderAmount, MaxOrderAmount]
func ValidateOrderAmount(amount decimal.Decimal) error {
	if amount.LessThan(MinOrderAmount) || amount.GreaterThan(MaxOrderAmount) {
		return fmt.Errorf("%w: %s", ErrAmountOutOfRange, amount.StringFixed(2))
	}
	return nil
}

// Validate 下單前的整體驗證
func (o *Order) Validate() error {
	if err := ValidateShippingAddress(o.ShippingAddress); err != nil {
		return err
	}
	return ValidateOrderAmount(o.TotalAmount)
}

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransitionTo 狀態機: pending → processing → shipped → delivered
// 非終態皆可轉為 cancelled
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal delivered 與 cancelled 為終態
func (s OrderStatus) IsTerminal() bool {
	return len(orderStatusTransitions[s]) == 0
}

// TransitionTo 套用狀態轉移，不允許時回傳 ErrInvalidStatusTransition
func (o *Order) TransitionTo(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, next)
	}
	o.Status = next
	return nil
}
