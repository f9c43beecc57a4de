package db

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const testShippingAddress = "Main Street, 10, apt. 5, 123456"

type OrderRepoTestSuite struct {
	suite.Suite
	db        *gorm.DB
	orderRepo *OrderRepo
	cartRepo  *CartRepo
	bookRepo  *BookRepo
	userRepo  *UserRepo
}

// SetupSuite 在測試套件開始前執行
func (suite *OrderRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("bookstore_test", "localhost", "5432", "postgres", "password")
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.orderRepo = NewOrderRepo(dbDao)
	suite.cartRepo = NewCartRepo(dbDao)
	suite.bookRepo = NewBookRepo(dbDao)
	suite.userRepo = NewUserRepo(dbDao)
}

// SetupTest 在每個測試前執行
func (suite *OrderRepoTestSuite) SetupTest() {
	// 清空資料表
	suite.db.Exec("DELETE FROM order_items")
	suite.db.Exec("DELETE FROM orders")
	suite.db.Exec("DELETE FROM cart_items")
	suite.db.Exec("DELETE FROM carts")
	suite.db.Exec("DELETE FROM books")
	suite.db.Exec("DELETE FROM authors")
	suite.db.Exec("DELETE FROM users")
}

// TearDownSuite 在測試套件結束後執行
func (suite *OrderRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *OrderRepoTestSuite) createTestUser() *model.User {
	user := &model.User{
		Username:     "test_user",
		Email:        "test@example.com",
		HashPassword: "hashed",
	}
	require.NoError(suite.T(), suite.userRepo.CreateUser(context.Background(), user))
	return user
}

func (suite *OrderRepoTestSuite) createTestBook(price string, stock uint) *model.Book {
	author := &model.Author{Name: "Test Author"}
	require.NoError(suite.T(), suite.db.Create(author).Error)

	book := &model.Book{
		Title:         "Test Book",
		AuthorID:      author.AuthorID,
		Price:         decimal.RequireFromString(price),
		Status:        model.BookStatusAvailable,
		StockQuantity: stock,
	}
	require.NoError(suite.T(), suite.bookRepo.CreateBook(context.Background(), book))
	return book
}

func (suite *OrderRepoTestSuite) TestPlaceOrder() {
	ctx := context.Background()
	user := suite.createTestUser()
	bookA := suite.createTestBook("100", 10)
	bookB := suite.createTestBook("50", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, bookA.BookID, 2)
	require.NoError(suite.T(), err)
	_, err = suite.cartRepo.AddItem(ctx, user.UserID, bookB.BookID, 1)
	require.NoError(suite.T(), err)

	order, err := suite.orderRepo.PlaceOrder(ctx, user.UserID, testShippingAddress, "card", time.Now())

	require.NoError(suite.T(), err)
	require.NotZero(suite.T(), order.OrderID)
	require.Equal(suite.T(), model.OrderStatusPending, order.Status)
	require.Len(suite.T(), order.Items, 2)
	// 2*100 + 1*50 = 250
	require.True(suite.T(), decimal.NewFromInt(250).Equal(order.TotalAmount))

	// 庫存已扣
	stockA, err := suite.bookRepo.GetBookStock(ctx, bookA.BookID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), uint(8), stockA)

	// 購物車已清空
	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 0)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_EmptyCart() {
	ctx := context.Background()
	user := suite.createTestUser()

	order, err := suite.orderRepo.PlaceOrder(ctx, user.UserID, testShippingAddress, "card", time.Now())

	require.ErrorIs(suite.T(), err, ErrCartEmpty)
	require.Nil(suite.T(), order)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_InsufficientStock() {
	ctx := context.Background()
	user := suite.createTestUser()
	// 庫存只有1本，購物車放2本
	book := suite.createTestBook("300", 2)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 2)
	require.NoError(suite.T(), err)

	// 另一個買家先買走1本，剩餘庫存不足
	_, err = suite.bookRepo.DeductBookStock(ctx, book.BookID, 1)
	require.NoError(suite.T(), err)

	order, err := suite.orderRepo.PlaceOrder(ctx, user.UserID, testShippingAddress, "card", time.Now())

	require.ErrorIs(suite.T(), err, ErrInsufficientStock)
	require.Nil(suite.T(), order)

	// 庫存不變
	stock, err := suite.bookRepo.GetBookStock(ctx, book.BookID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), uint(1), stock)

	// 購物車內容保留
	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	require.Equal(suite.T(), uint(2), cart.Items[0].Quantity)

	// 沒有留下任何訂單
	orders, err := suite.orderRepo.GetOrdersByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), orders, 0)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_AmountBelowMinimum() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("499", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 1)
	require.NoError(suite.T(), err)

	order, err := suite.orderRepo.PlaceOrder(ctx, user.UserID, testShippingAddress, "card", time.Now())

	require.ErrorIs(suite.T(), err, model.ErrAmountOutOfRange)
	require.Nil(suite.T(), order)

	// 回滾後庫存與購物車皆不變
	stock, err := suite.bookRepo.GetBookStock(ctx, book.BookID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), uint(10), stock)

	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_InvalidAddress() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("500", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 1)
	require.NoError(suite.T(), err)

	order, err := suite.orderRepo.PlaceOrder(ctx, user.UserID, "not an address", "card", time.Now())

	require.ErrorIs(suite.T(), err, model.ErrInvalidAddress)
	require.Nil(suite.T(), order)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_PriceSnapshotUsesDiscount() {
	ctx := context.Background()
	user := suite.createTestUser()

	author := &model.Author{Name: "Test Author"}
	require.NoError(suite.T(), suite.db.Create(author).Error)

	now := time.Now()
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	book := &model.Book{
		Title:           "Discounted Book",
		AuthorID:        author.AuthorID,
		Price:           decimal.NewFromInt(1000),
		Status:          model.BookStatusAvailable,
		StockQuantity:   10,
		HasDiscount:     true,
		DiscountPercent: 20,
		DiscountStart:   &start,
		DiscountEnd:     &end,
	}
	require.NoError(suite.T(), suite.bookRepo.CreateBook(ctx, book))

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 1)
	require.NoError(suite.T(), err)

	order, err := suite.orderRepo.PlaceOrder(ctx, user.UserID, testShippingAddress, "card", now)

	require.NoError(suite.T(), err)
	// 快照的是折扣價 1000 - 20% = 800
	require.True(suite.T(), decimal.NewFromInt(800).Equal(order.Items[0].Price))
	require.True(suite.T(), decimal.NewFromInt(800).Equal(order.TotalAmount))
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_LastCopySetsOutOfStock() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("600", 1)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 1)
	require.NoError(suite.T(), err)

	_, err = suite.orderRepo.PlaceOrder(ctx, user.UserID, testShippingAddress, "card", time.Now())
	require.NoError(suite.T(), err)

	updated, err := suite.bookRepo.GetBookByID(ctx, book.BookID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.BookStatusOutOfStock, updated.Status)
	require.Equal(suite.T(), uint(0), updated.StockQuantity)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatus() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("600", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 1)
	require.NoError(suite.T(), err)
	order, err := suite.orderRepo.PlaceOrder(ctx, user.UserID, testShippingAddress, "card", time.Now())
	require.NoError(suite.T(), err)

	err = suite.orderRepo.UpdateOrderStatus(ctx, order.OrderID, model.OrderStatusProcessing)
	require.NoError(suite.T(), err)

	updated, err := suite.orderRepo.GetOrderByID(ctx, order.OrderID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusProcessing, updated.Status)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatus_InvalidTransition() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("600", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 1)
	require.NoError(suite.T(), err)
	order, err := suite.orderRepo.PlaceOrder(ctx, user.UserID, testShippingAddress, "card", time.Now())
	require.NoError(suite.T(), err)

	// pending 不能直接跳到 delivered
	err = suite.orderRepo.UpdateOrderStatus(ctx, order.OrderID, model.OrderStatusDelivered)
	require.ErrorIs(suite.T(), err, model.ErrInvalidStatusTransition)

	updated, err := suite.orderRepo.GetOrderByID(ctx, order.OrderID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusPending, updated.Status)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatus_NotFound() {
	err := suite.orderRepo.UpdateOrderStatus(context.Background(), 999, model.OrderStatusProcessing)
	require.ErrorIs(suite.T(), err, ErrOrderNotFound)
}

// 執行測試套件
func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}
