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

type CartRepoTestSuite struct {
	suite.Suite
	db       *gorm.DB
	cartRepo *CartRepo
	bookRepo *BookRepo
	userRepo *UserRepo
}

// SetupSuite 在測試套件開始前執行
func (suite *CartRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("bookstore_test", "localhost", "5432", "postgres", "password")
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.cartRepo = NewCartRepo(dbDao)
	suite.bookRepo = NewBookRepo(dbDao)
	suite.userRepo = NewUserRepo(dbDao)
}

// SetupTest 在每個測試前執行
func (suite *CartRepoTestSuite) SetupTest() {
	// 清空資料表
	suite.db.Exec("DELETE FROM cart_items")
	suite.db.Exec("DELETE FROM carts")
	suite.db.Exec("DELETE FROM books")
	suite.db.Exec("DELETE FROM authors")
	suite.db.Exec("DELETE FROM users")
}

// TearDownSuite 在測試套件結束後執行
func (suite *CartRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *CartRepoTestSuite) createTestUser() *model.User {
	user := &model.User{
		Username:     "test_user",
		Email:        "test@example.com",
		HashPassword: "hashed",
	}
	require.NoError(suite.T(), suite.userRepo.CreateUser(context.Background(), user))
	return user
}

func (suite *CartRepoTestSuite) createTestBook(price string, stock uint) *model.Book {
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

func (suite *CartRepoTestSuite) TestAddItem_CreatesCart() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("100", 10)

	item, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 2)

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), uint(2), item.Quantity)

	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
}

func (suite *CartRepoTestSuite) TestAddItem_MergesQuantity() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("100", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 2)
	require.NoError(suite.T(), err)

	item, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 3)

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), uint(5), item.Quantity)

	// 合併而不是新增一列
	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
}

func (suite *CartRepoTestSuite) TestAddItem_MergedQuantityExceedsStock() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("100", 5)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 3)
	require.NoError(suite.T(), err)

	// 3 + 3 > 5，合併後超量
	_, err = suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 3)
	require.ErrorIs(suite.T(), err, ErrInsufficientStock)

	// 原本的列保持不動
	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	require.Equal(suite.T(), uint(3), cart.Items[0].Quantity)
}

func (suite *CartRepoTestSuite) TestAddItem_BookNotAvailable() {
	ctx := context.Background()
	user := suite.createTestUser()

	author := &model.Author{Name: "Test Author"}
	require.NoError(suite.T(), suite.db.Create(author).Error)
	book := &model.Book{
		Title:         "Sold Out Book",
		AuthorID:      author.AuthorID,
		Price:         decimal.NewFromInt(100),
		Status:        model.BookStatusOutOfStock,
		StockQuantity: 0,
	}
	require.NoError(suite.T(), suite.bookRepo.CreateBook(ctx, book))

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 1)
	require.ErrorIs(suite.T(), err, ErrInsufficientStock)
}

func (suite *CartRepoTestSuite) TestAddItem_BookNotFound() {
	ctx := context.Background()
	user := suite.createTestUser()

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, 999, 1)
	require.ErrorIs(suite.T(), err, ErrBookNotFound)
}

func (suite *CartRepoTestSuite) TestUpdateItemQuantity() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("100", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 2)
	require.NoError(suite.T(), err)

	err = suite.cartRepo.UpdateItemQuantity(ctx, user.UserID, book.BookID, 7)
	require.NoError(suite.T(), err)

	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), uint(7), cart.Items[0].Quantity)
}

func (suite *CartRepoTestSuite) TestUpdateItemQuantity_ExceedsStock() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("100", 5)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 2)
	require.NoError(suite.T(), err)

	err = suite.cartRepo.UpdateItemQuantity(ctx, user.UserID, book.BookID, 6)
	require.ErrorIs(suite.T(), err, ErrInsufficientStock)

	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), uint(2), cart.Items[0].Quantity)
}

func (suite *CartRepoTestSuite) TestUpdateItemQuantity_ItemNotInCart() {
	ctx := context.Background()
	user := suite.createTestUser()
	bookA := suite.createTestBook("100", 10)
	bookB := suite.createTestBook("200", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, bookA.BookID, 1)
	require.NoError(suite.T(), err)

	err = suite.cartRepo.UpdateItemQuantity(ctx, user.UserID, bookB.BookID, 1)
	require.ErrorIs(suite.T(), err, ErrCartItemNotFound)
}

func (suite *CartRepoTestSuite) TestRemoveItem() {
	ctx := context.Background()
	user := suite.createTestUser()
	book := suite.createTestBook("100", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, book.BookID, 2)
	require.NoError(suite.T(), err)

	err = suite.cartRepo.RemoveItem(ctx, user.UserID, book.BookID)
	require.NoError(suite.T(), err)

	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 0)
}

func (suite *CartRepoTestSuite) TestRemoveItem_NoCart() {
	// 沒有購物車時不動作也不報錯
	err := suite.cartRepo.RemoveItem(context.Background(), 999, 1)
	require.NoError(suite.T(), err)
}

func (suite *CartRepoTestSuite) TestClearCart() {
	ctx := context.Background()
	user := suite.createTestUser()
	bookA := suite.createTestBook("100", 10)
	bookB := suite.createTestBook("200", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, bookA.BookID, 1)
	require.NoError(suite.T(), err)
	_, err = suite.cartRepo.AddItem(ctx, user.UserID, bookB.BookID, 1)
	require.NoError(suite.T(), err)

	err = suite.cartRepo.ClearCart(ctx, user.UserID)
	require.NoError(suite.T(), err)

	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 0)
}

func (suite *CartRepoTestSuite) TestCartTotalPrice() {
	ctx := context.Background()
	user := suite.createTestUser()
	bookA := suite.createTestBook("100", 10)
	bookB := suite.createTestBook("50", 10)

	_, err := suite.cartRepo.AddItem(ctx, user.UserID, bookA.BookID, 2)
	require.NoError(suite.T(), err)
	_, err = suite.cartRepo.AddItem(ctx, user.UserID, bookB.BookID, 1)
	require.NoError(suite.T(), err)

	cart, err := suite.cartRepo.GetCartByUserID(ctx, user.UserID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), decimal.NewFromInt(250).Equal(cart.TotalPrice(time.Now())))
}

// 執行測試套件
func TestCartRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepoTestSuite))
}
