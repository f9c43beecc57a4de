package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
)

// IBookRepository Book 相關操作介面
type IBookRepository interface {
	CreateBook(ctx context.Context, book *model.Book) error
	GetBookByID(ctx context.Context, bookID uint) (*model.Book, error)
	GetBooks(ctx context.Context, filter BookFilter) ([]model.Book, int64, error)
	UpdateBook(ctx context.Context, book *model.Book) error
	DeleteBook(ctx context.Context, bookID uint) error
	GetBookStock(ctx context.Context, bookID uint) (uint, error)
	DeductBookStock(ctx context.Context, bookID uint, quantity uint) (uint, error)
	AddBookStock(ctx context.Context, bookID uint, quantity uint) (uint, error)
	GetBookStats(ctx context.Context, bookID uint) (*model.BookStats, error)
	GetAuthorStats(ctx context.Context, authorID uint) (*model.AuthorStats, error)
	GetGenreStats(ctx context.Context, genreID uint) (*model.GenreStats, error)
	GetNewBooks(ctx context.Context, since time.Time) ([]model.Book, error)
	GetBestsellers(ctx context.Context, limit int) ([]model.Book, error)
	GetHighlyRated(ctx context.Context, minRating float64) ([]model.Book, error)
	AddBookGenre(ctx context.Context, bookID, genreID uint) error
	RemoveBookGenre(ctx context.Context, bookID, genreID uint) error
	GetBookGenres(ctx context.Context, bookID uint) ([]model.Genre, error)
}

// IAuthorRepository Author/Genre 相關操作介面
type IAuthorRepository interface {
	CreateAuthor(ctx context.Context, author *model.Author) error
	GetAuthorByID(ctx context.Context, authorID uint) (*model.Author, error)
	GetAllAuthors(ctx context.Context) ([]model.Author, error)
	UpdateAuthor(ctx context.Context, author *model.Author) error
	DeleteAuthor(ctx context.Context, authorID uint) error
	CreateGenre(ctx context.Context, genre *model.Genre) error
	GetGenreByID(ctx context.Context, genreID uint) (*model.Genre, error)
	GetAllGenres(ctx context.Context) ([]model.Genre, error)
	DeleteGenre(ctx context.Context, genreID uint) error
}

// ICartRepository Cart 相關操作介面
type ICartRepository interface {
	GetOrCreateCart(ctx context.Context, userID uint) (*model.Cart, error)
	GetCartByUserID(ctx context.Context, userID uint) (*model.Cart, error)
	AddItem(ctx context.Context, userID, bookID uint, quantity uint) (*model.CartItem, error)
	UpdateItemQuantity(ctx context.Context, userID, bookID uint, quantity uint) error
	RemoveItem(ctx context.Context, userID, bookID uint) error
	ClearCart(ctx context.Context, userID uint) error
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	PlaceOrder(ctx context.Context, userID uint, shippingAddress, paymentMethod string, now time.Time) (*model.Order, error)
	GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, next model.OrderStatus) error
}

// IReviewRepository Review 相關操作介面
type IReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) error
	GetReviewByID(ctx context.Context, reviewID uint) (*model.Review, error)
	GetReviewsByBookID(ctx context.Context, bookID uint) ([]model.Review, error)
	GetReviewsByUserID(ctx context.Context, userID uint) ([]model.Review, error)
	UpdateReview(ctx context.Context, review *model.Review) error
	DeleteReview(ctx context.Context, reviewID uint) error
}

// IFavoriteRepository Favorite 相關操作介面
type IFavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, bookID uint) error
	RemoveFavorite(ctx context.Context, userID, bookID uint) error
	GetFavoriteBooks(ctx context.Context, userID uint) ([]model.Book, error)
	IsFavorite(ctx context.Context, userID, bookID uint) (bool, error)
}

// IUserRepository User/Role 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	CreateRoleIfNotExists(ctx context.Context, name model.RoleName) error
	GetRoleByName(ctx context.Context, name model.RoleName) (*model.Role, error)
	AssignRole(ctx context.Context, userID, roleID uint) error
	RevokeRole(ctx context.Context, userID, roleID uint) error
}

var (
	_ IBookRepository     = (*BookRepo)(nil)
	_ IAuthorRepository   = (*AuthorRepo)(nil)
	_ ICartRepository     = (*CartRepo)(nil)
	_ IOrderRepository    = (*OrderRepo)(nil)
	_ IReviewRepository   = (*ReviewRepo)(nil)
	_ IFavoriteRepository = (*FavoriteRepo)(nil)
	_ IUserRepository     = (*UserRepo)(nil)
)
