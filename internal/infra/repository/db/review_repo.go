package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrReviewNotFound 評論不存在
var ErrReviewNotFound = errors.New("review not found")

type ReviewRepo struct {
	db *DbDao
}

func NewReviewRepo(db *DbDao) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (s *ReviewRepo) CreateReview(ctx context.Context, review *model.Review) error {
	return s.db.WithContext(ctx).Create(review).Error
}

func (s *ReviewRepo) GetReviewByID(ctx context.Context, reviewID uint) (*model.Review, error) {
	var review model.Review
	err := s.db.WithContext(ctx).First(&review, "review_id = ?", reviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewRepo) GetReviewsByBookID(ctx context.Context, bookID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := s.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (s *ReviewRepo) GetReviewsByUserID(ctx context.Context, userID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (s *ReviewRepo) UpdateReview(ctx context.Context, review *model.Review) error {
	return s.db.WithContext(ctx).Save(review).Error
}

func (s *ReviewRepo) DeleteReview(ctx context.Context, reviewID uint) error {
	return s.db.WithContext(ctx).Delete(&model.Review{}, "review_id = ?", reviewID).Error
}

type FavoriteRepo struct {
	db *DbDao
}

func NewFavoriteRepo(db *DbDao) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// AddFavorite (user, book) 已存在時不動作，重複加入是冪等的
func (s *FavoriteRepo) AddFavorite(ctx context.Context, userID, bookID uint) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Favorite{UserID: userID, BookID: bookID}).Error
}

func (s *FavoriteRepo) RemoveFavorite(ctx context.Context, userID, bookID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.Favorite{}).Error
}

// GetFavoriteBooks 取得使用者收藏的書
func (s *FavoriteRepo) GetFavoriteBooks(ctx context.Context, userID uint) ([]model.Book, error) {
	var books []model.Book
	err := s.db.WithContext(ctx).Model(&model.Book{}).
		Joins("JOIN favorites ON favorites.book_id = books.book_id").
		Where("favorites.user_id = ?", userID).
		Preload("Author").
		Find(&books).Error
	return books, err
}

// IsFavorite 檢查某本書是否已被收藏
func (s *FavoriteRepo) IsFavorite(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}
