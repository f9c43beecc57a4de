package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
)

// ErrNotReviewOwner 不是評論作者本人
var ErrNotReviewOwner = errors.New("not the review owner")

type IReviewService interface {
	// 錯誤:
	//   - model.ErrInvalidRating: 評分不在 1~5
	//   - db.ErrBookNotFound: 書不存在
	CreateReview(ctx context.Context, review *model.Review) error
	GetBookReviews(ctx context.Context, bookID uint) ([]model.Review, error)
	GetUserReviews(ctx context.Context, userID uint) ([]model.Review, error)
	// UpdateReview 只有作者本人能改，錯誤:
	//   - ErrNotReviewOwner
	//   - model.ErrInvalidRating
	UpdateReview(ctx context.Context, userID uint, review *model.Review) error
	// DeleteReview 作者本人或具備評論管理能力者能刪
	DeleteReview(ctx context.Context, actor *model.User, reviewID uint) error
}

type ReviewService struct {
	reviewRepo db.IReviewRepository
	bookRepo   db.IBookRepository
}

func NewReviewService(reviewRepo db.IReviewRepository, bookRepo db.IBookRepository) *ReviewService {
	if reviewRepo == nil || bookRepo == nil {
		panic("review service missing required dependency")
	}
	return &ReviewService{reviewRepo: reviewRepo, bookRepo: bookRepo}
}

func (s *ReviewService) CreateReview(ctx context.Context, review *model.Review) error {
	if err := review.Validate(); err != nil {
		return err
	}
	if _, err := s.bookRepo.GetBookByID(ctx, review.BookID); err != nil {
		return err
	}
	return s.reviewRepo.CreateReview(ctx, review)
}

func (s *ReviewService) GetBookReviews(ctx context.Context, bookID uint) ([]model.Review, error) {
	return s.reviewRepo.GetReviewsByBookID(ctx, bookID)
}

func (s *ReviewService) GetUserReviews(ctx context.Context, userID uint) ([]model.Review, error) {
	return s.reviewRepo.GetReviewsByUserID(ctx, userID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, userID uint, review *model.Review) error {
	if err := review.Validate(); err != nil {
		return err
	}
	existing, err := s.reviewRepo.GetReviewByID(ctx, review.ReviewID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotReviewOwner
	}
	existing.Rating = review.Rating
	existing.Comment = review.Comment
	return s.reviewRepo.UpdateReview(ctx, existing)
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor *model.User, reviewID uint) error {
	review, err := s.reviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actor.UserID && !actor.HasCapability(model.CapReviewModerate) {
		return ErrNotReviewOwner
	}
	return s.reviewRepo.DeleteReview(ctx, reviewID)
}

var _ IReviewService = (*ReviewService)(nil)
