package service

import (
	"context"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
)

type IFavoriteService interface {
	// AddFavorite 重複加入是冪等的
	AddFavorite(ctx context.Context, userID, bookID uint) error
	RemoveFavorite(ctx context.Context, userID, bookID uint) error
	ListFavorites(ctx context.Context, userID uint) ([]model.Book, error)
	IsFavorite(ctx context.Context, userID, bookID uint) (bool, error)
}

type FavoriteService struct {
	favoriteRepo db.IFavoriteRepository
	bookRepo     db.IBookRepository
}

func NewFavoriteService(favoriteRepo db.IFavoriteRepository, bookRepo db.IBookRepository) *FavoriteService {
	if favoriteRepo == nil || bookRepo == nil {
		panic("favorite service missing required dependency")
	}
	return &FavoriteService{favoriteRepo: favoriteRepo, bookRepo: bookRepo}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID, bookID uint) error {
	if _, err := s.bookRepo.GetBookByID(ctx, bookID); err != nil {
		return err
	}
	return s.favoriteRepo.AddFavorite(ctx, userID, bookID)
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, bookID uint) error {
	return s.favoriteRepo.RemoveFavorite(ctx, userID, bookID)
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID uint) ([]model.Book, error) {
	return s.favoriteRepo.GetFavoriteBooks(ctx, userID)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, bookID uint) (bool, error) {
	return s.favoriteRepo.IsFavorite(ctx, userID, bookID)
}

var _ IFavoriteService = (*FavoriteService)(nil)
