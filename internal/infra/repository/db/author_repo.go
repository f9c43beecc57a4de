package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"gorm.io/gorm"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrGenreNotFound  = errors.New("genre not found")
)

type AuthorRepo struct {
	db *DbDao
}

func NewAuthorRepo(db *DbDao) *AuthorRepo {
	return &AuthorRepo{db: db}
}

func (s *AuthorRepo) CreateAuthor(ctx context.Context, author *model.Author) error {
	return s.db.WithContext(ctx).Create(author).Error
}

func (s *AuthorRepo) GetAuthorByID(ctx context.Context, authorID uint) (*model.Author, error) {
	var author model.Author
	err := s.db.WithContext(ctx).First(&author, "author_id = ?", authorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuthorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (s *AuthorRepo) GetAllAuthors(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	err := s.db.WithContext(ctx).Order("name").Find(&authors).Error
	return authors, err
}

func (s *AuthorRepo) UpdateAuthor(ctx context.Context, author *model.Author) error {
	return s.db.WithContext(ctx).Save(author).Error
}

func (s *AuthorRepo) DeleteAuthor(ctx context.Context, authorID uint) error {
	return s.db.WithContext(ctx).Delete(&model.Author{}, "author_id = ?", authorID).Error
}

func (s *AuthorRepo) CreateGenre(ctx context.Context, genre *model.Genre) error {
	return s.db.WithContext(ctx).Create(genre).Error
}

func (s *AuthorRepo) GetGenreByID(ctx context.Context, genreID uint) (*model.Genre, error) {
	var genre model.Genre
	err := s.db.WithContext(ctx).First(&genre, "genre_id = ?", genreID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGenreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (s *AuthorRepo) GetAllGenres(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	err := s.db.WithContext(ctx).Order("name").Find(&genres).Error
	return genres, err
}

func (s *AuthorRepo) DeleteGenre(ctx context.Context, genreID uint) error {
	return s.db.WithContext(ctx).Delete(&model.Genre{}, "genre_id = ?", genreID).Error
}
