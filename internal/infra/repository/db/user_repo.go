package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrUserNotFound 使用者不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleNotFound 角色不存在
	ErrRoleNotFound = errors.New("role not found")
)

type UserRepo struct {
	db *DbDao
}

func NewUserRepo(db *DbDao) *UserRepo {
	return &UserRepo{db: db}
}

func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Omit("Roles").Create(user).Error
}

// GetUserByID 取得使用者與其角色
func (s *UserRepo) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Roles").First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Roles").First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) GetAllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Preload("Roles").Find(&users).Error
	return users, err
}

// CreateRoleIfNotExists 依名稱建立角色，已存在時不動作
func (s *UserRepo) CreateRoleIfNotExists(ctx context.Context, name model.RoleName) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Role{Name: name}).Error
}

func (s *UserRepo) GetRoleByName(ctx context.Context, name model.RoleName) (*model.Role, error) {
	var role model.Role
	err := s.db.WithContext(ctx).First(&role, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// AssignRole 指派角色給使用者，重複指派是冪等的
func (s *UserRepo) AssignRole(ctx context.Context, userID, roleID uint) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserRole{UserID: userID, RoleID: roleID}).Error
}

func (s *UserRepo) RevokeRole(ctx context.Context, userID, roleID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.UserRole{}).Error
}
