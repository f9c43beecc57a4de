package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken 帳號名稱已被使用
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredential 帳號或密碼錯誤
	ErrInvalidCredential = errors.New("invalid username or password")
)

type IUserService interface {
	// Register 建立使用者並指派預設角色
	// 錯誤:
	//   - ErrUsernameTaken: 帳號名稱重複
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// VerifyPassword 比對密碼，錯誤一律回 ErrInvalidCredential，不透露帳號是否存在
	VerifyPassword(ctx context.Context, username, password string) (*model.User, error)
	GetUser(ctx context.Context, userID uint) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	// GrantRole 指派角色給使用者，重複指派是冪等的
	GrantRole(ctx context.Context, userID uint, name model.RoleName) error
	RevokeRole(ctx context.Context, userID uint, name model.RoleName) error
	// SeedRoles 確保三種角色存在，啟動時呼叫
	SeedRoles(ctx context.Context) error
}

type UserService struct {
	userRepo db.IUserRepository
}

func NewUserService(userRepo db.IUserRepository) *UserService {
	if userRepo == nil {
		panic("user service missing user repository")
	}
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if _, err := s.userRepo.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, db.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		HashPassword: string(hashed),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.GrantRole(ctx, user.UserID, model.RoleUser); err != nil {
		return nil, err
	}
	return s.userRepo.GetUserByID(ctx, user.UserID)
}

func (s *UserService) VerifyPassword(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *UserService) GrantRole(ctx context.Context, userID uint, name model.RoleName) error {
	role, err := s.userRepo.GetRoleByName(ctx, name)
	if err != nil {
		return err
	}
	return s.userRepo.AssignRole(ctx, userID, role.RoleID)
}

func (s *UserService) RevokeRole(ctx context.Context, userID uint, name model.RoleName) error {
	role, err := s.userRepo.GetRoleByName(ctx, name)
	if err != nil {
		return err
	}
	return s.userRepo.RevokeRole(ctx, userID, role.RoleID)
}

func (s *UserService) SeedRoles(ctx context.Context) error {
	for _, name := range []model.RoleName{model.RoleUser, model.RoleModerator, model.RoleAdmin} {
		if err := s.userRepo.CreateRoleIfNotExists(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

var _ IUserService = (*UserService)(nil)
