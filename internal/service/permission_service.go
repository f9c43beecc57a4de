package service

import (
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
)

// ErrPermissionDenied 呼叫端沒有執行此操作的權限
var ErrPermissionDenied = errors.New("permission denied")

type IPermissionService interface {
	// Authorize 檢查使用者是否具備某能力，沒有則回 ErrPermissionDenied
	Authorize(user *model.User, cap model.Capability) error
	// CanAccessOrder 訂單本人或具備檢視全部訂單能力者
	CanAccessOrder(user *model.User, order *model.Order) bool
}

type PermissionService struct{}

func NewPermissionService() *PermissionService {
	return &PermissionService{}
}

func (s *PermissionService) Authorize(user *model.User, cap model.Capability) error {
	if user == nil || !user.HasCapability(cap) {
		return ErrPermissionDenied
	}
	return nil
}

func (s *PermissionService) CanAccessOrder(user *model.User, order *model.Order) bool {
	if user == nil || order == nil {
		return false
	}
	return order.UserID == user.UserID || user.HasCapability(model.CapOrderViewAll)
}

var _ IPermissionService = (*PermissionService)(nil)
