package service

import (
	"testing"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func userWithRoles(userID uint, roles ...model.RoleName) *model.User {
	u := &model.User{UserID: userID}
	for _, name := range roles {
		u.Roles = append(u.Roles, model.Role{Name: name})
	}
	return u
}

func TestAuthorize(t *testing.T) {
	ps := NewPermissionService()

	admin := userWithRoles(1, model.RoleAdmin)
	moderator := userWithRoles(2, model.RoleModerator)
	regular := userWithRoles(3, model.RoleUser)

	require.NoError(t, ps.Authorize(admin, model.CapBookManage))
	require.NoError(t, ps.Authorize(admin, model.CapUserManage))
	require.NoError(t, ps.Authorize(moderator, model.CapReviewModerate))

	require.ErrorIs(t, ps.Authorize(moderator, model.CapBookManage), ErrPermissionDenied)
	require.ErrorIs(t, ps.Authorize(regular, model.CapReviewModerate), ErrPermissionDenied)
	require.ErrorIs(t, ps.Authorize(nil, model.CapBookManage), ErrPermissionDenied)
}

func TestAuthorize_MultipleRoles(t *testing.T) {
	ps := NewPermissionService()

	// 能力取所有角色的聯集
	both := userWithRoles(1, model.RoleUser, model.RoleModerator)
	require.NoError(t, ps.Authorize(both, model.CapReviewModerate))
	require.ErrorIs(t, ps.Authorize(both, model.CapOrderManage), ErrPermissionDenied)
}

func TestCanAccessOrder(t *testing.T) {
	ps := NewPermissionService()

	owner := userWithRoles(1, model.RoleUser)
	other := userWithRoles(2, model.RoleUser)
	admin := userWithRoles(3, model.RoleAdmin)
	order := &model.Order{OrderID: 10, UserID: 1}

	require.True(t, ps.CanAccessOrder(owner, order))
	require.True(t, ps.CanAccessOrder(admin, order))
	require.False(t, ps.CanAccessOrder(other, order))
	require.False(t, ps.CanAccessOrder(nil, order))
	require.False(t, ps.CanAccessOrder(owner, nil))
}
