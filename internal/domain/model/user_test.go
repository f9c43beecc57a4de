package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func userWithRoles(names ...RoleName) *User {
	user := &User{Username: "tester"}
	for i, name := range names {
		user.Roles = append(user.Roles, Role{RoleID: uint(i + 1), Name: name})
	}
	return user
}

func TestHasCapability(t *testing.T) {
	admin := userWithRoles(RoleAdmin)
	require.True(t, admin.HasCapability(CapBookManage))
	require.True(t, admin.HasCapability(CapOrderViewAll))
	require.True(t, admin.HasCapability(CapReviewModerate))

	moderator := userWithRoles(RoleModerator)
	require.True(t, moderator.HasCapability(CapReviewModerate))
	require.False(t, moderator.HasCapability(CapBookManage))
	require.False(t, moderator.HasCapability(CapOrderViewAll))

	plain := userWithRoles(RoleUser)
	require.False(t, plain.HasCapability(CapBookManage))
	require.False(t, plain.HasCapability(CapReviewModerate))

	// 多重角色取聯集
	both := userWithRoles(RoleUser, RoleModerator)
	require.True(t, both.HasCapability(CapReviewModerate))
	require.False(t, both.HasCapability(CapBookManage))

	// 沒有任何角色
	nobody := &User{}
	require.False(t, nobody.HasCapability(CapReviewModerate))
}

func TestHasRole(t *testing.T) {
	user := userWithRoles(RoleUser, RoleAdmin)
	require.True(t, user.HasRole(RoleAdmin))
	require.True(t, user.HasRole(RoleUser))
	require.False(t, user.HasRole(RoleModerator))
}

func TestRoleCapabilitiesCopy(t *testing.T) {
	caps := RoleCapabilities(RoleModerator)
	require.Equal(t, []Capability{CapReviewModerate}, caps)

	// 回傳的是副本，改動不影響內部表
	caps[0] = CapUserManage
	require.Equal(t, []Capability{CapReviewModerate}, RoleCapabilities(RoleModerator))
}

func TestReviewValidate(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		review := &Review{Rating: rating}
		require.NoError(t, review.Validate())
	}
	for _, rating := range []int{0, -1, 6} {
		review := &Review{Rating: rating}
		require.ErrorIs(t, review.Validate(), ErrInvalidRating)
	}
}
