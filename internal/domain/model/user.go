package model

import "time"

type RoleName string

const (
	RoleUser      RoleName = "user"
	RoleModerator RoleName = "moderator"
	RoleAdmin     RoleName = "admin"
)

// Capability 呼叫端能做什麼，授權檢查一律走能力集合而不是散落的角色判斷
type Capability string

const (
	CapBookManage     Capability = "book:manage"     // 建立/編輯/刪除書籍
	CapOrderViewAll   Capability = "order:view_all"  // 檢視所有人的訂單
	CapOrderManage    Capability = "order:manage"    // 變更訂單狀態
	CapReviewModerate Capability = "review:moderate" // 刪除任意評論
	CapUserManage     Capability = "user:manage"     // 管理使用者與角色
)

// 角色對應的能力集合
var roleCapabilities = map[RoleName][]Capability{
	RoleUser:      {},
	RoleModerator: {CapReviewModerate},
	RoleAdmin: {
		CapBookManage,
		CapOrderViewAll,
		CapOrderManage,
		CapReviewModerate,
		CapUserManage,
	},
}

// RoleCapabilities 回傳單一角色的能力集合副本
func RoleCapabilities(name RoleName) []Capability {
	caps := roleCapabilities[name]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

type User struct {
	UserID       uint   `gorm:"primaryKey" json:"user_id"`
	Username     string `gorm:"not null;type:varchar(150);unique" json:"username"`
	Email        string `gorm:"not null;type:varchar(255)" json:"email"`
	HashPassword string `gorm:"not null;type:varchar(255)" json:"-"`
	Roles        []Role `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID" json:"roles"`
	BaseModel
}

type Role struct {
	RoleID uint     `gorm:"primaryKey" json:"role_id"`
	Name   RoleName `gorm:"not null;type:varchar(50);unique" json:"name"`
	BaseModel
}

// UserRole 使用者與角色的關聯，帶自己的建立時間
type UserRole struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	RoleID    uint      `gorm:"primaryKey" json:"role_id"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

// HasRole Roles 需要已帶出
func (u *User) HasRole(name RoleName) bool {
	for i := range u.Roles {
		if u.Roles[i].Name == name {
			return true
		}
	}
	return false
}

// HasCapability 取使用者所有角色能力集合的聯集後檢查
func (u *User) HasCapability(cap Capability) bool {
	for i := range u.Roles {
		for _, c := range roleCapabilities[u.Roles[i].Name] {
			if c == cap {
				return true
			}
		}
	}
	return false
}
