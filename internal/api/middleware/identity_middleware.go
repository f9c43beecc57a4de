package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/bookstore/internal/api"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

// CurrentUser 取出身分中介層放入的使用者，沒有時回傳nil
func CurrentUser(ctx context.Context) *model.User {
	if v := ctx.Value(constants.CurrentUserKey); v != nil {
		return v.(*model.User)
	}
	return nil
}

// IdentityMiddleware 解析X-User-ID header並載入使用者與角色
// header不存在時視為匿名請求繼續往下走，由RequireUser決定是否擋下
func IdentityMiddleware(userService service.IUserService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(constants.IdentityHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				api.ErrorJSON(w, http.StatusBadRequest, "invalid user id header")
				return
			}

			user, err := userService.GetUser(r.Context(), uint(userID))
			if err != nil {
				api.ErrorJSON(w, http.StatusUnauthorized, "unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), constants.CurrentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser 必須是已識別的使用者
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			api.ErrorJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCapability 必須具備指定能力
func RequireCapability(permissionService service.IPermissionService, cap model.Capability) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			if user == nil {
				api.ErrorJSON(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if err := permissionService.Authorize(user, cap); err != nil {
				api.ErrorJSON(w, http.StatusForbidden, "permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
