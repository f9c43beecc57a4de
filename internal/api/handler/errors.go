package handler

import (
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

// writeServiceError 把服務層錯誤轉成HTTP狀態碼
// 不認識的錯誤一律500且不透露內部訊息
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrBookNotFound),
		errors.Is(err, db.ErrAuthorNotFound),
		errors.Is(err, db.ErrGenreNotFound),
		errors.Is(err, db.ErrCartNotFound),
		errors.Is(err, db.ErrCartItemNotFound),
		errors.Is(err, db.ErrOrderNotFound),
		errors.Is(err, db.ErrReviewNotFound),
		errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrRoleNotFound):
		api.ErrorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrInsufficientStock),
		errors.Is(err, model.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrUsernameTaken):
		api.ErrorJSON(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrInvalidDiscountConfig),
		errors.Is(err, model.ErrStatusStockMismatch),
		errors.Is(err, model.ErrInvalidAddress),
		errors.Is(err, model.ErrAmountOutOfRange),
		errors.Is(err, model.ErrInvalidRating),
		errors.Is(err, db.ErrCartEmpty):
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, service.ErrNotReviewOwner):
		api.ErrorJSON(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredential):
		api.ErrorJSON(w, http.StatusUnauthorized, err.Error())
	default:
		api.ErrorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
