package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api"
	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/api/middleware"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

type ReviewHandler struct {
	reviewService   service.IReviewService
	favoriteService service.IFavoriteService
}

func NewReviewHandler(reviewService service.IReviewService, favoriteService service.IFavoriteService) *ReviewHandler {
	if reviewService == nil || favoriteService == nil {
		panic("review handler missing required dependency")
	}
	return &ReviewHandler{
		reviewService:   reviewService,
		favoriteService: favoriteService,
	}
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	var req dto.CreateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review := &model.Review{
		UserID:  user.UserID,
		BookID:  req.BookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.reviewService.CreateReview(r.Context(), review); err != nil {
		writeServiceError(w, err)
		return
	}
	api.CreatedJSON(w, review)
}

func (h *ReviewHandler) GetBookReviews(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	reviews, err := h.reviewService.GetBookReviews(r.Context(), bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, reviews)
}

func (h *ReviewHandler) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	reviews, err := h.reviewService.GetUserReviews(r.Context(), user.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, reviews)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	reviewID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var req dto.UpdateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review := &model.Review{
		ReviewID: reviewID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := h.reviewService.UpdateReview(r.Context(), user.UserID, review); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

// DeleteReview 作者本人或具備評論管理能力者
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	reviewID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid review id")
		return
	}

	if err := h.reviewService.DeleteReview(r.Context(), user, reviewID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *ReviewHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	bookID, err := parseUintParam(r, "bookID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := h.favoriteService.AddFavorite(r.Context(), user.UserID, bookID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *ReviewHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	bookID, err := parseUintParam(r, "bookID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := h.favoriteService.RemoveFavorite(r.Context(), user.UserID, bookID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *ReviewHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	books, err := h.favoriteService.ListFavorites(r.Context(), user.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, books)
}
