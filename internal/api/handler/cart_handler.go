package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/api"
	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/api/middleware"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cart handler missing cart service")
	}
	return &CartHandler{cartService: cartService}
}

// GetCart 取得自己的購物車與此刻的總價
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	view, err := h.cartService.GetCart(r.Context(), user.UserID, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, view)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	var req dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.cartService.AddItem(r.Context(), user.UserID, req.BookID, req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}

	view, err := h.cartService.GetCart(r.Context(), user.UserID, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, view)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	bookID, err := parseUintParam(r, "bookID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var req dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartService.UpdateItemQuantity(r.Context(), user.UserID, bookID, req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}

	view, err := h.cartService.GetCart(r.Context(), user.UserID, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	bookID, err := parseUintParam(r, "bookID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := h.cartService.RemoveItem(r.Context(), user.UserID, bookID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	if err := h.cartService.ClearCart(r.Context(), user.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}
