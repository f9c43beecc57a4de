package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/api"
	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/api/middleware"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

type OrderHandler struct {
	orderService      service.IOrderService
	permissionService service.IPermissionService
}

func NewOrderHandler(orderService service.IOrderService, permissionService service.IPermissionService) *OrderHandler {
	if orderService == nil || permissionService == nil {
		panic("order handler missing required dependency")
	}
	return &OrderHandler{
		orderService:      orderService,
		permissionService: permissionService,
	}
}

// PlaceOrder 把自己的購物車結成訂單
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	var req dto.PlaceOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), user.UserID, req.ShippingAddress, req.PaymentMethod, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.CreatedJSON(w, order)
}

// GetOrder 訂單本人或具備檢視全部訂單能力者
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	orderID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !h.permissionService.CanAccessOrder(user, order) {
		api.ErrorJSON(w, http.StatusForbidden, "permission denied")
		return
	}
	api.SuccessJSON(w, order)
}

func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	orders, err := h.orderService.ListUserOrders(r.Context(), user.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, orders)
}

func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAllOrders(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, orders)
}

func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.orderService.UpdateOrderStatus(r.Context(), orderID, model.OrderStatus(req.Status)); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

// CancelOrder 只有本人能取消自己的pending訂單
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	orderID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !h.permissionService.CanAccessOrder(user, order) {
		api.ErrorJSON(w, http.StatusForbidden, "permission denied")
		return
	}

	if err := h.orderService.CancelOrder(r.Context(), orderID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}
