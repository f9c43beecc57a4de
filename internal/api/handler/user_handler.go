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

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	if userService == nil {
		panic("user handler missing user service")
	}
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		api.ErrorJSON(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.CreatedJSON(w, user)
}

// Me 回傳目前識別到的使用者
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	api.SuccessJSON(w, user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, users)
}

func (h *UserHandler) GrantRole(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req dto.GrantRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.GrantRole(r.Context(), userID, model.RoleName(req.Role)); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *UserHandler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req dto.GrantRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.RevokeRole(r.Context(), userID, model.RoleName(req.Role)); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}
