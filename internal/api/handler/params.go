package handler

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/go-chi/chi/v5"
)

// parseUintParam 解析路由上的數字參數
func parseUintParam(r *http.Request, name string) (uint, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func parseUintQuery(r *http.Request, name string) uint {
	v, err := strconv.ParseUint(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func parseIntQuery(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// parsePaging 回傳(page, pageSize)，超出上限時壓回預設值
func parsePaging(r *http.Request) (int, int) {
	page := parseIntQuery(r, "page", constants.DefaultPaging)
	pageSize := parseIntQuery(r, "page_size", constants.DefaultPagingSize)
	if pageSize > constants.MaxPagingSize {
		pageSize = constants.DefaultPagingSize
	}
	return page, pageSize
}
