package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/api"
	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/shopspring/decimal"
)

type BookHandler struct {
	catalogService   service.ICatalogService
	inventoryService service.IInventoryService
}

func NewBookHandler(catalogService service.ICatalogService, inventoryService service.IInventoryService) *BookHandler {
	if catalogService == nil || inventoryService == nil {
		panic("book handler missing required dependency")
	}
	return &BookHandler{
		catalogService:   catalogService,
		inventoryService: inventoryService,
	}
}

func bookFromDTO(req dto.CreateBookDTO) *model.Book {
	status := model.BookStatus(req.Status)
	if status == "" {
		status = model.BookStatusAvailable
	}
	return &model.Book{
		Title:           req.Title,
		AuthorID:        req.AuthorID,
		Description:     req.Description,
		Price:           req.Price,
		Status:          status,
		StockQuantity:   req.StockQuantity,
		HasDiscount:     req.HasDiscount,
		DiscountPercent: req.DiscountPercent,
		DiscountStart:   req.DiscountStart,
		DiscountEnd:     req.DiscountEnd,
		PublishedAt:     req.PublishedAt,
	}
}

func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book := bookFromDTO(req)
	if err := h.catalogService.CreateBook(r.Context(), book); err != nil {
		writeServiceError(w, err)
		return
	}
	api.CreatedJSON(w, book)
}

func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var req dto.UpdateBookDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book := bookFromDTO(req.CreateBookDTO)
	book.BookID = bookID
	if err := h.catalogService.UpdateBook(r.Context(), book); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, book)
}

func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := h.catalogService.GetBook(r.Context(), bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, book)
}

func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := h.catalogService.DeleteBook(r.Context(), bookID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

// ListBooks 依query string組出過濾條件
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	filter := db.BookFilter{
		Title:       r.URL.Query().Get("title"),
		AuthorID:    parseUintQuery(r, "author_id"),
		GenreID:     parseUintQuery(r, "genre_id"),
		Status:      model.BookStatus(r.URL.Query().Get("status")),
		InStockOnly: r.URL.Query().Get("in_stock") == "true",
		Page:        page,
		PageSize:    pageSize,
	}
	if v := r.URL.Query().Get("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &d
		}
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &d
		}
	}
	if v := r.URL.Query().Get("has_discount"); v != "" {
		b := v == "true"
		filter.HasDiscount = &b
	}

	books, total, err := h.catalogService.ListBooks(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]any{
		"books":     books,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *BookHandler) GetPricing(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	pricing, err := h.catalogService.GetPricing(r.Context(), bookID, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, pricing)
}

// CheckAvailability 查詢某本書能否出貨指定數量
func (h *BookHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}
	quantity := parseUintQuery(r, "quantity")
	if quantity == 0 {
		quantity = 1
	}

	ok, reason, err := h.inventoryService.CheckAvailability(r.Context(), bookID, quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]any{
		"available": ok,
		"reason":    reason,
	})
}

func (h *BookHandler) RestockBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}
	quantity := parseUintQuery(r, "quantity")
	if quantity == 0 {
		api.ErrorJSON(w, http.StatusBadRequest, "quantity is required")
		return
	}

	remaining, err := h.inventoryService.RestockBook(r.Context(), bookID, quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]any{"stock_quantity": remaining})
}

func (h *BookHandler) GetBookStats(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	stats, err := h.catalogService.GetBookStats(r.Context(), bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, stats)
}

func (h *BookHandler) GetNewBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalogService.GetNewBooks(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, books)
}

func (h *BookHandler) GetBestsellers(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 10)
	books, err := h.catalogService.GetBestsellers(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, books)
}

func (h *BookHandler) GetHighlyRated(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalogService.GetHighlyRated(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, books)
}

func (h *BookHandler) GetBookGenres(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	genres, err := h.catalogService.GetBookGenres(r.Context(), bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, genres)
}

func (h *BookHandler) AssignGenre(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}
	genreID, err := parseUintParam(r, "genreID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid genre id")
		return
	}

	if err := h.catalogService.AssignGenre(r.Context(), bookID, genreID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *BookHandler) RemoveGenre(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}
	genreID, err := parseUintParam(r, "genreID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid genre id")
		return
	}

	if err := h.catalogService.RemoveGenre(r.Context(), bookID, genreID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}
