package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api"
	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

type AuthorHandler struct {
	catalogService service.ICatalogService
}

func NewAuthorHandler(catalogService service.ICatalogService) *AuthorHandler {
	if catalogService == nil {
		panic("author handler missing catalog service")
	}
	return &AuthorHandler{catalogService: catalogService}
}

func (h *AuthorHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAuthorDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		api.ErrorJSON(w, http.StatusBadRequest, "author name is required")
		return
	}

	author := &model.Author{Name: req.Name, Bio: req.Bio}
	if err := h.catalogService.CreateAuthor(r.Context(), author); err != nil {
		writeServiceError(w, err)
		return
	}
	api.CreatedJSON(w, author)
}

func (h *AuthorHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid author id")
		return
	}

	author, err := h.catalogService.GetAuthor(r.Context(), authorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, author)
}

func (h *AuthorHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.catalogService.ListAuthors(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, authors)
}

func (h *AuthorHandler) GetAuthorStats(w http.ResponseWriter, r *http.Request) {
	authorID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid author id")
		return
	}

	stats, err := h.catalogService.GetAuthorStats(r.Context(), authorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, stats)
}

func (h *AuthorHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGenreDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		api.ErrorJSON(w, http.StatusBadRequest, "genre name is required")
		return
	}

	genre := &model.Genre{Name: req.Name}
	if err := h.catalogService.CreateGenre(r.Context(), genre); err != nil {
		writeServiceError(w, err)
		return
	}
	api.CreatedJSON(w, genre)
}

func (h *AuthorHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalogService.ListGenres(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, genres)
}

func (h *AuthorHandler) GetGenreStats(w http.ResponseWriter, r *http.Request) {
	genreID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid genre id")
		return
	}

	stats, err := h.catalogService.GetGenreStats(r.Context(), genreID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, stats)
}
