package api

import (
	"encoding/json"
	"net/http"
)

// Response 成功回應的統一信封
type Response struct {
	Data any `json:"data"`
}

// ResponseError 失敗回應的統一信封
type ResponseError struct {
	Error string `json:"error"`
}

func SuccessJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{Data: data})
}

func CreatedJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(Response{Data: data})
}

func ErrorJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ResponseError{Error: msg})
}
