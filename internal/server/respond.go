package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloud-ru/emi-schedule-go/internal/calculations"
)

// problemDetail is an RFC7807 error body
type problemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// writeError maps calculation errors to problem responses
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calculations.ErrInvalidLoanParameters):
		writeProblem(w, http.StatusBadRequest, "Invalid Loan Parameters", err.Error())
	case errors.Is(err, calculations.ErrUnsupportedStrategy):
		writeProblem(w, http.StatusBadRequest, "Unsupported Strategy", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
