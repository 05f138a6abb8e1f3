package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

type fieldErrResponse struct {
	Error  string            `json:"error" validate:"required"`
	Fields map[string]string `json:"fields" validate:"required"`
}

// fieldErrorBody flattens per-field validation errors into a response body.
func fieldErrorBody(errs validation.Errors) fieldErrResponse {
	fields := make(map[string]string, len(errs))
	for name, err := range errs {
		fields[name] = err.Error()
	}
	return fieldErrResponse{Error: "validation failed", Fields: fields}
}
