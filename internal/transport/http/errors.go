package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/pkg/clock"
)

const validationFailedMessage = "One or more validation errors occurred."

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Details    string              `json:"details,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

// requestError is a malformed request rejected before reaching a use case.
type requestError struct {
	fields map[string][]string
}

func (e *requestError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.fields)
}

func (e *requestError) add(field, msg string) {
	if e.fields == nil {
		e.fields = make(map[string][]string)
	}
	e.fields[field] = append(e.fields[field], msg)
}

// orNil returns nil when no field was rejected.
func (e *requestError) orNil() error {
	if len(e.fields) == 0 {
		return nil
	}
	return e
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrPricePrecision),
		errors.Is(err, domain.ErrPriceTooLarge),
		errors.Is(err, domain.ErrNegativeStock),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrEmptyCategoryDescription):
		return true
	default:
		return false
	}
}

// mapDomainError maps an error to its response. Store failures become a
// generic 500; their text is logged, not returned.
func mapDomainError(err error) ErrorResponse {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    validationFailedMessage,
			Errors:     reqErr.fields,
		}
	case isValidationError(err):
		fields := domain.FieldErrors(err)
		resp := ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    validationFailedMessage,
		}
		if general, ok := fields[""]; ok {
			delete(fields, "")
			resp.Details = general[0]
		}
		if len(fields) > 0 {
			resp.Errors = fields
		}
		return resp
	case errors.Is(err, domain.ErrCategoryNotFound):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Message:    "The referenced category does not exist",
			Errors:     map[string][]string{"categoryId": {domain.ErrCategoryNotFound.Error()}},
		}
	case errors.Is(err, domain.ErrProductNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    "Product not found or is inactive",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "An internal error occurred",
		}
	}
}

// productNotFoundMessage names the id a product route was called with.
func productNotFoundMessage(id int64) string {
	return fmt.Sprintf("Product with ID %d not found or is inactive", id)
}

// Responder writes JSON bodies and error responses, logging failures.
type Responder struct {
	logger *slog.Logger
	clock  clock.Clock
}

func NewResponder(logger *slog.Logger, clk clock.Clock) Responder {
	return Responder{logger: logger, clock: clk}
}

func (rs Responder) writeError(w http.ResponseWriter, r *http.Request, err error) {
	rs.writeErrorResponse(w, r, err, mapDomainError(err))
}

func (rs Responder) writeErrorResponse(w http.ResponseWriter, r *http.Request, err error, resp ErrorResponse) {
	resp.Timestamp = rs.clock.Now().UTC()

	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", resp.StatusCode,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		rs.logger.ErrorContext(r.Context(), "request failed", attrs...)
	} else {
		rs.logger.DebugContext(r.Context(), "request rejected", attrs...)
	}

	rs.writeJSON(w, resp.StatusCode, resp)
}

func (rs Responder) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error("failed to encode response", "error", err)
	}
}
