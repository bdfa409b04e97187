package catalog

import (
	"errors"
	"log"
	"net/http"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// mapDomainError converts domain errors to HTTP status codes.
func mapDomainError(err error) (int, string) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge, "request body too large"

	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()

	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, "confirmation required: repeat the request with confirm=true"

	case errors.Is(err, domain.ErrNothingToExport):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, kvstore.ErrVersionConflict):
		return http.StatusConflict, "the data changed concurrently, please retry"

	case errors.Is(err, domain.ErrStorage):
		return http.StatusServiceUnavailable, "storage unavailable"

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := mapDomainError(err)
	if code >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, code, errorResponse{Error: msg})
}
