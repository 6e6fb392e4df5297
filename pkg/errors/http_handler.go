package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError renders err as an ErrorResponse with the AppError's status.
// Encoding failures are returned to the caller for logging; the status line is
// already sent at that point.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())

	response := ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
	return json.NewEncoder(w).Encode(response)
}
