/*
Package resp provides helper functions for constructing and sending HTTP JSON responses.

The gateway's wire contract fixes exact body shapes per endpoint, so payloads
are written flat rather than wrapped in a shared envelope. Errors are reduced
to the fixed {message} vocabulary defined in the errs package.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"ragwall/internal/pkg/errs"
	"ragwall/internal/pkg/logx"
)

// MessageResponse is the {message} body used by the account endpoints and
// by most failure responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON sets the Content-Type and sends the JSON payload with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondMessage sends a {message} body with the given status.
func RespondMessage(w http.ResponseWriter, r *http.Request, httpStatus int, message string) {
	RespondJSON(w, r, httpStatus, MessageResponse{Message: message})
}

// RespondError sends the {message} body and HTTP status carried by the custom error.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondMessage(w, r, customErr.Status, customErr.Message)
}
