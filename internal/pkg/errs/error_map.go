/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and internal error handling. The messages for the
account and query endpoints form the fixed client-facing vocabulary of the
gateway; internal detail stays in the logs.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every
// application error code. The key is the error code (int), and the value
// contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Query Gateway Errors
	ErrPromptRequired:   {Code: ErrPromptRequired, Message: "Input is required", Status: http.StatusBadRequest},
	ErrIdentityRequired: {Code: ErrIdentityRequired, Message: "Please log in to ask a question", Status: http.StatusBadRequest},
	ErrUpstreamInvalid:  {Code: ErrUpstreamInvalid, Message: "Invalid response from AI server", Status: http.StatusBadGateway},
	ErrUpstreamTimeout:  {Code: ErrUpstreamTimeout, Message: "The AI server took too long to respond. Please try again.", Status: http.StatusGatewayTimeout},

	// 3xxx: Account and Authentication Errors
	ErrUserNotFound:        {Code: ErrUserNotFound, Message: "user not found", Status: http.StatusBadRequest},
	ErrIncorrectPassword:   {Code: ErrIncorrectPassword, Message: "Incorrect Password", Status: http.StatusUnauthorized},
	ErrUserExists:          {Code: ErrUserExists, Message: "User already exist", Status: http.StatusBadRequest},
	ErrRegistrationInvalid: {Code: ErrRegistrationInvalid, Message: "All fields are required", Status: http.StatusBadRequest},
	ErrEmailInvalid:        {Code: ErrEmailInvalid, Message: "Invalid email address", Status: http.StatusBadRequest},
	ErrPasswordTooShort:    {Code: ErrPasswordTooShort, Message: "Password must be at least 6 characters", Status: http.StatusBadRequest},
	ErrSessionExpired:      {Code: ErrSessionExpired, Message: "Session expired, please log in again", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:        {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrLoginFailed:    {Code: ErrLoginFailed, Message: "Error logging in user", Status: http.StatusInternalServerError},
	ErrRegisterFailed: {Code: ErrRegisterFailed, Message: "Can't create a user", Status: http.StatusInternalServerError},
	ErrSearchFailed:   {Code: ErrSearchFailed, Message: "Error processing search request", Status: http.StatusInternalServerError},
	ErrHistoryFailed:  {Code: ErrHistoryFailed, Message: "Error fetching stored response", Status: http.StatusInternalServerError},
}
