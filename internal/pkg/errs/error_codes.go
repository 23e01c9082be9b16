/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the gateway and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Query Gateway Errors
const (
	// ErrPromptRequired indicates that the search prompt was missing or whitespace-only.
	ErrPromptRequired = 2001

	// ErrIdentityRequired indicates that the search request carried no user id.
	ErrIdentityRequired = 2002

	// ErrUpstreamInvalid indicates that the RAG backend returned a payload that
	// violates the response contract (answer not a string, sources not an array).
	ErrUpstreamInvalid = 2101

	// ErrUpstreamTimeout indicates that the RAG backend did not answer within the bounded call timeout.
	ErrUpstreamTimeout = 2102
)

// 3xxx: Account and Authentication Errors
const (
	// ErrUserNotFound indicates that no account exists for the given email.
	ErrUserNotFound = 3001

	// ErrIncorrectPassword indicates that the password did not match the stored hash.
	ErrIncorrectPassword = 3002

	// ErrUserExists indicates a registration attempt with an email that is already taken.
	ErrUserExists = 3003

	// ErrRegistrationInvalid indicates that a required registration field was missing or blank.
	ErrRegistrationInvalid = 3004

	// ErrEmailInvalid indicates that the provided email does not look like an email address.
	ErrEmailInvalid = 3005

	// ErrPasswordTooShort indicates that the provided password is below the minimum length.
	ErrPasswordTooShort = 3006

	// ErrSessionExpired indicates that the provided user id resolves to no account.
	ErrSessionExpired = 3007
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrLoginFailed indicates a store failure while verifying credentials.
	ErrLoginFailed = 5001

	// ErrRegisterFailed indicates a store failure while creating an account.
	ErrRegisterFailed = 5002

	// ErrSearchFailed indicates a failure while forwarding a query to the RAG backend.
	ErrSearchFailed = 5003

	// ErrHistoryFailed indicates a failure while fetching a stored answer from the RAG backend.
	ErrHistoryFailed = 5004
)
