package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims issued by the gateway after a successful
// login. The documented login contract hands the client a raw (user id,
// email) pair; the token carries the same pair in signed form so a client
// that stores it gets tamper-proof identity without a contract change.
type Payload struct {
	// StandardClaims embeds the standard JWT fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer) used for validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the account's unique identifier, the same value returned as
	// user_id in the login response.
	ID string `json:"id"`

	// Email is the account email the identity was issued for.
	Email string `json:"email"`
}
